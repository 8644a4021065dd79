package counter

import (
	"context"
	"fmt"
	"time"

	"manasa.shop/internal/ids"
	"manasa.shop/internal/reconcile"
)

// Service owns the daily cash records: opening balances and end-of-day
// reconciliation. One record exists per date per kind; saving again for the
// same date replaces the earlier record.
type Service struct {
	store Store
	now   func() time.Time
}

// ServiceOption customizes Service construction.
type ServiceOption func(*Service)

// WithClock overrides the time source. Intended for tests.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService builds a Service over the given store.
func NewService(store Store, opts ...ServiceOption) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("counter: store is nil")
	}
	s := &Service{store: store, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// SaveInitial records the opening balance for a date, replacing any earlier
// value for the same date.
func (s *Service) SaveInitial(ctx context.Context, date string, amount reconcile.Amount) (*InitialCash, error) {
	date, err := normalizeDate(date)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	rec := &InitialCash{
		ID:        ids.New(),
		Date:      date,
		Amount:    amount,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if prev, err := s.store.FindInitialByDate(ctx, date); err == nil {
		rec.ID = prev.ID
		rec.CreatedAt = prev.CreatedAt
	} else if err != ErrNotFound {
		return nil, err
	}
	if err := s.store.UpsertInitial(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// GetInitial fetches the opening balance for a date. An empty date returns
// the most recently saved balance, which is how the till form seeds itself
// at the start of a new day.
func (s *Service) GetInitial(ctx context.Context, date string) (*InitialCash, error) {
	if date == "" {
		return s.store.LatestInitial(ctx)
	}
	date, err := normalizeDate(date)
	if err != nil {
		return nil, err
	}
	return s.store.FindInitialByDate(ctx, date)
}

// SaveRemaining stores the end-of-day record for rec.Date. Derived totals in
// the incoming record are ignored; they are recomputed here from the raw
// inputs so the stored record is always internally consistent. Notes and
// coins are projected onto the canonical denomination sets before saving.
func (s *Service) SaveRemaining(ctx context.Context, rec *RemainingCash) (*RemainingCash, error) {
	if rec == nil {
		return nil, fmt.Errorf("%w: empty record", ErrInvalidInput)
	}
	date, err := normalizeDate(rec.Date)
	if err != nil {
		return nil, err
	}

	saved := *rec
	saved.Date = date
	saved.Notes = reconcile.MergeWithDefaults(rec.Notes, reconcile.NoteDenominations)
	saved.Coins = reconcile.MergeWithDefaults(rec.Coins, reconcile.CoinDenominations)
	saved.Totals = reconcile.Compute(reconcile.Inputs{
		Notes:                 saved.Notes,
		Coins:                 saved.Coins,
		Companies:             saved.Companies,
		Fixed:                 saved.FixedSources,
		OpeningBalance:        saved.OpeningBalance,
		PossibleOfflineAmount: saved.PossibleOfflineAmount,
		PossibleOnlineAmount:  saved.PossibleOnlineAmount,
	})

	now := s.now().UTC()
	saved.ID = ids.New()
	saved.CreatedAt = now
	saved.UpdatedAt = now
	if prev, err := s.store.FindRemainingByDate(ctx, date); err == nil {
		saved.ID = prev.ID
		saved.CreatedAt = prev.CreatedAt
	} else if err != ErrNotFound {
		return nil, err
	}
	if err := s.store.UpsertRemaining(ctx, &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

// GetRemaining fetches the record for a date, or the latest record when the
// date is empty. Notes and coins come back projected onto the canonical
// denomination sets so the till form's row order is stable.
func (s *Service) GetRemaining(ctx context.Context, date string) (*RemainingCash, error) {
	var rec *RemainingCash
	var err error
	if date == "" {
		rec, err = s.store.LatestRemaining(ctx)
	} else {
		if date, err = normalizeDate(date); err != nil {
			return nil, err
		}
		rec, err = s.store.FindRemainingByDate(ctx, date)
	}
	if err != nil {
		return nil, err
	}
	rec.Notes = reconcile.MergeWithDefaults(rec.Notes, reconcile.NoteDenominations)
	rec.Coins = reconcile.MergeWithDefaults(rec.Coins, reconcile.CoinDenominations)
	return rec, nil
}

// MonthlySummary aggregates one calendar month of remaining-cash records into
// profit and loss totals.
func (s *Service) MonthlySummary(ctx context.Context, month, year int) (*MonthlySummary, error) {
	if month < 1 || month > 12 || year < 2000 || year > 2200 {
		return nil, fmt.Errorf("%w: month and year are out of range", ErrInvalidInput)
	}
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	records, err := s.store.ListRemainingByRange(ctx, first.Format(DateLayout), last.Format(DateLayout))
	if err != nil {
		return nil, err
	}

	summary := &MonthlySummary{Month: month, Year: year, EntriesCount: len(records)}
	for _, rec := range records {
		gain := rec.Totals.FinalRemainingTotal.Sub(rec.PossibleOfflineAmount)
		if gain.IsNegative() {
			summary.TotalLoss = summary.TotalLoss.Sub(gain)
		} else {
			summary.TotalProfit = summary.TotalProfit.Add(gain)
		}
	}
	summary.NetTotal = summary.TotalProfit.Sub(summary.TotalLoss)
	return summary, nil
}

// DataByRange sums the main takings channels across records in [from, to].
func (s *Service) DataByRange(ctx context.Context, from, to string) (*RangeSummary, error) {
	from, err := normalizeDate(from)
	if err != nil {
		return nil, err
	}
	to, err = normalizeDate(to)
	if err != nil {
		return nil, err
	}
	if to < from {
		return nil, fmt.Errorf("%w: range end precedes start", ErrInvalidInput)
	}
	records, err := s.store.ListRemainingByRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	summary := &RangeSummary{From: from, To: to, EntriesCount: len(records)}
	for _, rec := range records {
		summary.CashTotal = summary.CashTotal.Add(rec.Totals.CashTotal)
		summary.CardTotal = summary.CardTotal.Add(rec.Card)
		summary.PaytmTotal = summary.PaytmTotal.Add(rec.Paytm)
		summary.PossibleOnlineTotal = summary.PossibleOnlineTotal.Add(rec.PossibleOnlineAmount)
	}
	summary.GrandTotal = summary.CashTotal.
		Add(summary.CardTotal).
		Add(summary.PaytmTotal).
		Add(summary.PossibleOnlineTotal)
	return summary, nil
}

func normalizeDate(date string) (string, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return "", fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}
	return t.Format(DateLayout), nil
}
