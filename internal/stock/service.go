package stock

import (
	"context"
	"fmt"
	"strings"
	"time"

	"manasa.shop/internal/ids"
	"manasa.shop/internal/reconcile"
)

// DateLayout is the calendar-date key for stock entries.
const DateLayout = "2006-01-02"

// DistributorInput is one supplier payment line as submitted by the client.
type DistributorInput struct {
	Name      string           `json:"name"`
	TotalPaid reconcile.Amount `json:"totalPaid"`
}

// Service owns daily stock purchase records and their settlements.
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
		return nil, fmt.Errorf("stock: store is nil")
	}
	s := &Service{store: store, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// CreateEntry records supplier payments for a date. Blank rows (no name) are
// dropped; at least one valid line is required. If an entry already exists
// for the date the new lines are appended to it, so a second submission in
// the same day extends rather than replaces the record.
func (s *Service) CreateEntry(ctx context.Context, date string, inputs []DistributorInput) (*Entry, error) {
	date, err := normalizeDate(date)
	if err != nil {
		return nil, err
	}
	var lines []Distributor
	for _, in := range inputs {
		name := strings.TrimSpace(in.Name)
		if name == "" {
			continue
		}
		lines = append(lines, Distributor{
			ID:        ids.New(),
			Name:      name,
			TotalPaid: in.TotalPaid,
		})
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: at least one distributor is required", ErrInvalidInput)
	}

	now := s.now().UTC()
	if existing, err := s.store.FindEntryByDate(ctx, date); err == nil {
		existing.Distributors = append(existing.Distributors, lines...)
		existing.TotalStockExpenses = reconcile.StockExpenseTotal(existing.lines())
		existing.UpdatedAt = now
		if err := s.store.UpdateEntry(ctx, existing); err != nil {
			return nil, err
		}
		return existing, s.refreshRemaining(ctx, existing)
	} else if err != ErrNotFound {
		return nil, err
	}

	e := &Entry{
		ID:           ids.New(),
		Date:         date,
		Distributors: lines,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	e.TotalStockExpenses = reconcile.StockExpenseTotal(e.lines())
	if err := s.store.CreateEntry(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// List returns all stock entries, most recent date first.
func (s *Service) List(ctx context.Context) ([]*Entry, error) {
	return s.store.ListEntries(ctx)
}

// UpdateDistributor rewrites one supplier line and returns the full updated
// entry, so the caller replaces its copy wholesale instead of patching it.
// Any settlement recorded against the entry is recomputed.
func (s *Service) UpdateDistributor(ctx context.Context, stockID, distID string, in DistributorInput) (*Entry, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: distributor name is required", ErrInvalidInput)
	}
	e, err := s.store.FindEntry(ctx, stockID)
	if err != nil {
		return nil, err
	}
	found := false
	for i := range e.Distributors {
		if e.Distributors[i].ID == distID {
			e.Distributors[i].Name = name
			e.Distributors[i].TotalPaid = in.TotalPaid
			found = true
			break
		}
	}
	if !found {
		return nil, ErrNotFound
	}
	e.TotalStockExpenses = reconcile.StockExpenseTotal(e.lines())
	e.UpdatedAt = s.now().UTC()
	if err := s.store.UpdateEntry(ctx, e); err != nil {
		return nil, err
	}
	return e, s.refreshRemaining(ctx, e)
}

// DeleteDistributor removes one supplier line. Deleting the only line on a
// date removes the whole entry, and its settlement with it, rather than
// leaving an empty shell. The returned entry is nil when the entry itself
// was removed.
func (s *Service) DeleteDistributor(ctx context.Context, stockID, distID string) (*Entry, error) {
	e, err := s.store.FindEntry(ctx, stockID)
	if err != nil {
		return nil, err
	}
	idx := -1
	for i := range e.Distributors {
		if e.Distributors[i].ID == distID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrNotFound
	}

	if len(e.Distributors) == 1 {
		if err := s.store.DeleteEntry(ctx, e.ID); err != nil {
			return nil, err
		}
		if err := s.store.DeleteRemainingByEntry(ctx, e.ID); err != nil && err != ErrNotFound {
			return nil, err
		}
		return nil, nil
	}

	e.Distributors = append(e.Distributors[:idx:idx], e.Distributors[idx+1:]...)
	e.TotalStockExpenses = reconcile.StockExpenseTotal(e.lines())
	e.UpdatedAt = s.now().UTC()
	if err := s.store.UpdateEntry(ctx, e); err != nil {
		return nil, err
	}
	return e, s.refreshRemaining(ctx, e)
}

// SaveRemaining settles a stock entry against cash on hand. Remaining and
// FinalTotal are derived here; re-saving for the same entry replaces the
// earlier settlement.
func (s *Service) SaveRemaining(ctx context.Context, stockEntryID string, amountHave, paytm reconcile.Amount, companies []reconcile.PaymentSource) (*RemainingAmount, error) {
	e, err := s.store.FindEntry(ctx, stockEntryID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	r := &RemainingAmount{
		ID:           ids.New(),
		StockEntryID: e.ID,
		Date:         e.Date,
		AmountHave:   amountHave,
		Paytm:        paytm,
		Companies:    companies,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if prev, err := s.store.FindRemainingByEntry(ctx, e.ID); err == nil {
		r.ID = prev.ID
		r.CreatedAt = prev.CreatedAt
	} else if err != ErrNotFound {
		return nil, err
	}
	r.Remaining = reconcile.RemainingAfterStock(amountHave, e.lines())
	r.FinalTotal = reconcile.StockFinalTotal(r.Remaining, paytm, companies)
	if err := s.store.UpsertRemaining(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// GetRemaining fetches the settlement recorded against a stock entry.
func (s *Service) GetRemaining(ctx context.Context, stockEntryID string) (*RemainingAmount, error) {
	return s.store.FindRemainingByEntry(ctx, stockEntryID)
}

// refreshRemaining recomputes a settlement after the entry it was derived
// from changed. No settlement is not an error.
func (s *Service) refreshRemaining(ctx context.Context, e *Entry) error {
	r, err := s.store.FindRemainingByEntry(ctx, e.ID)
	if err != nil {
		if err == ErrNotFound {
			return nil
		}
		return err
	}
	r.Remaining = reconcile.RemainingAfterStock(r.AmountHave, e.lines())
	r.FinalTotal = reconcile.StockFinalTotal(r.Remaining, r.Paytm, r.Companies)
	r.UpdatedAt = s.now().UTC()
	return s.store.UpsertRemaining(ctx, r)
}

func normalizeDate(date string) (string, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return "", fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}
	return t.Format(DateLayout), nil
}
