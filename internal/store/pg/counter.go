package pg

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"manasa.shop/internal/counter"
	"manasa.shop/internal/reconcile"
)

// CounterStore persists daily cash records. Denomination and company lists
// and the derived totals are stored as jsonb; the date column is the unique
// key per record kind.
type CounterStore struct {
	db *sql.DB
}

var _ counter.Store = (*CounterStore)(nil)

func (s *CounterStore) UpsertInitial(ctx context.Context, rec *counter.InitialCash) error {
	_, err := s.db.ExecContext(ctx, `
		insert into initial_cash(id, date, amount, created_at, updated_at)
		values ($1,$2,$3,$4,$5)
		on conflict (date) do update
		set amount = excluded.amount, updated_at = excluded.updated_at
	`, rec.ID, rec.Date, rec.Amount, rec.CreatedAt, rec.UpdatedAt)
	return err
}

func (s *CounterStore) FindInitialByDate(ctx context.Context, date string) (*counter.InitialCash, error) {
	return s.scanInitial(s.db.QueryRowContext(ctx, `
		select id, date, amount, created_at, updated_at
		from initial_cash where date = $1
	`, date))
}

func (s *CounterStore) LatestInitial(ctx context.Context) (*counter.InitialCash, error) {
	return s.scanInitial(s.db.QueryRowContext(ctx, `
		select id, date, amount, created_at, updated_at
		from initial_cash order by date desc limit 1
	`))
}

func (s *CounterStore) scanInitial(row *sql.Row) (*counter.InitialCash, error) {
	var rec counter.InitialCash
	err := row.Scan(&rec.ID, &rec.Date, &rec.Amount, &rec.CreatedAt, &rec.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, counter.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

const remainingColumns = `id, date, notes, coins, companies, card, paytm,
	additional, other_payments, opening_balance, possible_offline,
	possible_online, remarks, totals, created_at, updated_at`

func (s *CounterStore) UpsertRemaining(ctx context.Context, rec *counter.RemainingCash) error {
	notes, err := json.Marshal(rec.Notes)
	if err != nil {
		return err
	}
	coins, err := json.Marshal(rec.Coins)
	if err != nil {
		return err
	}
	companies, err := json.Marshal(rec.Companies)
	if err != nil {
		return err
	}
	totals, err := json.Marshal(rec.Totals)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		insert into remaining_cash(`+remainingColumns+`)
		values ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
		on conflict (date) do update set
			notes = excluded.notes,
			coins = excluded.coins,
			companies = excluded.companies,
			card = excluded.card,
			paytm = excluded.paytm,
			additional = excluded.additional,
			other_payments = excluded.other_payments,
			opening_balance = excluded.opening_balance,
			possible_offline = excluded.possible_offline,
			possible_online = excluded.possible_online,
			remarks = excluded.remarks,
			totals = excluded.totals,
			updated_at = excluded.updated_at
	`, rec.ID, rec.Date, notes, coins, companies, rec.Card, rec.Paytm,
		rec.Additional, rec.OtherPayments, rec.OpeningBalance,
		rec.PossibleOfflineAmount, rec.PossibleOnlineAmount, rec.Remarks,
		totals, rec.CreatedAt, rec.UpdatedAt)
	return err
}

func (s *CounterStore) FindRemainingByDate(ctx context.Context, date string) (*counter.RemainingCash, error) {
	return scanRemaining(s.db.QueryRowContext(ctx, `
		select `+remainingColumns+` from remaining_cash where date = $1
	`, date))
}

func (s *CounterStore) LatestRemaining(ctx context.Context) (*counter.RemainingCash, error) {
	return scanRemaining(s.db.QueryRowContext(ctx, `
		select `+remainingColumns+` from remaining_cash order by date desc limit 1
	`))
}

func (s *CounterStore) ListRemainingByRange(ctx context.Context, from, to string) ([]*counter.RemainingCash, error) {
	rows, err := s.db.QueryContext(ctx, `
		select `+remainingColumns+` from remaining_cash
		where date >= $1 and date <= $2
		order by date asc
	`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*counter.RemainingCash
	for rows.Next() {
		rec, err := scanRemaining(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRemaining(row rowScanner) (*counter.RemainingCash, error) {
	var rec counter.RemainingCash
	var notes, coins, companies, totals []byte
	err := row.Scan(&rec.ID, &rec.Date, &notes, &coins, &companies,
		&rec.Card, &rec.Paytm, &rec.Additional, &rec.OtherPayments,
		&rec.OpeningBalance, &rec.PossibleOfflineAmount,
		&rec.PossibleOnlineAmount, &rec.Remarks, &totals,
		&rec.CreatedAt, &rec.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, counter.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(notes, &rec.Notes); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(coins, &rec.Coins); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(companies, &rec.Companies); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(totals, &rec.Totals); err != nil {
		return nil, err
	}
	if rec.Companies == nil {
		rec.Companies = []reconcile.PaymentSource{}
	}
	return &rec, nil
}
