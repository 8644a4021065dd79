package pg

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"manasa.shop/internal/reconcile"
	"manasa.shop/internal/stock"
)

// StockStore persists stock entries and their settlements. Distributor lines
// and company advances are stored as jsonb.
type StockStore struct {
	db *sql.DB
}

var _ stock.Store = (*StockStore)(nil)

func (s *StockStore) CreateEntry(ctx context.Context, e *stock.Entry) error {
	lines, err := json.Marshal(e.Distributors)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		insert into stock_entries(id, date, distributors, total_expenses, created_at, updated_at)
		values ($1,$2,$3,$4,$5,$6)
	`, e.ID, e.Date, lines, e.TotalStockExpenses, e.CreatedAt, e.UpdatedAt)
	return err
}

func (s *StockStore) UpdateEntry(ctx context.Context, e *stock.Entry) error {
	lines, err := json.Marshal(e.Distributors)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `
		update stock_entries
		set distributors = $2, total_expenses = $3, updated_at = $4
		where id = $1
	`, e.ID, lines, e.TotalStockExpenses, e.UpdatedAt)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (s *StockStore) DeleteEntry(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `delete from stock_entries where id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

const entryColumns = `id, date, distributors, total_expenses, created_at, updated_at`

func (s *StockStore) FindEntry(ctx context.Context, id string) (*stock.Entry, error) {
	return scanEntry(s.db.QueryRowContext(ctx, `
		select `+entryColumns+` from stock_entries where id = $1
	`, id))
}

func (s *StockStore) FindEntryByDate(ctx context.Context, date string) (*stock.Entry, error) {
	return scanEntry(s.db.QueryRowContext(ctx, `
		select `+entryColumns+` from stock_entries where date = $1
	`, date))
}

func (s *StockStore) ListEntries(ctx context.Context) ([]*stock.Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		select `+entryColumns+` from stock_entries order by date desc
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*stock.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *StockStore) UpsertRemaining(ctx context.Context, r *stock.RemainingAmount) error {
	companies, err := json.Marshal(r.Companies)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		insert into stock_remaining(id, stock_entry_id, date, amount_have,
			paytm, companies, remaining, final_total, created_at, updated_at)
		values ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		on conflict (stock_entry_id) do update set
			amount_have = excluded.amount_have,
			paytm = excluded.paytm,
			companies = excluded.companies,
			remaining = excluded.remaining,
			final_total = excluded.final_total,
			updated_at = excluded.updated_at
	`, r.ID, r.StockEntryID, r.Date, r.AmountHave, r.Paytm, companies,
		r.Remaining, r.FinalTotal, r.CreatedAt, r.UpdatedAt)
	return err
}

func (s *StockStore) FindRemainingByEntry(ctx context.Context, stockEntryID string) (*stock.RemainingAmount, error) {
	var r stock.RemainingAmount
	var companies []byte
	err := s.db.QueryRowContext(ctx, `
		select id, stock_entry_id, date, amount_have, paytm, companies,
			remaining, final_total, created_at, updated_at
		from stock_remaining where stock_entry_id = $1
	`, stockEntryID).Scan(&r.ID, &r.StockEntryID, &r.Date, &r.AmountHave,
		&r.Paytm, &companies, &r.Remaining, &r.FinalTotal, &r.CreatedAt, &r.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, stock.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(companies, &r.Companies); err != nil {
		return nil, err
	}
	if r.Companies == nil {
		r.Companies = []reconcile.PaymentSource{}
	}
	return &r, nil
}

func (s *StockStore) DeleteRemainingByEntry(ctx context.Context, stockEntryID string) error {
	res, err := s.db.ExecContext(ctx, `
		delete from stock_remaining where stock_entry_id = $1
	`, stockEntryID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func scanEntry(row rowScanner) (*stock.Entry, error) {
	var e stock.Entry
	var lines []byte
	err := row.Scan(&e.ID, &e.Date, &lines, &e.TotalStockExpenses, &e.CreatedAt, &e.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, stock.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(lines, &e.Distributors); err != nil {
		return nil, err
	}
	return &e, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return stock.ErrNotFound
	}
	return nil
}
