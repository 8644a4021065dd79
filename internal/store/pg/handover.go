package pg

import (
	"context"
	"database/sql"

	"manasa.shop/internal/handover"
)

// HandoverStore persists the voice handover log.
type HandoverStore struct {
	db *sql.DB
}

var _ handover.Store = (*HandoverStore)(nil)

func (s *HandoverStore) Create(ctx context.Context, rec *handover.Record) error {
	_, err := s.db.ExecContext(ctx, `
		insert into handovers(id, raw_speech, amount_given, change_returned,
			net_amount, given_to, reason, created_at)
		values ($1,$2,$3,$4,$5,$6,$7,$8)
	`, rec.ID, rec.RawSpeech, rec.AmountGiven, rec.ChangeReturned,
		rec.NetAmount, rec.GivenTo, rec.Reason, rec.CreatedAt)
	return err
}

func (s *HandoverStore) List(ctx context.Context) ([]*handover.Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		select id, raw_speech, amount_given, change_returned, net_amount,
			given_to, reason, created_at
		from handovers order by id desc
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*handover.Record
	for rows.Next() {
		var rec handover.Record
		if err := rows.Scan(&rec.ID, &rec.RawSpeech, &rec.AmountGiven,
			&rec.ChangeReturned, &rec.NetAmount, &rec.GivenTo, &rec.Reason,
			&rec.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &rec)
	}
	return out, rows.Err()
}

func (s *HandoverStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `delete from handovers where id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return handover.ErrNotFound
	}
	return nil
}
