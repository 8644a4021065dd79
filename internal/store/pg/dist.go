package pg

import (
	"context"
	"database/sql"
	"errors"

	"manasa.shop/internal/dist"
)

// DistStore persists the distributor name directory.
type DistStore struct {
	db *sql.DB
}

var _ dist.Store = (*DistStore)(nil)

func (s *DistStore) Create(ctx context.Context, d *dist.Distributor) error {
	_, err := s.db.ExecContext(ctx, `
		insert into distributors(id, name, created_at) values ($1,$2,$3)
	`, d.ID, d.Name, d.CreatedAt)
	return err
}

func (s *DistStore) FindByName(ctx context.Context, name string) (*dist.Distributor, error) {
	var d dist.Distributor
	err := s.db.QueryRowContext(ctx, `
		select id, name, created_at from distributors
		where lower(name) = lower($1) limit 1
	`, name).Scan(&d.ID, &d.Name, &d.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, dist.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *DistStore) Search(ctx context.Context, query string) ([]*dist.Distributor, error) {
	rows, err := s.db.QueryContext(ctx, `
		select id, name, created_at from distributors
		where name ilike '%' || $1 || '%'
		order by name asc
	`, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*dist.Distributor
	for rows.Next() {
		var d dist.Distributor
		if err := rows.Scan(&d.ID, &d.Name, &d.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &d)
	}
	return out, rows.Err()
}
