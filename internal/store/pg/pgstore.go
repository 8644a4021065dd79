// Package pg is the PostgreSQL persistence layer. One sub-store per domain
// package, all sharing a single connection pool.
package pg

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type Store struct {
	db *sql.DB
}

func Open(dsn string) (*Store, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	// Tuned pool defaults; adjust under load tests
	db.SetMaxOpenConns(50)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(15 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)
	return &Store{db: db}, nil
}

// NewWithDB wraps an existing handle. Used by tests with sqlmock.
func NewWithDB(db *sql.DB) *Store { return &Store{db: db} }

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) DB() *sql.DB { return s.db }

func (s *Store) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

func (s *Store) Counter() *CounterStore   { return &CounterStore{db: s.db} }
func (s *Store) Stock() *StockStore       { return &StockStore{db: s.db} }
func (s *Store) Dist() *DistStore         { return &DistStore{db: s.db} }
func (s *Store) Handover() *HandoverStore { return &HandoverStore{db: s.db} }
func (s *Store) Admin() *AdminStore       { return &AdminStore{db: s.db} }
