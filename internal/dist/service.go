// Package dist is the distributor name directory behind the stock entry
// form's autocomplete. It is best-effort by design: names are captured as a
// side effect of data entry and creation is never an error path the operator
// sees, so duplicates are tolerated rather than rejected.
package dist

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"manasa.shop/internal/ids"
)

var (
	ErrNotFound     = errors.New("dist: record not found")
	ErrInvalidInput = errors.New("dist: invalid input")
)

// Distributor is one directory entry.
type Distributor struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// Store persists the directory.
type Store interface {
	Create(ctx context.Context, d *Distributor) error
	FindByName(ctx context.Context, name string) (*Distributor, error)
	Search(ctx context.Context, query string) ([]*Distributor, error)
}

// Service exposes directory creation and search.
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
		return nil, fmt.Errorf("dist: store is nil")
	}
	s := &Service{store: store, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Create adds a name to the directory if it is not already there
// (case-insensitively). Re-submitting a known name returns the existing
// entry with isNew false instead of failing.
func (s *Service) Create(ctx context.Context, name string) (*Distributor, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, false, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if existing, err := s.store.FindByName(ctx, name); err == nil {
		return existing, false, nil
	} else if err != ErrNotFound {
		return nil, false, err
	}
	d := &Distributor{
		ID:        ids.New(),
		Name:      name,
		CreatedAt: s.now().UTC(),
	}
	if err := s.store.Create(ctx, d); err != nil {
		return nil, false, err
	}
	return d, true, nil
}

// Search returns directory names containing the query, case-insensitively.
// A blank query matches nothing rather than dumping the directory.
func (s *Service) Search(ctx context.Context, query string) ([]string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []string{}, nil
	}
	matches, err := s.store.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(matches))
	for i, d := range matches {
		names[i] = d.Name
	}
	return names, nil
}
