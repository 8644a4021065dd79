package handover

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"manasa.shop/internal/ids"
)

var (
	ErrNotFound     = errors.New("handover: record not found")
	ErrInvalidInput = errors.New("handover: invalid input")
)

// Record is one stored handover.
type Record struct {
	ID string `json:"id"`
	Parsed
	CreatedAt time.Time `json:"createdAt"`
}

// Store persists handover records.
type Store interface {
	Create(ctx context.Context, rec *Record) error
	List(ctx context.Context) ([]*Record, error)
	Delete(ctx context.Context, id string) error
}

// Service owns the handover log.
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
		return nil, fmt.Errorf("handover: store is nil")
	}
	s := &Service{store: store, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Create stores a handover. Clients may send the raw speech text alone, in
// which case it is parsed here; if they send pre-parsed fields the raw text
// still wins when present, and the net amount is always recomputed
// server-side so a tampered or stale value cannot be stored.
func (s *Service) Create(ctx context.Context, in Parsed) (*Record, error) {
	if raw := strings.TrimSpace(in.RawSpeech); raw != "" {
		in = Parse(raw)
	} else if in.AmountGiven == 0 && in.GivenTo == "" {
		return nil, fmt.Errorf("%w: empty handover", ErrInvalidInput)
	}
	in.NetAmount = in.AmountGiven - in.ChangeReturned
	if in.Reason == "" {
		in.Reason = "other"
	}

	rec := &Record{
		ID:        ids.New(),
		Parsed:    in,
		CreatedAt: s.now().UTC(),
	}
	if err := s.store.Create(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// List returns all handovers, newest first.
func (s *Service) List(ctx context.Context) ([]*Record, error) {
	return s.store.List(ctx)
}

// Delete removes a handover by id.
func (s *Service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidInput)
	}
	return s.store.Delete(ctx, id)
}
