package counter

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore keeps daily cash records in memory, keyed by date. Used in
// tests and when the service runs without a database.
type MemoryStore struct {
	mu        sync.RWMutex
	initial   map[string]*InitialCash
	remaining map[string]*RemainingCash
}

// NewMemoryStore builds an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		initial:   make(map[string]*InitialCash),
		remaining: make(map[string]*RemainingCash),
	}
}

func (m *MemoryStore) UpsertInitial(_ context.Context, rec *InitialCash) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *rec
	m.initial[rec.Date] = &cp
	return nil
}

func (m *MemoryStore) FindInitialByDate(_ context.Context, date string) (*InitialCash, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.initial[date]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

func (m *MemoryStore) LatestInitial(_ context.Context) (*InitialCash, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var latest *InitialCash
	for _, rec := range m.initial {
		if latest == nil || rec.Date > latest.Date {
			latest = rec
		}
	}
	if latest == nil {
		return nil, ErrNotFound
	}
	cp := *latest
	return &cp, nil
}

func (m *MemoryStore) UpsertRemaining(_ context.Context, rec *RemainingCash) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.remaining[rec.Date] = copyRemaining(rec)
	return nil
}

func (m *MemoryStore) FindRemainingByDate(_ context.Context, date string) (*RemainingCash, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.remaining[date]
	if !ok {
		return nil, ErrNotFound
	}
	return copyRemaining(rec), nil
}

func (m *MemoryStore) LatestRemaining(_ context.Context) (*RemainingCash, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var latest *RemainingCash
	for _, rec := range m.remaining {
		if latest == nil || rec.Date > latest.Date {
			latest = rec
		}
	}
	if latest == nil {
		return nil, ErrNotFound
	}
	return copyRemaining(latest), nil
}

func (m *MemoryStore) ListRemainingByRange(_ context.Context, from, to string) ([]*RemainingCash, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*RemainingCash
	for _, rec := range m.remaining {
		if rec.Date >= from && rec.Date <= to {
			out = append(out, copyRemaining(rec))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func copyRemaining(rec *RemainingCash) *RemainingCash {
	cp := *rec
	cp.Notes = append(cp.Notes[:0:0], rec.Notes...)
	cp.Coins = append(cp.Coins[:0:0], rec.Coins...)
	cp.Companies = append(cp.Companies[:0:0], rec.Companies...)
	return &cp
}

var _ Store = (*MemoryStore)(nil)
