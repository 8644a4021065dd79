package stock

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore keeps stock records in memory. Used in tests and when the
// service runs without a database.
type MemoryStore struct {
	mu        sync.RWMutex
	entries   map[string]*Entry
	byDate    map[string]string
	remaining map[string]*RemainingAmount
}

// NewMemoryStore builds an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries:   make(map[string]*Entry),
		byDate:    make(map[string]string),
		remaining: make(map[string]*RemainingAmount),
	}
}

func (m *MemoryStore) CreateEntry(_ context.Context, e *Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[e.ID] = copyEntry(e)
	m.byDate[e.Date] = e.ID
	return nil
}

func (m *MemoryStore) UpdateEntry(_ context.Context, e *Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[e.ID]; !ok {
		return ErrNotFound
	}
	m.entries[e.ID] = copyEntry(e)
	return nil
}

func (m *MemoryStore) DeleteEntry(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[id]
	if !ok {
		return ErrNotFound
	}
	delete(m.byDate, e.Date)
	delete(m.entries, id)
	return nil
}

func (m *MemoryStore) FindEntry(_ context.Context, id string) (*Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyEntry(e), nil
}

func (m *MemoryStore) FindEntryByDate(_ context.Context, date string) (*Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.byDate[date]
	if !ok {
		return nil, ErrNotFound
	}
	return copyEntry(m.entries[id]), nil
}

func (m *MemoryStore) ListEntries(_ context.Context) ([]*Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Entry, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, copyEntry(e))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}

func (m *MemoryStore) UpsertRemaining(_ context.Context, r *RemainingAmount) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *r
	cp.Companies = append(cp.Companies[:0:0], r.Companies...)
	m.remaining[r.StockEntryID] = &cp
	return nil
}

func (m *MemoryStore) FindRemainingByEntry(_ context.Context, stockEntryID string) (*RemainingAmount, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.remaining[stockEntryID]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *r
	cp.Companies = append(cp.Companies[:0:0], r.Companies...)
	return &cp, nil
}

func (m *MemoryStore) DeleteRemainingByEntry(_ context.Context, stockEntryID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.remaining[stockEntryID]; !ok {
		return ErrNotFound
	}
	delete(m.remaining, stockEntryID)
	return nil
}

func copyEntry(e *Entry) *Entry {
	cp := *e
	cp.Distributors = append(cp.Distributors[:0:0], e.Distributors...)
	return &cp
}

var _ Store = (*MemoryStore)(nil)
