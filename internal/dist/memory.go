package dist

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemoryStore keeps the directory in memory. Used in tests and when the
// service runs without a database.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]*Distributor
}

// NewMemoryStore builds an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]*Distributor)}
}

func (m *MemoryStore) Create(_ context.Context, d *Distributor) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *d
	m.entries[d.ID] = &cp
	return nil
}

func (m *MemoryStore) FindByName(_ context.Context, name string) (*Distributor, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, d := range m.entries {
		if strings.EqualFold(d.Name, name) {
			cp := *d
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) Search(_ context.Context, query string) ([]*Distributor, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	query = strings.ToLower(query)
	var out []*Distributor
	for _, d := range m.entries {
		if strings.Contains(strings.ToLower(d.Name), query) {
			cp := *d
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

var _ Store = (*MemoryStore)(nil)
