package stock

import "context"

// Store persists stock entries and their remaining-amount settlements.
type Store interface {
	CreateEntry(ctx context.Context, e *Entry) error
	UpdateEntry(ctx context.Context, e *Entry) error
	DeleteEntry(ctx context.Context, id string) error
	FindEntry(ctx context.Context, id string) (*Entry, error)
	FindEntryByDate(ctx context.Context, date string) (*Entry, error)
	ListEntries(ctx context.Context) ([]*Entry, error)

	UpsertRemaining(ctx context.Context, r *RemainingAmount) error
	FindRemainingByEntry(ctx context.Context, stockEntryID string) (*RemainingAmount, error)
	DeleteRemainingByEntry(ctx context.Context, stockEntryID string) error
}
