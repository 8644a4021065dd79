package counter

import "context"

// Store persists daily cash records. Implementations must treat the date as
// the unique key per record kind; Upsert* replaces any existing record for
// the same date (last write wins).
type Store interface {
	UpsertInitial(ctx context.Context, rec *InitialCash) error
	FindInitialByDate(ctx context.Context, date string) (*InitialCash, error)
	LatestInitial(ctx context.Context) (*InitialCash, error)

	UpsertRemaining(ctx context.Context, rec *RemainingCash) error
	FindRemainingByDate(ctx context.Context, date string) (*RemainingCash, error)
	LatestRemaining(ctx context.Context) (*RemainingCash, error)
	ListRemainingByRange(ctx context.Context, from, to string) ([]*RemainingCash, error)
}
