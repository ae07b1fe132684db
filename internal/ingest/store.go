package ingest

import (
	"context"

	"orbit/internal/store"
)

// Store is the slice of store.Store that ingest writes through.
type Store interface {
	EnsureSchema(ctx context.Context) error
	UpsertItem(ctx context.Context, in store.ItemInput) error
	RemoveStaleItems(ctx context.Context, collection string, currentSourceFiles []string) (int64, error)
	GetSourceHashes(ctx context.Context, collection string) (map[string]string, error)
}
