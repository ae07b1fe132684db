// Package store persists knowledge items between runs. Ingest writes them;
// the CLI and MCP server read them back as a flat item list.
package store

import (
	"context"
	"fmt"

	"orbit/internal/knowledge"
)

type Store interface {
	Close(ctx context.Context) error
	EnsureSchema(ctx context.Context) error

	UpsertItem(ctx context.Context, in ItemInput) error
	RemoveStaleItems(ctx context.Context, collection string, currentSourceFiles []string) (int64, error)
	GetSourceHashes(ctx context.Context, collection string) (map[string]string, error)

	GetItem(ctx context.Context, id string) (*Record, error)
	ListItems(ctx context.Context, kind, collection string) ([]Record, error)
	Search(ctx context.Context, query, kind string) ([]SearchResult, error)
}

// LoadItems reads every stored item in id order.
func LoadItems(ctx context.Context, s Store) ([]knowledge.Item, error) {
	records, err := s.ListItems(ctx, "", "")
	if err != nil {
		return nil, err
	}
	items := make([]knowledge.Item, 0, len(records))
	for _, r := range records {
		item, err := r.Item()
		if err != nil {
			return nil, fmt.Errorf("decoding stored item %s: %w", r.ID, err)
		}
		items = append(items, item)
	}
	return items, nil
}
