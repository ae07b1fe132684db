package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"orbit/internal/store"
)

func (c *Client) UpsertItem(ctx context.Context, in store.ItemInput) error {
	keywords := in.Keywords
	if keywords == nil {
		keywords = []string{}
	}
	fields := in.Fields
	if fields == nil {
		fields = map[string]any{}
	}

	// Label outranks keywords, which outrank the body.
	query := `
INSERT INTO items (id, kind, label, collection, source_file, source_hash, keywords, fields, body,
    search_vector, last_ingested)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9,
    setweight(to_tsvector('simple', $3), 'A') ||
    setweight(to_tsvector('simple', array_to_string($7::text[], ' ')), 'B') ||
    setweight(to_tsvector('simple', $9), 'C'),
    now())
ON CONFLICT (id) DO UPDATE SET
    kind = EXCLUDED.kind,
    label = EXCLUDED.label,
    collection = EXCLUDED.collection,
    source_file = EXCLUDED.source_file,
    source_hash = EXCLUDED.source_hash,
    keywords = EXCLUDED.keywords,
    fields = EXCLUDED.fields,
    body = EXCLUDED.body,
    search_vector = EXCLUDED.search_vector,
    last_ingested = now()
`

	_, err := c.pool.Exec(ctx, query,
		in.ID,
		in.Kind,
		in.Label,
		in.Collection,
		in.SourceFile,
		in.SourceHash,
		keywords,
		fields,
		in.Body,
	)
	if err != nil {
		return fmt.Errorf("upserting item %s: %w", in.ID, err)
	}
	return nil
}

const selectRecord = `
SELECT id, kind, label, collection, COALESCE(source_file, ''), COALESCE(source_hash, ''),
    keywords, fields, COALESCE(body, '')
FROM items
`

func (c *Client) GetItem(ctx context.Context, id string) (*store.Record, error) {
	row := c.pool.QueryRow(ctx, selectRecord+"WHERE id = $1", id)
	r, err := scanRecord(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting item %s: %w", id, err)
	}
	return r, nil
}

func (c *Client) ListItems(ctx context.Context, kind, collection string) ([]store.Record, error) {
	query := selectRecord + `
WHERE ($1 = '' OR kind = $1)
  AND ($2 = '' OR collection = $2)
ORDER BY id
`
	rows, err := c.pool.Query(ctx, query, kind, collection)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	records := []store.Record{}
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		records = append(records, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating items: %w", err)
	}
	return records, nil
}

func scanRecord(row pgx.Row) (*store.Record, error) {
	var r store.Record
	err := row.Scan(
		&r.ID,
		&r.Kind,
		&r.Label,
		&r.Collection,
		&r.SourceFile,
		&r.SourceHash,
		&r.Keywords,
		&r.Fields,
		&r.Body,
	)
	if err != nil {
		return nil, err
	}
	if r.Keywords == nil {
		r.Keywords = []string{}
	}
	if r.Fields == nil {
		r.Fields = map[string]any{}
	}
	return &r, nil
}
