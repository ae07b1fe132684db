package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"orbit/internal/store"
)

func (c *Client) UpsertItem(ctx context.Context, in store.ItemInput) error {
	keywordsJSON, err := json.Marshal(nonNil(in.Keywords))
	if err != nil {
		return fmt.Errorf("marshaling keywords: %w", err)
	}
	fieldsJSON, err := json.Marshal(in.Fields)
	if err != nil {
		return fmt.Errorf("marshaling fields: %w", err)
	}

	query := `
	INSERT INTO items (id, kind, label, collection, source_file, source_hash, keywords, fields, body, last_ingested)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, datetime('now'))
	ON CONFLICT (id) DO UPDATE SET
		kind = excluded.kind,
		label = excluded.label,
		collection = excluded.collection,
		source_file = excluded.source_file,
		source_hash = excluded.source_hash,
		keywords = excluded.keywords,
		fields = excluded.fields,
		body = excluded.body,
		last_ingested = datetime('now')
	`

	_, err = c.db.ExecContext(ctx, query,
		in.ID,
		in.Kind,
		in.Label,
		in.Collection,
		in.SourceFile,
		in.SourceHash,
		string(keywordsJSON),
		string(fieldsJSON),
		in.Body,
	)
	if err != nil {
		return fmt.Errorf("upserting item %s: %w", in.ID, err)
	}
	return nil
}

const selectRecord = `
	SELECT id, kind, label, collection, COALESCE(source_file, ''), COALESCE(source_hash, ''), keywords, fields, body
	FROM items
`

func (c *Client) GetItem(ctx context.Context, id string) (*store.Record, error) {
	row := c.db.QueryRowContext(ctx, selectRecord+"WHERE id = ?", id)
	r, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting item %s: %w", id, err)
	}
	return r, nil
}

func (c *Client) ListItems(ctx context.Context, kind, collection string) ([]store.Record, error) {
	query := selectRecord + `
	WHERE (? = '' OR kind = ?)
	  AND (? = '' OR collection = ?)
	ORDER BY id
	`
	rows, err := c.db.QueryContext(ctx, query, kind, kind, collection, collection)
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

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (*store.Record, error) {
	var r store.Record
	var keywordsText, fieldsText string
	err := s.Scan(
		&r.ID,
		&r.Kind,
		&r.Label,
		&r.Collection,
		&r.SourceFile,
		&r.SourceHash,
		&keywordsText,
		&fieldsText,
		&r.Body,
	)
	if err != nil {
		return nil, err
	}
	if keywordsText != "" {
		if err := json.Unmarshal([]byte(keywordsText), &r.Keywords); err != nil {
			return nil, fmt.Errorf("unmarshaling keywords: %w", err)
		}
	}
	if fieldsText != "" {
		if err := json.Unmarshal([]byte(fieldsText), &r.Fields); err != nil {
			return nil, fmt.Errorf("unmarshaling fields: %w", err)
		}
	}
	if r.Keywords == nil {
		r.Keywords = []string{}
	}
	if r.Fields == nil {
		r.Fields = map[string]any{}
	}
	return &r, nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
