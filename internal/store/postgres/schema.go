package postgres

import (
	"context"
	"fmt"
)

// All statements run in one Exec, which PostgreSQL applies as a single
// implicit transaction.
const ddl = `
CREATE TABLE IF NOT EXISTS items (
    seq           BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
    id            TEXT NOT NULL UNIQUE,
    kind          TEXT NOT NULL,
    label         TEXT NOT NULL DEFAULT '',
    collection    TEXT NOT NULL DEFAULT '',
    source_file   TEXT,
    source_hash   TEXT,
    keywords      TEXT[] DEFAULT '{}',
    fields        JSONB DEFAULT '{}',
    body          TEXT DEFAULT '',
    last_ingested TIMESTAMPTZ DEFAULT now()
);

ALTER TABLE items ADD COLUMN IF NOT EXISTS search_vector TSVECTOR;

CREATE INDEX IF NOT EXISTS idx_items_search ON items USING GIN (search_vector);
CREATE INDEX IF NOT EXISTS idx_items_keywords ON items USING GIN (keywords);
CREATE INDEX IF NOT EXISTS idx_items_kind ON items (kind);
CREATE INDEX IF NOT EXISTS idx_items_collection ON items (collection);
CREATE INDEX IF NOT EXISTS idx_items_source_file ON items (source_file);
`

func (c *Client) EnsureSchema(ctx context.Context) error {
	if _, err := c.pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("ensuring schema: %w", err)
	}
	return nil
}
