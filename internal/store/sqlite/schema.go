package sqlite

import (
	"context"
	"fmt"
	"strings"
)

const ddl = `
CREATE TABLE IF NOT EXISTS items (
	seq           INTEGER PRIMARY KEY AUTOINCREMENT,
	id            TEXT NOT NULL UNIQUE,
	kind          TEXT NOT NULL,
	label         TEXT NOT NULL DEFAULT '',
	collection    TEXT NOT NULL DEFAULT '',
	source_file   TEXT,
	source_hash   TEXT,
	keywords      TEXT DEFAULT '[]',
	fields        TEXT DEFAULT '{}',
	body          TEXT DEFAULT '',
	last_ingested TEXT DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_items_kind ON items (kind);
CREATE INDEX IF NOT EXISTS idx_items_collection ON items (collection);
CREATE INDEX IF NOT EXISTS idx_items_source_file ON items (source_file);

CREATE VIRTUAL TABLE IF NOT EXISTS items_fts USING fts5(
	label,
	keywords,
	body,
	content=items,
	content_rowid=seq
);

CREATE TRIGGER IF NOT EXISTS items_ai AFTER INSERT ON items BEGIN
	INSERT INTO items_fts(rowid, label, keywords, body)
	VALUES (new.seq, new.label, new.keywords, new.body);
END;

CREATE TRIGGER IF NOT EXISTS items_ad AFTER DELETE ON items BEGIN
	INSERT INTO items_fts(items_fts, rowid, label, keywords, body)
	VALUES ('delete', old.seq, old.label, old.keywords, old.body);
END;

CREATE TRIGGER IF NOT EXISTS items_au AFTER UPDATE ON items BEGIN
	INSERT INTO items_fts(items_fts, rowid, label, keywords, body)
	VALUES ('delete', old.seq, old.label, old.keywords, old.body);
	INSERT INTO items_fts(rowid, label, keywords, body)
	VALUES (new.seq, new.label, new.keywords, new.body);
END;
`

func (c *Client) EnsureSchema(ctx context.Context) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range splitStatements(ddl) {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("executing DDL: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing schema transaction: %w", err)
	}
	return nil
}

// splitStatements cuts ddl on lines ending in ';'. Trigger bodies keep their
// inner statements because those lines are indented inside BEGIN..END and
// the split only happens once END; closes the trigger.
func splitStatements(ddl string) []string {
	var statements []string
	var current strings.Builder
	inTrigger := false

	for _, line := range strings.Split(ddl, "\n") {
		stripped := strings.TrimSpace(line)
		if strings.HasPrefix(stripped, "--") {
			continue
		}
		if strings.HasPrefix(stripped, "CREATE TRIGGER") {
			inTrigger = true
		}
		current.WriteString(line)
		current.WriteString("\n")

		if !strings.HasSuffix(stripped, ";") {
			continue
		}
		if inTrigger && stripped != "END;" {
			continue
		}
		inTrigger = false
		statements = append(statements, current.String())
		current.Reset()
	}

	if strings.TrimSpace(current.String()) != "" {
		statements = append(statements, current.String())
	}
	return statements
}
