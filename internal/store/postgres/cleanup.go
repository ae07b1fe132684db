package postgres

import (
	"context"
	"fmt"
)

func (c *Client) RemoveStaleItems(ctx context.Context, collection string, currentSourceFiles []string) (int64, error) {
	if len(currentSourceFiles) == 0 {
		return 0, nil
	}

	query := `
DELETE FROM items
WHERE collection = $1
  AND source_file IS NOT NULL
  AND source_file <> ''
  AND NOT (source_file = ANY($2))
`

	tag, err := c.pool.Exec(ctx, query, collection, currentSourceFiles)
	if err != nil {
		return 0, fmt.Errorf("removing stale items: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (c *Client) GetSourceHashes(ctx context.Context, collection string) (map[string]string, error) {
	query := `
SELECT source_file, COALESCE(source_hash, '') FROM items
WHERE collection = $1
  AND source_file IS NOT NULL
  AND source_file <> ''
`

	rows, err := c.pool.Query(ctx, query, collection)
	if err != nil {
		return nil, fmt.Errorf("query source hashes: %w", err)
	}
	defer rows.Close()

	hashes := make(map[string]string)
	for rows.Next() {
		var sourceFile, sourceHash string
		if err := rows.Scan(&sourceFile, &sourceHash); err != nil {
			return nil, fmt.Errorf("scanning source hash: %w", err)
		}
		hashes[sourceFile] = sourceHash
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating source hashes: %w", err)
	}
	return hashes, nil
}
