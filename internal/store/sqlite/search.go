package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"orbit/internal/knowledge"
	"orbit/internal/store"
)

// Search finds items matching any keyword of query, best matches first.
func (c *Client) Search(ctx context.Context, query, kind string) ([]store.SearchResult, error) {
	ftsQuery := matchExpression(query)
	if ftsQuery == "" {
		return nil, fmt.Errorf("query must contain at least one keyword")
	}

	// bm25 is lower for better matches; negate so higher is better like the
	// relevance scorer.
	sqlQuery := `
	SELECT i.id, i.kind, i.label, i.keywords,
		   -bm25(items_fts, 4.0, 10.0, 1.0) AS score,
		   snippet(items_fts, 2, '**', '**', '...', 24) AS snippet
	FROM items_fts
	JOIN items i ON items_fts.rowid = i.seq
	WHERE items_fts MATCH ?
	  AND (? = '' OR i.kind = ?)
	ORDER BY score DESC, i.id ASC
	LIMIT 100
	`

	rows, err := c.db.QueryContext(ctx, sqlQuery, ftsQuery, kind, kind)
	if err != nil {
		return nil, fmt.Errorf("searching items: %w", err)
	}
	defer rows.Close()

	results := []store.SearchResult{}
	for rows.Next() {
		var r store.SearchResult
		var keywordsText string
		if err := rows.Scan(&r.ID, &r.Kind, &r.Label, &keywordsText, &r.Score, &r.Snippet); err != nil {
			return nil, fmt.Errorf("scanning search result: %w", err)
		}
		if keywordsText != "" {
			if err := json.Unmarshal([]byte(keywordsText), &r.Keywords); err != nil {
				return nil, fmt.Errorf("unmarshaling keywords: %w", err)
			}
		}
		if r.Keywords == nil {
			r.Keywords = []string{}
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating search results: %w", err)
	}
	return results, nil
}

// matchExpression turns free text into an FTS5 OR of prefix terms, using the
// same tokenizer as relevance scoring. Each term is quoted so FTS5 never
// reads it as an operator.
func matchExpression(query string) string {
	tokens := knowledge.Tokenize(query)
	seen := make(map[string]struct{}, len(tokens))
	terms := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if _, dup := seen[token]; dup {
			continue
		}
		seen[token] = struct{}{}
		terms = append(terms, `"`+strings.ReplaceAll(token, `"`, `""`)+`"*`)
	}
	return strings.Join(terms, " OR ")
}
