package postgres

import (
	"context"
	"fmt"
	"strings"

	"orbit/internal/knowledge"
	"orbit/internal/store"
)

func (c *Client) Search(ctx context.Context, query, kind string) ([]store.SearchResult, error) {
	tsQuery := prefixQuery(query)
	if tsQuery == "" {
		return nil, fmt.Errorf("query must contain at least one keyword")
	}

	sql := `
SELECT id, kind, label, keywords,
    ts_rank(search_vector, to_tsquery('simple', $1)) AS score,
    CASE WHEN body <> '' THEN
        ts_headline('simple', body, to_tsquery('simple', $1),
            'MaxFragments=2, MaxWords=40, MinWords=20, StartSel=**, StopSel=**')
    ELSE '' END AS snippet
FROM items
WHERE search_vector @@ to_tsquery('simple', $1)
  AND ($2 = '' OR kind = $2)
ORDER BY score DESC, id ASC
LIMIT 100
`

	rows, err := c.pool.Query(ctx, sql, tsQuery, kind)
	if err != nil {
		return nil, fmt.Errorf("searching items: %w", err)
	}
	defer rows.Close()

	results := []store.SearchResult{}
	for rows.Next() {
		var r store.SearchResult
		if err := rows.Scan(&r.ID, &r.Kind, &r.Label, &r.Keywords, &r.Score, &r.Snippet); err != nil {
			return nil, fmt.Errorf("scanning search result: %w", err)
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

// prefixQuery ORs the query keywords as prefix lexemes. Tokens hold only
// letters, digits and underscores, so none of them can be a tsquery operator.
func prefixQuery(query string) string {
	tokens := knowledge.Tokenize(query)
	seen := make(map[string]struct{}, len(tokens))
	terms := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if _, dup := seen[token]; dup {
			continue
		}
		seen[token] = struct{}{}
		terms = append(terms, token+":*")
	}
	return strings.Join(terms, " | ")
}
