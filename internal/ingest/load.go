package ingest

import (
	"errors"
	"fmt"
	"path/filepath"

	"orbit/internal/knowledge"
	"orbit/internal/parser"
)

// LoadItems reads markdown knowledge files straight from disk without a
// store. Files lacking frontmatter or a type are skipped like in Run; any
// other problem is returned, joined, after every file has been tried.
func LoadItems(roots, excludes []string) ([]knowledge.Item, error) {
	var (
		items []knowledge.Item
		errs  []error
	)
	seen := make(map[string]string)
	for _, root := range roots {
		if root == "" {
			continue
		}
		files, err := walkMarkdownFiles(filepath.Clean(root), excludes)
		if err != nil {
			return nil, fmt.Errorf("walking files for %s: %w", root, err)
		}
		for _, path := range files {
			doc, err := parser.ParseFile(path)
			if err != nil {
				if errors.Is(err, parser.ErrNoFrontmatter) || errors.Is(err, parser.ErrMissingType) {
					continue
				}
				errs = append(errs, fmt.Errorf("parsing %s: %w", path, err))
				continue
			}
			if first, dup := seen[doc.ID]; dup {
				errs = append(errs, fmt.Errorf("%s: %w: %s, first defined in %s", path, knowledge.ErrDuplicateID, doc.ID, first))
				continue
			}
			seen[doc.ID] = path

			item, err := doc.Item()
			if err != nil {
				errs = append(errs, fmt.Errorf("decoding %s: %w", path, err))
				continue
			}
			items = append(items, item)
		}
	}
	if len(errs) > 0 {
		return items, errors.Join(errs...)
	}
	return items, nil
}
