// Package ingest loads markdown knowledge files into a store. Each configured
// path is a collection; unchanged files are skipped by content hash and
// items whose file disappeared are pruned.
package ingest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"orbit/internal/config"
	"orbit/internal/parser"
	"orbit/internal/store"
)

type Result struct {
	ItemsUpserted int
	ItemsRemoved  int
	FilesSkipped  int
	Errors        []error
}

type Options struct {
	Full   bool
	Logger *zap.Logger
}

func Run(ctx context.Context, cfg *config.ProjectConfig, db Store, options Options) (*Result, error) {
	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := db.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	result := &Result{}
	seen := make(map[string]string)
	collectionFiles := make(map[string][]string)
	var collections []string

	for _, root := range cfg.Knowledge.Paths {
		if root == "" {
			continue
		}
		collection := filepath.Clean(root)
		if _, dup := collectionFiles[collection]; dup {
			continue
		}
		collections = append(collections, collection)

		var existingHashes map[string]string
		if !options.Full {
			var err error
			existingHashes, err = db.GetSourceHashes(ctx, collection)
			if err != nil {
				return nil, fmt.Errorf("get source hashes for %s: %w", collection, err)
			}
		}

		files, err := walkMarkdownFiles(collection, cfg.Knowledge.Exclude)
		if err != nil {
			return nil, fmt.Errorf("walking files for %s: %w", collection, err)
		}
		collectionFiles[collection] = files

		for _, path := range files {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			hash, err := computeHash(path)
			if err != nil {
				result.Errors = append(result.Errors, fmt.Errorf("hashing %s: %w", path, err))
				continue
			}
			if !options.Full {
				if existing, ok := existingHashes[path]; ok && existing == hash {
					result.FilesSkipped++
					continue
				}
			}

			doc, err := parser.ParseFile(path)
			if err != nil {
				if errors.Is(err, parser.ErrNoFrontmatter) || errors.Is(err, parser.ErrMissingType) {
					logger.Debug("skipping file", zap.String("path", path), zap.Error(err))
					result.FilesSkipped++
					continue
				}
				result.Errors = append(result.Errors, fmt.Errorf("parsing %s: %w", path, err))
				continue
			}

			if first, dup := seen[doc.ID]; dup {
				result.Errors = append(result.Errors, fmt.Errorf("%s: duplicate id %q, first defined in %s", path, doc.ID, first))
				continue
			}
			seen[doc.ID] = path

			item, err := doc.Item()
			if err != nil {
				result.Errors = append(result.Errors, fmt.Errorf("decoding %s: %w", path, err))
				continue
			}

			input, err := store.NewItemInput(item, collection, path, hash)
			if err != nil {
				result.Errors = append(result.Errors, fmt.Errorf("encoding %s: %w", path, err))
				continue
			}
			if err := db.UpsertItem(ctx, input); err != nil {
				result.Errors = append(result.Errors, fmt.Errorf("upserting %s: %w", path, err))
				continue
			}
			logger.Debug("upserted item", zap.String("id", input.ID), zap.String("kind", input.Kind))
			result.ItemsUpserted++
		}
	}

	for _, collection := range collections {
		deleted, err := db.RemoveStaleItems(ctx, collection, collectionFiles[collection])
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("removing stale items for %s: %w", collection, err))
			continue
		}
		result.ItemsRemoved += int(deleted)
	}

	return result, nil
}

func walkMarkdownFiles(root string, excludes []string) ([]string, error) {
	excluded := make([]string, 0, len(excludes))
	for _, path := range excludes {
		if path == "" {
			continue
		}
		excluded = append(excluded, filepath.Clean(path))
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && isExcluded(path, excluded) {
			return filepath.SkipDir
		}
		if d.IsDir() {
			return nil
		}
		if !strings.HasSuffix(strings.ToLower(d.Name()), ".md") {
			return nil
		}
		if isExcluded(path, excluded) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func isExcluded(path string, excludes []string) bool {
	clean := filepath.Clean(path)
	for _, exclude := range excludes {
		if exclude == clean || strings.HasPrefix(clean, exclude+string(os.PathSeparator)) {
			return true
		}
	}
	return false
}

func computeHash(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
