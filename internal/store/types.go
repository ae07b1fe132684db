package store

import (
	"fmt"

	"orbit/internal/knowledge"
)

// ItemInput is one item ready to write. Collection groups items by the
// ingest root they came from so stale rows can be pruned per root.
type ItemInput struct {
	ID         string
	Kind       string
	Label      string
	Collection string
	SourceFile string
	SourceHash string
	Keywords   []string
	Fields     map[string]any
	Body       string
}

type Record struct {
	ID         string
	Kind       string
	Label      string
	Collection string
	SourceFile string
	SourceHash string
	Keywords   []string
	Fields     map[string]any
	Body       string
}

type SearchResult struct {
	ID       string
	Kind     string
	Label    string
	Keywords []string
	Score    float64
	Snippet  string
}

// NewItemInput flattens item for storage.
func NewItemInput(item knowledge.Item, collection, sourceFile, sourceHash string) (ItemInput, error) {
	fields, err := knowledge.Fields(item)
	if err != nil {
		return ItemInput{}, err
	}
	meta := item.Meta()
	return ItemInput{
		ID:         meta.ID,
		Kind:       string(item.Kind()),
		Label:      item.Label(),
		Collection: collection,
		SourceFile: sourceFile,
		SourceHash: sourceHash,
		Keywords:   append([]string{}, meta.Keywords...),
		Fields:     fields,
		Body:       meta.Body,
	}, nil
}

// Item rebuilds the knowledge variant from the stored fields.
func (r Record) Item() (knowledge.Item, error) {
	fields := make(map[string]any, len(r.Fields)+4)
	for k, v := range r.Fields {
		fields[k] = v
	}
	fields["id"] = r.ID
	fields["type"] = r.Kind
	fields["keywords"] = r.Keywords
	if r.Body != "" {
		fields["body"] = r.Body
	}
	item, err := knowledge.DecodeFields(fields)
	if err != nil {
		return nil, fmt.Errorf("record %s: %w", r.ID, err)
	}
	return item, nil
}
