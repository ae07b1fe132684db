package parser

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"orbit/internal/knowledge"
)

// Document is one markdown knowledge file: YAML frontmatter naming the item
// plus a free-form body.
type Document struct {
	Frontmatter map[string]any
	ID          string
	Type        string
	Keywords    knowledge.Keywords
	Body        string
	SourceFile  string
}

var (
	ErrNoFrontmatter = errors.New("no frontmatter found")
	ErrInvalidYAML   = errors.New("invalid YAML in frontmatter")
	ErrMissingID     = fmt.Errorf("frontmatter: %w", knowledge.ErrMissingID)
	ErrMissingType   = fmt.Errorf("frontmatter: %w", knowledge.ErrMissingType)
)

func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	doc, err := Parse(data)
	if err != nil {
		return nil, err
	}
	doc.SourceFile = path
	return doc, nil
}

func Parse(content []byte) (*Document, error) {
	content = bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))
	trimmed := bytes.TrimLeft(content, "\ufeff\n\t ")
	if !bytes.HasPrefix(trimmed, []byte("---\n")) {
		return nil, ErrNoFrontmatter
	}

	rest := trimmed[len("---\n"):]
	end := bytes.Index(rest, []byte("---\n"))
	if end == -1 {
		if !bytes.HasSuffix(rest, []byte("\n---")) {
			return nil, ErrNoFrontmatter
		}
		end = len(rest) - len("---")
	}

	yamlBytes := rest[:end]
	body := ""
	if tail := end + len("---\n"); tail <= len(rest) {
		body = string(rest[tail:])
	}

	var frontmatter map[string]any
	if err := yaml.Unmarshal(yamlBytes, &frontmatter); err != nil {
		return nil, ErrInvalidYAML
	}

	id, ok := frontmatter["id"].(string)
	if !ok || strings.TrimSpace(id) == "" {
		return nil, ErrMissingID
	}

	itemType, ok := frontmatter["type"].(string)
	if !ok || strings.TrimSpace(itemType) == "" {
		return nil, ErrMissingType
	}

	keywords, err := parseKeywords(frontmatter["keywords"])
	if err != nil {
		return nil, err
	}

	return &Document{
		Frontmatter: frontmatter,
		ID:          strings.TrimSpace(id),
		Type:        strings.ToLower(strings.TrimSpace(itemType)),
		Keywords:    keywords,
		Body:        body,
	}, nil
}

// Item decodes the document into its knowledge variant. The markdown body
// fills the item's body unless the frontmatter already sets one.
func (d *Document) Item() (knowledge.Item, error) {
	fields := make(map[string]any, len(d.Frontmatter)+1)
	for k, v := range d.Frontmatter {
		fields[k] = v
	}
	fields["id"] = d.ID
	fields["type"] = d.Type
	fields["keywords"] = []string(d.Keywords)
	if _, ok := fields["body"]; !ok {
		if body := strings.TrimSpace(d.Body); body != "" {
			fields["body"] = body
		}
	}

	item, err := knowledge.DecodeFields(fields)
	if err != nil {
		if d.SourceFile != "" {
			return nil, fmt.Errorf("%s: %w", d.SourceFile, err)
		}
		return nil, err
	}
	return item, nil
}

// parseKeywords accepts a list or a comma-separated string.
func parseKeywords(value any) (knowledge.Keywords, error) {
	if value == nil {
		return nil, nil
	}
	switch v := value.(type) {
	case string:
		if strings.TrimSpace(v) == "" {
			return nil, nil
		}
		return knowledge.NormalizeKeywords(strings.Split(v, ",")), nil
	case []any:
		keywords := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("keywords must be strings")
			}
			keywords = append(keywords, s)
		}
		return knowledge.NormalizeKeywords(keywords), nil
	default:
		return nil, fmt.Errorf("keywords must be string or list of strings")
	}
}
