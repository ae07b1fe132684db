package parser

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"orbit/internal/knowledge"
)

func TestParse(t *testing.T) {
	t.Run("valid page with full frontmatter", func(t *testing.T) {
		content := []byte("---\nid: page-about\ntype: Page\ntitle: About Us\nurl: https://x.com/about\nkeywords: [About, team]\n---\n\nWe started in a garage.\n")
		doc, err := Parse(content)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if doc.ID != "page-about" {
			t.Fatalf("expected id, got %q", doc.ID)
		}
		if doc.Type != "page" {
			t.Fatalf("expected type page, got %q", doc.Type)
		}
		if doc.Body == "" {
			t.Fatalf("expected body")
		}
		if !reflect.DeepEqual([]string(doc.Keywords), []string{"about", "team"}) {
			t.Fatalf("unexpected keywords: %#v", doc.Keywords)
		}
		if _, ok := doc.Frontmatter["url"]; !ok {
			t.Fatalf("expected url in frontmatter")
		}
	})

	t.Run("minimal frontmatter", func(t *testing.T) {
		doc, err := Parse([]byte("---\nid: t\ntype: topic\n---\n"))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if doc.Keywords != nil {
			t.Fatalf("expected nil keywords, got %#v", doc.Keywords)
		}
		if doc.Body != "" {
			t.Fatalf("expected empty body, got %q", doc.Body)
		}
	})

	t.Run("closing marker at end of file", func(t *testing.T) {
		doc, err := Parse([]byte("---\nid: t\ntype: topic\n---"))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if doc.ID != "t" {
			t.Fatalf("expected id, got %q", doc.ID)
		}
	})

	t.Run("windows line endings", func(t *testing.T) {
		doc, err := Parse([]byte("---\r\nid: t\r\ntype: topic\r\n---\r\nBody\r\n"))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if doc.Body != "Body\n" {
			t.Fatalf("unexpected body %q", doc.Body)
		}
	})

	t.Run("no frontmatter", func(t *testing.T) {
		_, err := Parse([]byte("Just text"))
		if !errors.Is(err, ErrNoFrontmatter) {
			t.Fatalf("expected ErrNoFrontmatter, got %v", err)
		}
	})

	t.Run("missing closing marker", func(t *testing.T) {
		_, err := Parse([]byte("---\nid: missing\n"))
		if !errors.Is(err, ErrNoFrontmatter) {
			t.Fatalf("expected ErrNoFrontmatter, got %v", err)
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		_, err := Parse([]byte("---\nid: [\n---\n"))
		if !errors.Is(err, ErrInvalidYAML) {
			t.Fatalf("expected ErrInvalidYAML, got %v", err)
		}
	})

	t.Run("missing id", func(t *testing.T) {
		_, err := Parse([]byte("---\ntype: topic\n---\n"))
		if !errors.Is(err, ErrMissingID) || !errors.Is(err, knowledge.ErrMissingID) {
			t.Fatalf("expected ErrMissingID, got %v", err)
		}
	})

	t.Run("missing type", func(t *testing.T) {
		_, err := Parse([]byte("---\nid: something\n---\n"))
		if !errors.Is(err, ErrMissingType) {
			t.Fatalf("expected ErrMissingType, got %v", err)
		}
	})

	t.Run("keywords single string", func(t *testing.T) {
		doc, err := Parse([]byte("---\nid: k\ntype: topic\nkeywords: latte, Art\n---\n"))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !reflect.DeepEqual([]string(doc.Keywords), []string{"latte", "art"}) {
			t.Fatalf("unexpected keywords: %#v", doc.Keywords)
		}
	})

	t.Run("keywords of wrong type", func(t *testing.T) {
		if _, err := Parse([]byte("---\nid: k\ntype: topic\nkeywords: [1, 2]\n---\n")); err == nil {
			t.Fatalf("expected error")
		}
	})
}

func TestDocumentItem(t *testing.T) {
	doc, err := ParseFile(filepath.Join("testdata", "valid_person.md"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	item, err := doc.Item()
	if err != nil {
		t.Fatalf("Item: %v", err)
	}
	person, ok := item.(knowledge.Person)
	if !ok {
		t.Fatalf("expected knowledge.Person, got %T", item)
	}
	if person.Name != "Ana Ruiz" || person.Email != "ana@example.com" {
		t.Fatalf("unexpected person %+v", person)
	}
	if !reflect.DeepEqual([]string(person.Keywords), []string{"roasting", "ana"}) {
		t.Fatalf("unexpected keywords: %#v", person.Keywords)
	}
	if person.Body == "" {
		t.Fatalf("expected markdown body carried into item")
	}

	unknown, err := (&Document{ID: "w", Type: "workshop", Frontmatter: map[string]any{"title": "Latte art"}}).Item()
	if err != nil {
		t.Fatalf("Item: %v", err)
	}
	if unknown.Label() != "Latte art" {
		t.Fatalf("expected unknown variant to keep its title, got %q", unknown.Label())
	}
}

func TestParseFile(t *testing.T) {
	doc, err := ParseFile(filepath.Join("testdata", "valid_person.md"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if doc.ID != "person-ana" {
		t.Fatalf("expected id, got %q", doc.ID)
	}
	if doc.SourceFile == "" {
		t.Fatalf("expected source file set")
	}
}

func TestParseFile_NoFrontmatter(t *testing.T) {
	_, err := ParseFile(filepath.Join("testdata", "no_frontmatter.md"))
	if !errors.Is(err, ErrNoFrontmatter) {
		t.Fatalf("expected ErrNoFrontmatter, got %v", err)
	}
}

func TestParseFile_MissingType(t *testing.T) {
	_, err := ParseFile(filepath.Join("testdata", "missing_type.md"))
	if !errors.Is(err, ErrMissingType) {
		t.Fatalf("expected ErrMissingType, got %v", err)
	}
}

func TestParse_BOMTrim(t *testing.T) {
	doc, err := Parse([]byte("\ufeff---\nid: bom\ntype: topic\n---\n"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if doc.ID != "bom" {
		t.Fatalf("expected id, got %q", doc.ID)
	}
}

func TestParseFile_ReadError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.md")
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected missing file")
	}
	if _, err := ParseFile(path); err == nil {
		t.Fatalf("expected error")
	}
}
