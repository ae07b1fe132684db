package knowledge

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type kindRecorder struct {
	seen []Kind
}

func (r *kindRecorder) VisitTopic(Topic)               { r.seen = append(r.seen, KindTopic) }
func (r *kindRecorder) VisitPage(Page)                 { r.seen = append(r.seen, KindPage) }
func (r *kindRecorder) VisitPerson(Person)             { r.seen = append(r.seen, KindPerson) }
func (r *kindRecorder) VisitProof(Proof)               { r.seen = append(r.seen, KindProof) }
func (r *kindRecorder) VisitAction(Action)             { r.seen = append(r.seen, KindAction) }
func (r *kindRecorder) VisitBlog(Blog)                 { r.seen = append(r.seen, KindBlog) }
func (r *kindRecorder) VisitSocial(Social)             { r.seen = append(r.seen, KindSocial) }
func (r *kindRecorder) VisitManufacturer(Manufacturer) { r.seen = append(r.seen, KindManufacturer) }
func (r *kindRecorder) VisitProduct(Product)           { r.seen = append(r.seen, KindProduct) }
func (r *kindRecorder) VisitConcept(Concept)           { r.seen = append(r.seen, KindConcept) }
func (r *kindRecorder) VisitQA(QA)                     { r.seen = append(r.seen, KindQA) }
func (r *kindRecorder) VisitCommunity(Community)       { r.seen = append(r.seen, KindCommunity) }
func (r *kindRecorder) VisitCTA(CTA)                   { r.seen = append(r.seen, KindCTA) }
func (r *kindRecorder) VisitSponsored(Sponsored)       { r.seen = append(r.seen, KindSponsored) }
func (r *kindRecorder) VisitUnknown(u Unknown)         { r.seen = append(r.seen, "unknown:"+u.Kind()) }

func TestLoadFile(t *testing.T) {
	items, err := LoadFile(filepath.Join("testdata", "knowledge.yaml"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(items) != 15 {
		t.Fatalf("expected 15 items, got %d", len(items))
	}

	rec := &kindRecorder{}
	for _, item := range items {
		item.Accept(rec)
	}
	want := append(append([]Kind{}, Kinds...), "unknown:workshop")
	if diff := cmp.Diff(want, rec.seen); diff != "" {
		t.Fatalf("visited kinds mismatch (-want +got):\n%s", diff)
	}

	t.Run("page fields", func(t *testing.T) {
		page, ok := items[1].(Page)
		if !ok {
			t.Fatalf("expected Page, got %T", items[1])
		}
		if page.URL != "https://x.com/about" || page.Label() != "About Us" {
			t.Fatalf("unexpected page: %+v", page)
		}
	})

	t.Run("scalar keywords are split and lowercased", func(t *testing.T) {
		got := items[12].Meta().Keywords
		if diff := cmp.Diff(Keywords{"newsletter", "offers"}, got); diff != "" {
			t.Fatalf("keywords mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("unknown keeps raw fields", func(t *testing.T) {
		u, ok := items[14].(Unknown)
		if !ok {
			t.Fatalf("expected Unknown, got %T", items[14])
		}
		if u.Label() != "Latte art workshop" {
			t.Fatalf("expected label from raw title, got %q", u.Label())
		}
		if u.Icon() == "" {
			t.Fatalf("expected default icon")
		}
	})
}

func TestDecode(t *testing.T) {
	t.Run("missing id", func(t *testing.T) {
		_, err := Decode([]byte("items:\n  - type: page\n    title: Nope\n"))
		if !errors.Is(err, ErrMissingID) {
			t.Fatalf("expected ErrMissingID, got %v", err)
		}
	})

	t.Run("missing type", func(t *testing.T) {
		_, err := Decode([]byte("items:\n  - id: a\n"))
		if !errors.Is(err, ErrMissingType) {
			t.Fatalf("expected ErrMissingType, got %v", err)
		}
	})

	t.Run("duplicate id", func(t *testing.T) {
		_, err := Decode([]byte("items:\n  - {id: a, type: topic}\n  - {id: a, type: page}\n"))
		if !errors.Is(err, ErrDuplicateID) {
			t.Fatalf("expected ErrDuplicateID, got %v", err)
		}
	})

	t.Run("empty keywords are allowed", func(t *testing.T) {
		items, err := Decode([]byte("items:\n  - {id: a, type: concept, term: Flow}\n"))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if items[0].Meta().Keywords != nil {
			t.Fatalf("expected nil keywords, got %#v", items[0].Meta().Keywords)
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		if _, err := Decode([]byte("items: [\n")); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("label placeholder", func(t *testing.T) {
		items, err := Decode([]byte("items:\n  - {id: a, type: product}\n"))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if items[0].Label() != "Untitled product" {
			t.Fatalf("unexpected placeholder %q", items[0].Label())
		}
	})
}

func TestDecoderCoverage(t *testing.T) {
	for _, kind := range Kinds {
		if _, ok := decoders[kind]; !ok {
			t.Errorf("no decoder registered for %s", kind)
		}
	}
	if len(decoders) != len(Kinds) {
		t.Errorf("expected %d decoders, got %d", len(Kinds), len(decoders))
	}
}

func TestFieldsRoundTrip(t *testing.T) {
	original := Person{
		Base:  Base{ID: "p1", Keywords: Keywords{"sales", "north"}},
		Name:  "Joe",
		Email: "joe@example.com",
	}
	fields, err := Fields(original)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fields["type"] != "person" {
		t.Fatalf("expected type field, got %v", fields["type"])
	}
	decoded, err := DecodeFields(fields)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(Item(original), decoded); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{name: "empty", input: "", expected: []string{}},
		{name: "drops short tokens", input: "an ox is at the espresso bar", expected: []string{"espresso", "bar"}},
		{name: "drops stop words", input: "What about your decaf?", expected: []string{"decaf"}},
		{name: "splits punctuation", input: "Grind-size, dose & yield!", expected: []string{"grind", "size", "dose", "yield"}},
		{name: "keeps duplicates", input: "milk milk", expected: []string{"milk", "milk"}},
		{name: "underscore is a word char", input: "cold_brew", expected: []string{"cold_brew"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.input)
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("Tokenize(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestKeywordsSeed(t *testing.T) {
	kw := Keywords{"a1", "b2", "c3", "d4"}
	if diff := cmp.Diff([]string{"a1", "b2", "c3"}, kw.Seed(3)); diff != "" {
		t.Fatalf("seed mismatch: %s", diff)
	}
	if got := Keywords(nil).Seed(3); got != nil {
		t.Fatalf("expected nil seed, got %#v", got)
	}
	if got := (Keywords{"only"}).Seed(3); len(got) != 1 {
		t.Fatalf("expected 1 seed keyword, got %#v", got)
	}
}

func TestIndex(t *testing.T) {
	items := []Item{Topic{Base: Base{ID: "a"}}, Page{Base: Base{ID: "b"}}}
	index, err := Index(items)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := index["b"]; !ok {
		t.Fatalf("expected b in index")
	}
	if _, err := Index(append(items, Concept{Base: Base{ID: "a"}})); !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
}
