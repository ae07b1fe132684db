package relevance

import (
	"testing"

	"orbit/internal/knowledge"
)

func topic(id, title string, keywords ...string) knowledge.Item {
	return knowledge.Topic{
		Base:  knowledge.Base{ID: id, Keywords: knowledge.NormalizeKeywords(keywords)},
		Title: title,
	}
}

func TestScore(t *testing.T) {
	espresso := topic("t1", "Espresso Basics", "espresso", "grind", "crema")

	tests := []struct {
		name     string
		item     knowledge.Item
		query    string
		expected float64
	}{
		{name: "empty query", item: espresso, query: "", expected: 0},
		{name: "only stop words", item: espresso, query: "what is the", expected: 0},
		{name: "exact keyword and label", item: espresso, query: "espresso", expected: 3 + 2},
		{name: "exact keyword only", item: espresso, query: "crema", expected: 3},
		{name: "token contains keyword", item: espresso, query: "grinder", expected: 1},
		{name: "keyword contains token", item: espresso, query: "rem", expected: 1},
		{name: "label bonus only", item: espresso, query: "basics", expected: 2},
		{name: "summed across tokens", item: espresso, query: "espresso crema grinder", expected: 5 + 3 + 1},
		{name: "no keywords scores zero", item: topic("t2", "Espresso"), query: "espresso", expected: 0},
		{name: "nil item", item: nil, query: "espresso", expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(tt.item, tt.query); got != tt.expected {
				t.Errorf("Score(%q) = %v, want %v", tt.query, got, tt.expected)
			}
		})
	}
}

func TestScoreEmptyQueryIsZeroForEveryKind(t *testing.T) {
	items, err := knowledge.LoadFile("../knowledge/testdata/knowledge.yaml")
	if err != nil {
		t.Fatalf("loading fixture: %v", err)
	}
	for _, item := range items {
		if got := Score(item, ""); got != 0 {
			t.Errorf("Score(%s, \"\") = %v, want 0", knowledge.ID(item), got)
		}
	}
}

func TestRankIsStable(t *testing.T) {
	items := []knowledge.Item{
		topic("a", "Alpha", "milk"),
		topic("b", "Bravo", "beans"),
		topic("c", "Charlie", "milk"),
		topic("d", "Delta", "beans"),
		topic("e", "Echo", "milk"),
	}

	ranked := Rank(items, "beans")
	var gotIDs []string
	for _, s := range ranked {
		gotIDs = append(gotIDs, knowledge.ID(s.Item))
	}
	want := []string{"b", "d", "a", "c", "e"}
	for i := range want {
		if gotIDs[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, gotIDs)
		}
	}

	t.Run("all ties keep input order", func(t *testing.T) {
		ranked := Rank(items, "")
		for i, s := range ranked {
			if knowledge.ID(s.Item) != knowledge.ID(items[i]) {
				t.Fatalf("position %d: expected %s, got %s", i, knowledge.ID(items[i]), knowledge.ID(s.Item))
			}
		}
	})

	t.Run("input is not mutated", func(t *testing.T) {
		Rank(items, "milk")
		if knowledge.ID(items[0]) != "a" || knowledge.ID(items[1]) != "b" {
			t.Fatalf("expected input order untouched")
		}
	})
}

func TestCustomWeights(t *testing.T) {
	scorer := NewScorer(Weights{Exact: 10, Partial: 0, Label: 0})
	item := topic("t", "Milk", "milk", "oat")
	if got := scorer.Score(item, "milk oatmeal"); got != 10 {
		t.Fatalf("expected 10, got %v", got)
	}
}
