package visibility

import (
	"fmt"
	"testing"

	"orbit/internal/knowledge"
	"orbit/internal/relevance"
)

func makeItems(n int) []knowledge.Item {
	items := make([]knowledge.Item, n)
	for i := range items {
		items[i] = knowledge.Topic{
			Base:  knowledge.Base{ID: fmt.Sprintf("t%03d", i), Keywords: knowledge.Keywords{fmt.Sprintf("kw%03d", i)}},
			Title: fmt.Sprintf("Topic %d", i),
		}
	}
	return items
}

func TestCount(t *testing.T) {
	tests := []struct {
		name     string
		level    float64
		total    int
		expected int
	}{
		{name: "no intent", level: 0, total: 70, expected: 60},
		{name: "full intent", level: 1, total: 70, expected: 50},
		{name: "half intent rounds", level: 0.5, total: 70, expected: 55},
		{name: "level 0.25 rounds half away", level: 0.25, total: 70, expected: 58},
		{name: "small base shows everything", level: 0, total: 12, expected: 12},
		{name: "small base at full intent", level: 1, total: 30, expected: 30},
		{name: "empty base", level: 0.4, total: 0, expected: 0},
		{name: "level above range clamps", level: 3, total: 70, expected: 50},
		{name: "negative level clamps", level: -1, total: 70, expected: 60},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DefaultPolicy.Count(tt.level, tt.total); got != tt.expected {
				t.Errorf("Count(%v, %d) = %d, want %d", tt.level, tt.total, got, tt.expected)
			}
		})
	}
}

func TestCountBounds(t *testing.T) {
	for step := 0; step <= 100; step++ {
		level := float64(step) / 100
		for _, total := range []int{50, 51, 59, 60, 61, 200} {
			got := DefaultPolicy.Count(level, total)
			if got < 50 || got > 60 {
				t.Fatalf("Count(%v, %d) = %d, outside [50,60]", level, total, got)
			}
		}
	}
}

func TestSelect(t *testing.T) {
	items := makeItems(70)
	selector := NewSelector(DefaultPolicy, nil)

	t.Run("empty context shows sixty", func(t *testing.T) {
		visible := selector.Select(items, "", 0)
		if len(visible) != 60 {
			t.Fatalf("expected 60 visible, got %d", len(visible))
		}
		if knowledge.ID(visible[0].Item) != "t000" {
			t.Fatalf("expected input order to survive all-zero scores")
		}
	})

	t.Run("relevant item is promoted", func(t *testing.T) {
		visible := selector.Select(items, "kw065", 1)
		if len(visible) != 50 {
			t.Fatalf("expected 50 visible, got %d", len(visible))
		}
		if knowledge.ID(visible[0].Item) != "t065" {
			t.Fatalf("expected t065 first, got %s", knowledge.ID(visible[0].Item))
		}
	})

	t.Run("empty base", func(t *testing.T) {
		if visible := selector.Select(nil, "kw", 0); len(visible) != 0 {
			t.Fatalf("expected no items, got %d", len(visible))
		}
	})

	t.Run("custom scorer", func(t *testing.T) {
		sel := NewSelector(Policy{Floor: 2, Ceiling: 4}, relevance.NewScorer(relevance.DefaultWeights))
		if got := len(sel.Select(items, "", 0)); got != 4 {
			t.Fatalf("expected 4, got %d", got)
		}
	})
}
