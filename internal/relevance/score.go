// Package relevance scores knowledge items against a free-text query built
// from recent conversation keywords.
package relevance

import (
	"slices"
	"strings"

	"orbit/internal/knowledge"
)

// Weights are tunable. Only the relative ordering they produce matters to
// callers.
type Weights struct {
	Exact   float64 `yaml:"exact"`
	Partial float64 `yaml:"partial"`
	Label   float64 `yaml:"label"`
}

var DefaultWeights = Weights{Exact: 3, Partial: 1, Label: 2}

type Scored struct {
	Item  knowledge.Item
	Score float64
}

type Scorer struct {
	weights Weights
}

func NewScorer(weights Weights) *Scorer {
	return &Scorer{weights: weights}
}

// Score tokenizes query and sums, per token, an exact keyword match or else a
// substring match in either direction, plus a bonus when the token appears in
// the item's label. Items without keywords always score 0.
func (s *Scorer) Score(item knowledge.Item, query string) float64 {
	if item == nil {
		return 0
	}
	keywords := item.Meta().Keywords
	if len(keywords) == 0 {
		return 0
	}
	tokens := knowledge.Tokenize(query)
	if len(tokens) == 0 {
		return 0
	}

	label := strings.ToLower(item.Label())
	var score float64
	for _, token := range tokens {
		score += s.keywordWeight(keywords, token)
		if strings.Contains(label, token) {
			score += s.weights.Label
		}
	}
	return score
}

func (s *Scorer) keywordWeight(keywords knowledge.Keywords, token string) float64 {
	partial := false
	for _, kw := range keywords {
		if kw == token {
			return s.weights.Exact
		}
		if !partial && (strings.Contains(kw, token) || strings.Contains(token, kw)) {
			partial = true
		}
	}
	if partial {
		return s.weights.Partial
	}
	return 0
}

// Rank scores every item and sorts descending. Equal scores keep their input
// order.
func (s *Scorer) Rank(items []knowledge.Item, query string) []Scored {
	scored := make([]Scored, len(items))
	for i, item := range items {
		scored[i] = Scored{Item: item, Score: s.Score(item, query)}
	}
	slices.SortStableFunc(scored, func(a, b Scored) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		default:
			return 0
		}
	})
	return scored
}

var defaultScorer = NewScorer(DefaultWeights)

func Score(item knowledge.Item, query string) float64 {
	return defaultScorer.Score(item, query)
}

func Rank(items []knowledge.Item, query string) []Scored {
	return defaultScorer.Rank(items, query)
}
