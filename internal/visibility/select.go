// Package visibility picks which scored items make it onto the canvas. The
// visible count shrinks from Ceiling toward Floor as intent rises, never
// dropping below Floor unless the knowledge base itself is smaller.
package visibility

import (
	"math"

	"orbit/internal/knowledge"
	"orbit/internal/relevance"
)

type Policy struct {
	Floor   int `yaml:"floor"`
	Ceiling int `yaml:"ceiling"`
}

var DefaultPolicy = Policy{Floor: 50, Ceiling: 60}

// Count returns max(Floor, round(Ceiling - level*(Ceiling-Floor))), capped at
// total.
func (p Policy) Count(level float64, total int) int {
	level = math.Max(0, math.Min(1, level))
	n := int(math.Round(float64(p.Ceiling) - level*float64(p.Ceiling-p.Floor)))
	n = max(p.Floor, n)
	return max(0, min(n, total))
}

type Selector struct {
	policy Policy
	scorer *relevance.Scorer
}

func NewSelector(policy Policy, scorer *relevance.Scorer) *Selector {
	if scorer == nil {
		scorer = relevance.NewScorer(relevance.DefaultWeights)
	}
	return &Selector{policy: policy, scorer: scorer}
}

// Select ranks items against query and truncates to the elastic count.
func (s *Selector) Select(items []knowledge.Item, query string, level float64) []relevance.Scored {
	ranked := s.scorer.Rank(items, query)
	return ranked[:s.policy.Count(level, len(ranked))]
}

func (s *Selector) Policy() Policy {
	return s.policy
}
