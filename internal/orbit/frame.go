// Package orbit composes the engine. Recompute derives what the renderer
// shows from the keyword window and viewport; Session owns the live state of
// one visitor and routes input, selection and chat through it.
package orbit

import (
	"strings"

	"orbit/internal/chat"
	"orbit/internal/gesture"
	"orbit/internal/intent"
	"orbit/internal/knowledge"
	"orbit/internal/layout"
	"orbit/internal/relevance"
	"orbit/internal/visibility"
)

type Config struct {
	Weights       relevance.Weights
	Visibility    visibility.Policy
	Layout        layout.Config
	Gesture       gesture.Config
	FallbackReply string
}

func DefaultConfig() Config {
	return Config{
		Weights:       relevance.DefaultWeights,
		Visibility:    visibility.DefaultPolicy,
		Layout:        layout.DefaultConfig,
		Gesture:       gesture.DefaultConfig,
		FallbackReply: chat.DefaultFallbackReply,
	}
}

// Tile is one placed item in the shape the presentation layer consumes.
type Tile struct {
	ID       string          `json:"id"`
	Kind     string          `json:"kind"`
	Label    string          `json:"label"`
	Summary  string          `json:"summary,omitempty"`
	Icon     string          `json:"icon"`
	Score    float64         `json:"score"`
	Ring     int             `json:"ring"`
	Position layout.Position `json:"position"`
}

type Frame struct {
	Tiles       []Tile           `json:"tiles"`
	Viewport    gesture.Viewport `json:"viewport"`
	IntentLevel float64          `json:"intent_level"`
	Window      []string         `json:"window"`
	// PriorityCapacity is the size of the center ring at this intent level.
	PriorityCapacity int    `json:"priority_capacity"`
	Selected         string `json:"selected,omitempty"`
	Awaiting         bool   `json:"awaiting_reply"`
}

// Recompute ranks, selects and lays out items for the given window. It has
// no hidden state: equal inputs give equal frames.
func Recompute(items []knowledge.Item, window []string, viewport gesture.Viewport, cfg Config) Frame {
	level := intent.Level(len(window))
	selector := visibility.NewSelector(cfg.Visibility, relevance.NewScorer(cfg.Weights))
	visible := selector.Select(items, strings.Join(window, " "), level)
	placed := layout.Compute(visible, level, cfg.Layout)

	tiles := make([]Tile, 0, len(placed))
	for _, p := range placed {
		tiles = append(tiles, Tile{
			ID:       knowledge.ID(p.Item),
			Kind:     string(p.Item.Kind()),
			Label:    p.Item.Label(),
			Summary:  p.Item.Summary(),
			Icon:     p.Item.Icon(),
			Score:    p.Score,
			Ring:     p.Ring,
			Position: p.Position,
		})
	}
	return Frame{
		Tiles:            tiles,
		Viewport:         viewport,
		IntentLevel:      level,
		Window:           append([]string{}, window...),
		PriorityCapacity: layout.PriorityCapacity(level),
	}
}
