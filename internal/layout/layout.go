// Package layout places visible items on concentric rings around a fixed
// canvas center. The highest scoring items sit in a small priority ring; the
// rest are packed into outer rings whose capacity is bounded by their
// circumference so tiles in one ring never overlap.
//
// Compute is a pure function of its inputs.
package layout

import (
	"hash/fnv"
	"math"

	"orbit/internal/knowledge"
	"orbit/internal/relevance"
)

type Config struct {
	TileWidth      float64 `yaml:"tile_width"`
	TileHeight     float64 `yaml:"tile_height"`
	TileSpacing    float64 `yaml:"tile_spacing"`
	PriorityRadius float64 `yaml:"priority_radius"`
	RingSpacing    float64 `yaml:"ring_spacing"`
	// Jitter, when positive, nudges each tile by up to this many pixels on
	// each axis. The offset is derived from the item id.
	Jitter float64 `yaml:"jitter"`
}

var DefaultConfig = Config{
	TileWidth:      140,
	TileHeight:     80,
	TileSpacing:    16,
	PriorityRadius: 90,
	RingSpacing:    96,
}

// Position is relative to the canvas center, never screen space.
type Position struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Distance float64 `json:"distance"`
}

type Placed struct {
	Item     knowledge.Item
	Score    float64
	Position Position
	// Ring is 0 for the priority zone and 1.. for the outer rings.
	Ring int
}

// Ring describes one concentric ring of a plan. Items First..First+Count-1
// of the ordered input land on it.
type Ring struct {
	Index    int
	Radius   float64
	First    int
	Count    int
	Capacity int
	Offset   float64
}

// PriorityCapacity is a step function of intent: the more focused the
// conversation, the fewer items share the center.
func PriorityCapacity(level float64) int {
	switch {
	case level > 0.5:
		return 1
	case level > 0.2:
		return 2
	default:
		return 3
	}
}

// FirstRingRadius leaves a full tile height plus spacing between the
// priority ring and ring one.
func (c Config) FirstRingRadius() float64 {
	return c.PriorityRadius + c.TileHeight + c.TileSpacing
}

// RingCapacity is how many tiles fit side by side on a ring of radius r. It
// is 0 when a single tile is wider than the ring's circumference.
func (c Config) RingCapacity(radius float64) int {
	slot := c.TileWidth + c.TileSpacing
	if slot <= 0 {
		return 1
	}
	return int(math.Floor(2 * math.Pi * radius / slot))
}

// Plan assigns n ordered items to rings.
func Plan(n int, level float64, cfg Config) []Ring {
	if n <= 0 {
		return nil
	}

	priority := min(PriorityCapacity(level), n)
	rings := []Ring{{
		Index:    0,
		Radius:   cfg.PriorityRadius,
		First:    0,
		Count:    priority,
		Capacity: PriorityCapacity(level),
	}}

	placed := priority
	radius := cfg.FirstRingRadius()
	for index := 1; placed < n; index++ {
		capacity := cfg.RingCapacity(radius)
		for capacity == 0 && cfg.RingSpacing > 0 {
			radius += cfg.RingSpacing
			capacity = cfg.RingCapacity(radius)
		}
		capacity = max(capacity, 1)
		count := min(capacity, n-placed)
		ring := Ring{
			Index:    index,
			Radius:   radius,
			First:    placed,
			Count:    count,
			Capacity: capacity,
		}
		if index%2 == 0 {
			ring.Offset = math.Pi / float64(count)
		}
		rings = append(rings, ring)
		placed += count
		radius += cfg.RingSpacing
	}
	return rings
}

// Compute places the ordered visible items. The same input always yields the
// same output.
func Compute(visible []relevance.Scored, level float64, cfg Config) []Placed {
	rings := Plan(len(visible), level, cfg)
	out := make([]Placed, 0, len(visible))
	for _, ring := range rings {
		// The priority ring keeps its slots fixed by capacity; outer rings
		// spread whatever they hold.
		slots := ring.Count
		if ring.Index == 0 {
			slots = ring.Capacity
		}
		for j := 0; j < ring.Count; j++ {
			scored := visible[ring.First+j]
			angle := 2*math.Pi*float64(j)/float64(slots) - math.Pi/2 + ring.Offset
			pos := Position{
				X:        math.Cos(angle) * ring.Radius,
				Y:        math.Sin(angle) * ring.Radius,
				Distance: ring.Radius,
			}
			if cfg.Jitter > 0 {
				dx, dy := jitter(knowledge.ID(scored.Item))
				pos.X += dx * cfg.Jitter
				pos.Y += dy * cfg.Jitter
			}
			out = append(out, Placed{
				Item:     scored.Item,
				Score:    scored.Score,
				Position: pos,
				Ring:     ring.Index,
			})
		}
	}
	return out
}

// Positions is Compute keyed by item id.
func Positions(visible []relevance.Scored, level float64, cfg Config) map[string]Position {
	placed := Compute(visible, level, cfg)
	positions := make(map[string]Position, len(placed))
	for _, p := range placed {
		positions[knowledge.ID(p.Item)] = p.Position
	}
	return positions
}

// jitter maps an id onto a fixed offset in [-1,1] on each axis.
func jitter(id string) (float64, float64) {
	h := fnv.New64a()
	h.Write([]byte(id))
	sum := h.Sum64()
	x := float64(sum&0xffffffff) / float64(math.MaxUint32)
	y := float64(sum>>32) / float64(math.MaxUint32)
	return x*2 - 1, y*2 - 1
}
