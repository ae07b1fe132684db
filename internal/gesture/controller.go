// Package gesture turns raw pointer and wheel input into pan, zoom and tap
// selection. A Controller owns its pointer bookkeeping outright; feed it
// events and read back the viewport.
package gesture

import (
	"math"
	"slices"
	"time"
)

type State int

const (
	Idle State = iota
	// PanCandidate has exactly one pointer down whose movement is not yet
	// classified.
	PanCandidate
	Panning
	Pinching
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case PanCandidate:
		return "pan-candidate"
	case Panning:
		return "panning"
	case Pinching:
		return "pinching"
	default:
		return "unknown"
	}
}

const (
	DefaultTapMaxDuration = 200 * time.Millisecond
	DefaultTapMaxMove     = 8.0
)

type Config struct {
	TapMaxDuration time.Duration
	TapMaxMove     float64
	ZoomMin        float64
	ZoomMax        float64
	WheelStep      float64
}

var DefaultConfig = Config{
	TapMaxDuration: DefaultTapMaxDuration,
	TapMaxMove:     DefaultTapMaxMove,
	ZoomMin:        0.4,
	ZoomMax:        2.5,
	WheelStep:      0.1,
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

func distance(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

type Viewport struct {
	Pan  Point   `json:"pan"`
	Zoom float64 `json:"zoom"`
}

// Event is one pointer sample. Target is the id of the tile under the
// pointer, or empty when the pointer is over bare canvas.
type Event struct {
	Pointer int
	X       float64
	Y       float64
	Time    time.Time
	Target  string
}

func (e Event) point() Point { return Point{X: e.X, Y: e.Y} }

type TapFunc func(itemID string)

type Controller struct {
	cfg      Config
	state    State
	viewport Viewport
	onTap    TapFunc

	pointers map[int]Point
	downs    map[int]Point
	order    []int

	startTime time.Time
	startPos  Point
	startPan  Point
	target    string
	moved     bool
	multi     bool

	pinchDistance float64
	pinchZoom     float64
}

func NewController(cfg Config, onTap TapFunc) *Controller {
	c := &Controller{
		cfg:      cfg,
		onTap:    onTap,
		pointers: make(map[int]Point),
		downs:    make(map[int]Point),
	}
	c.viewport.Zoom = c.clamp(1)
	return c
}

func (c *Controller) State() State { return c.state }

func (c *Controller) Viewport() Viewport { return c.viewport }

func (c *Controller) ActivePointers() int { return len(c.pointers) }

// OnTap replaces the tap callback.
func (c *Controller) OnTap(fn TapFunc) { c.onTap = fn }

func (c *Controller) PointerDown(ev Event) {
	pos := ev.point()
	if _, ok := c.pointers[ev.Pointer]; ok {
		c.pointers[ev.Pointer] = pos
		return
	}
	c.pointers[ev.Pointer] = pos
	c.downs[ev.Pointer] = pos
	c.order = append(c.order, ev.Pointer)

	switch len(c.pointers) {
	case 1:
		c.startTime = ev.Time
		c.startPos = pos
		c.startPan = c.viewport.Pan
		c.target = ev.Target
		c.moved = false
		c.multi = false
		c.state = PanCandidate
	default:
		c.multi = true
		c.beginPinch()
		c.state = Pinching
	}
}

func (c *Controller) PointerMove(ev Event) {
	if _, ok := c.pointers[ev.Pointer]; !ok {
		return
	}
	pos := ev.point()
	c.pointers[ev.Pointer] = pos
	c.trackMovement(ev.Pointer, pos)

	switch c.state {
	case Pinching:
		c.pinch(ev.Pointer)
	case PanCandidate, Panning:
		if len(c.pointers) != 1 {
			return
		}
		c.viewport.Pan = c.startPan.Add(pos.Sub(c.startPos))
		if c.moved || c.multi {
			c.state = Panning
		}
	}
}

// PointerUp ends a pointer's contact and may resolve a tap.
func (c *Controller) PointerUp(ev Event) { c.release(ev, true) }

// PointerCancel follows the same resolution as PointerUp.
func (c *Controller) PointerCancel(ev Event) { c.release(ev, true) }

// PointerLeave drops the pointer without resolving a tap.
func (c *Controller) PointerLeave(ev Event) { c.release(ev, false) }

// Wheel zooms in for negative deltaY and out for positive, one step per
// event.
func (c *Controller) Wheel(deltaY float64) {
	switch {
	case deltaY < 0:
		c.setZoom(c.viewport.Zoom + c.cfg.WheelStep)
	case deltaY > 0:
		c.setZoom(c.viewport.Zoom - c.cfg.WheelStep)
	}
}

// Reset drops every pointer and restores the initial viewport.
func (c *Controller) Reset() {
	clear(c.pointers)
	clear(c.downs)
	c.order = c.order[:0]
	c.state = Idle
	c.target = ""
	c.viewport = Viewport{Zoom: c.clamp(1)}
}

func (c *Controller) release(ev Event, allowTap bool) {
	if _, ok := c.pointers[ev.Pointer]; !ok {
		return
	}
	pos := ev.point()
	c.trackMovement(ev.Pointer, pos)

	single := !c.multi && len(c.pointers) == 1
	delete(c.pointers, ev.Pointer)
	delete(c.downs, ev.Pointer)
	c.order = slices.DeleteFunc(c.order, func(id int) bool { return id == ev.Pointer })

	if allowTap && single && c.isTap(ev.Time) {
		target := c.target
		c.viewport.Pan = c.startPan
		c.endGesture()
		if c.onTap != nil {
			c.onTap(target)
		}
		return
	}

	switch len(c.pointers) {
	case 0:
		c.endGesture()
	case 1:
		remaining := c.pointers[c.order[0]]
		c.startPos = remaining
		c.startPan = c.viewport.Pan
		c.state = PanCandidate
	default:
		c.beginPinch()
	}
}

func (c *Controller) isTap(at time.Time) bool {
	if c.target == "" || c.moved {
		return false
	}
	return at.Sub(c.startTime) < c.cfg.TapMaxDuration
}

func (c *Controller) endGesture() {
	c.state = Idle
	c.target = ""
	c.moved = false
	c.multi = false
	c.pinchDistance = 0
}

// trackMovement latches moved once any pointer strays TapMaxMove or more
// from where it went down.
func (c *Controller) trackMovement(id int, pos Point) {
	if c.moved {
		return
	}
	if down, ok := c.downs[id]; ok && distance(pos, down) >= c.cfg.TapMaxMove {
		c.moved = true
	}
}

func (c *Controller) beginPinch() {
	a, b := c.pinchPair()
	c.pinchDistance = distance(a, b)
	c.pinchZoom = c.viewport.Zoom
	c.state = Pinching
}

func (c *Controller) pinchPair() (Point, Point) {
	return c.pointers[c.order[0]], c.pointers[c.order[1]]
}

func (c *Controller) pinch(moved int) {
	if len(c.order) < 2 || (moved != c.order[0] && moved != c.order[1]) {
		return
	}
	a, b := c.pinchPair()
	current := distance(a, b)
	if c.pinchDistance <= 0 {
		// Both pointers started on the same spot. Take this frame as the
		// new baseline and leave zoom alone.
		if current > 0 {
			c.pinchDistance = current
			c.pinchZoom = c.viewport.Zoom
		}
		return
	}
	c.setZoom(c.pinchZoom * (current / c.pinchDistance))
}

func (c *Controller) setZoom(z float64) {
	if math.IsNaN(z) || math.IsInf(z, 0) {
		return
	}
	c.viewport.Zoom = c.clamp(z)
}

func (c *Controller) clamp(z float64) float64 {
	return math.Min(c.cfg.ZoomMax, math.Max(c.cfg.ZoomMin, z))
}
