package gesture

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

var ErrUnknownEvent = errors.New("unknown gesture event kind")

// ScriptEvent is one recorded input. At is milliseconds since the start of
// the script.
type ScriptEvent struct {
	Kind    string  `yaml:"kind"`
	Pointer int     `yaml:"pointer"`
	X       float64 `yaml:"x"`
	Y       float64 `yaml:"y"`
	At      int64   `yaml:"at"`
	Target  string  `yaml:"target"`
	Delta   float64 `yaml:"delta"`
}

type Script struct {
	Events []ScriptEvent `yaml:"events"`
}

func ParseScript(data []byte) (*Script, error) {
	var script Script
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("parsing gesture script: %w", err)
	}
	for i, ev := range script.Events {
		if !knownKind(ev.Kind) {
			return nil, fmt.Errorf("event %d: %w: %q", i, ErrUnknownEvent, ev.Kind)
		}
	}
	return &script, nil
}

func knownKind(kind string) bool {
	switch strings.ToLower(kind) {
	case "down", "move", "up", "cancel", "leave", "wheel":
		return true
	default:
		return false
	}
}

// Replay feeds every event to c in order, stamping times relative to origin.
func (s *Script) Replay(c *Controller, origin time.Time) error {
	for i, se := range s.Events {
		ev := Event{
			Pointer: se.Pointer,
			X:       se.X,
			Y:       se.Y,
			Time:    origin.Add(time.Duration(se.At) * time.Millisecond),
			Target:  se.Target,
		}
		switch strings.ToLower(se.Kind) {
		case "down":
			c.PointerDown(ev)
		case "move":
			c.PointerMove(ev)
		case "up":
			c.PointerUp(ev)
		case "cancel":
			c.PointerCancel(ev)
		case "leave":
			c.PointerLeave(ev)
		case "wheel":
			c.Wheel(se.Delta)
		default:
			return fmt.Errorf("event %d: %w: %q", i, ErrUnknownEvent, se.Kind)
		}
	}
	return nil
}
