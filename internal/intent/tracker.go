// Package intent keeps the rolling keyword window that drives relevance and
// derives how focused the conversation has become.
package intent

import (
	"strings"

	"orbit/internal/knowledge"
)

const (
	// WindowSize is the number of keywords kept; older entries are evicted
	// first.
	WindowSize = 20
	// SaturationLength is the window length at which the intent level
	// reaches 1.
	SaturationLength = 5
)

type Tracker struct {
	window   []string
	capacity int
}

func NewTracker() *Tracker {
	return &Tracker{capacity: WindowSize}
}

// Record appends keywords and keeps only the newest WindowSize entries.
// Keywords are lowercased; blanks and repeats within a single call are
// skipped. It returns the keywords appended, in order.
func (t *Tracker) Record(keywords ...string) []string {
	seen := make(map[string]struct{}, len(keywords))
	added := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		if _, dup := seen[kw]; dup {
			continue
		}
		seen[kw] = struct{}{}
		added = append(added, kw)
	}
	t.window = append(t.window, added...)
	if over := len(t.window) - t.capacity; over > 0 {
		t.window = append(t.window[:0:0], t.window[over:]...)
	}
	return added
}

// RecordText tokenizes a message and records its keywords.
func (t *Tracker) RecordText(text string) []string {
	tokens := knowledge.Tokenize(text)
	t.Record(tokens...)
	return tokens
}

func (t *Tracker) Window() []string {
	return append([]string(nil), t.window...)
}

func (t *Tracker) Len() int {
	return len(t.window)
}

// Query joins the window into the free-text query the scorer consumes.
func (t *Tracker) Query() string {
	return strings.Join(t.window, " ")
}

func (t *Tracker) Level() float64 {
	return Level(len(t.window))
}

func (t *Tracker) Reset() {
	t.window = nil
}

// Level maps a window length onto [0,1].
func Level(windowLength int) float64 {
	if windowLength <= 0 {
		return 0
	}
	return min(float64(windowLength)/SaturationLength, 1)
}
