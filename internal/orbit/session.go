package orbit

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"orbit/internal/chat"
	"orbit/internal/gesture"
	"orbit/internal/intent"
	"orbit/internal/knowledge"
	"orbit/internal/relevance"
	"orbit/internal/selection"
)

var ErrUnknownItem = errors.New("unknown knowledge item")

// SelectFunc is told about every resolved selection with the opening message
// that was handed to chat.
type SelectFunc func(item knowledge.Item, message string)

// Exchange is the outcome of one Send.
type Exchange struct {
	Reply    chat.Reply `json:"reply"`
	Fallback bool       `json:"fallback"`
	// Keywords lists what the exchange added to the window, user side first.
	Keywords []string `json:"keywords,omitempty"`
}

// Session holds one visitor's live state. All methods are safe for
// concurrent use; the chat call in Send runs without the lock held so input
// keeps flowing while a reply is pending.
type Session struct {
	ID string

	cfg    Config
	items  []knowledge.Item
	index  map[string]knowledge.Item
	chat   chat.Client
	logger *zap.Logger

	mu       sync.Mutex
	tracker  *intent.Tracker
	gestures *gesture.Controller
	bridge   *selection.Bridge
	awaiting int
	pending  []selected
	onSelect SelectFunc
}

type selected struct {
	item    knowledge.Item
	message string
}

// NewSession loads items into a fresh session. A nil client means offline.
func NewSession(items []knowledge.Item, client chat.Client, cfg Config, logger *zap.Logger) (*Session, error) {
	index, err := knowledge.Index(items)
	if err != nil {
		return nil, fmt.Errorf("indexing knowledge base: %w", err)
	}
	if client == nil {
		client = chat.Offline{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.FallbackReply == "" {
		cfg.FallbackReply = chat.DefaultFallbackReply
	}

	s := &Session{
		ID:      uuid.NewString(),
		cfg:     cfg,
		items:   items,
		index:   index,
		chat:    client,
		tracker: intent.NewTracker(),
	}
	s.logger = logger.With(zap.String("session", s.ID))
	s.bridge = selection.NewBridge(s.tracker, client)
	s.gestures = gesture.NewController(cfg.Gesture, s.tapped)
	return s, nil
}

// OnSelect registers fn for selections. It runs after the session lock is
// released.
func (s *Session) OnSelect(fn SelectFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onSelect = fn
}

// Items returns the loaded knowledge base.
func (s *Session) Items() []knowledge.Item { return s.items }

// Rank scores every item against query with the session's weights.
func (s *Session) Rank(query string) []relevance.Scored {
	return relevance.NewScorer(s.cfg.Weights).Rank(s.items, query)
}

func (s *Session) PointerDown(ev gesture.Event)   { s.input(func() { s.gestures.PointerDown(ev) }) }
func (s *Session) PointerMove(ev gesture.Event)   { s.input(func() { s.gestures.PointerMove(ev) }) }
func (s *Session) PointerUp(ev gesture.Event)     { s.input(func() { s.gestures.PointerUp(ev) }) }
func (s *Session) PointerCancel(ev gesture.Event) { s.input(func() { s.gestures.PointerCancel(ev) }) }
func (s *Session) PointerLeave(ev gesture.Event)  { s.input(func() { s.gestures.PointerLeave(ev) }) }
func (s *Session) Wheel(deltaY float64)           { s.input(func() { s.gestures.Wheel(deltaY) }) }

// Replay feeds a gesture script through the session's controller.
func (s *Session) Replay(script *gesture.Script, origin time.Time) error {
	var err error
	s.input(func() { err = script.Replay(s.gestures, origin) })
	return err
}

// Select resolves id and selects it as if its tile had been tapped.
func (s *Session) Select(id string) (string, error) {
	var (
		message string
		err     error
	)
	s.input(func() { message, err = s.selectLocked(id) })
	return message, err
}

// Dismiss clears the current selection.
func (s *Session) Dismiss() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bridge.Dismiss()
}

// Send delivers a user message. Failures never surface as errors: the
// fallback reply comes back and the keyword window is left alone.
func (s *Session) Send(ctx context.Context, text string) Exchange {
	s.mu.Lock()
	s.bridge.Dismiss()
	s.awaiting++
	s.mu.Unlock()

	reply, err := s.chat.Send(ctx, text)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.awaiting--
	if err != nil {
		s.logger.Warn("chat send failed", zap.Error(err))
		return Exchange{Reply: chat.Reply{Text: s.cfg.FallbackReply}, Fallback: true}
	}

	// One exchange is one turn: a word in both message and reply counts once.
	keywords := s.tracker.Record(append(knowledge.Tokenize(text), knowledge.Tokenize(reply.Text)...)...)
	s.logger.Debug("exchange recorded",
		zap.Int("keywords", len(keywords)),
		zap.Int("window", s.tracker.Len()),
		zap.Float64("intent", s.tracker.Level()),
	)
	return Exchange{Reply: reply, Keywords: keywords}
}

// Snapshot recomputes the frame for the current state.
func (s *Session) Snapshot() Frame {
	s.mu.Lock()
	defer s.mu.Unlock()

	frame := Recompute(s.items, s.tracker.Window(), s.gestures.Viewport(), s.cfg)
	if item, ok := s.bridge.Selected(); ok {
		frame.Selected = knowledge.ID(item)
	}
	frame.Awaiting = s.awaiting > 0
	s.logger.Debug("frame recomputed",
		zap.Int("tiles", len(frame.Tiles)),
		zap.Float64("intent", frame.IntentLevel),
	)
	return frame
}

// GestureState reports the controller state, mostly for tests and tooling.
func (s *Session) GestureState() gesture.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gestures.State()
}

// input runs fn under the lock, then delivers any selections it produced.
func (s *Session) input(fn func()) {
	s.mu.Lock()
	fn()
	pending := s.pending
	s.pending = nil
	hook := s.onSelect
	s.mu.Unlock()

	if hook == nil {
		return
	}
	for _, p := range pending {
		hook(p.item, p.message)
	}
}

// tapped is the controller's tap callback. The controller only fires it from
// inside input, so the lock is already held.
func (s *Session) tapped(id string) {
	if _, err := s.selectLocked(id); err != nil {
		s.logger.Warn("tap on unknown tile", zap.String("item", id))
	}
}

func (s *Session) selectLocked(id string) (string, error) {
	item, ok := s.index[id]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownItem, id)
	}
	message := s.bridge.Select(item)
	s.pending = append(s.pending, selected{item: item, message: message})
	s.logger.Info("item selected",
		zap.String("item", id),
		zap.String("kind", string(item.Kind())),
		zap.Strings("seed", selection.SeedKeywords(item)),
	)
	return message, nil
}
