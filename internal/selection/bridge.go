// Package selection turns a tapped tile into conversation: it remembers the
// selected item, seeds the keyword window with it, and hands an opening
// message to the chat collaborator.
package selection

import (
	"orbit/internal/intent"
	"orbit/internal/knowledge"
)

// SeedCount is how many of an item's keywords enter the window on selection.
const SeedCount = 3

// SeedKeywords returns the item's first SeedCount keywords.
func SeedKeywords(item knowledge.Item) []string {
	return item.Meta().Keywords.Seed(SeedCount)
}

// Assistant receives the opening message as the next assistant turn.
type Assistant interface {
	AppendAssistant(text string)
}

type Bridge struct {
	tracker   *intent.Tracker
	assistant Assistant
	selected  knowledge.Item
}

// NewBridge wires a bridge to the tracker it seeds. assistant may be nil.
func NewBridge(tracker *intent.Tracker, assistant Assistant) *Bridge {
	return &Bridge{tracker: tracker, assistant: assistant}
}

// Select makes item the current selection and returns its opening message.
func (b *Bridge) Select(item knowledge.Item) string {
	b.selected = item
	b.tracker.Record(SeedKeywords(item)...)

	message := OpeningMessage(item)
	if b.assistant != nil {
		b.assistant.AppendAssistant(message)
	}
	return message
}

// Dismiss clears the selection. It is also called when a message is sent.
func (b *Bridge) Dismiss() {
	b.selected = nil
}

// Selected reports the current selection, if any.
func (b *Bridge) Selected() (knowledge.Item, bool) {
	return b.selected, b.selected != nil
}
