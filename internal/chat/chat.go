// Package chat defines the conversational collaborator the session talks to
// and ships two implementations: Gemini, backed by google.golang.org/genai,
// and Offline, which always fails so callers fall back.
package chat

import (
	"context"
	"errors"
)

var ErrOffline = errors.New("chat backend is offline")

// DefaultFallbackReply is shown when a send fails.
const DefaultFallbackReply = "Sorry, I couldn't reach the assistant just now. Please try again in a moment."

// Reply is what the backend returned. Only Text is read for keywords; Data
// carries any structured payload through untouched.
type Reply struct {
	Text string         `json:"text"`
	Data map[string]any `json:"data,omitempty"`
}

type Client interface {
	// Send delivers a user message and waits for the reply. It may block
	// for as long as the backend takes.
	Send(ctx context.Context, text string) (Reply, error)
	// AppendAssistant adds an assistant turn the user did not ask for, such
	// as the opening message of a selected item.
	AppendAssistant(text string)
}

type Offline struct{}

func (Offline) Send(context.Context, string) (Reply, error) { return Reply{}, ErrOffline }
func (Offline) AppendAssistant(string)                      {}

// Func adapts a plain function into a Client that ignores assistant turns.
type Func func(ctx context.Context, text string) (Reply, error)

func (f Func) Send(ctx context.Context, text string) (Reply, error) { return f(ctx, text) }
func (Func) AppendAssistant(string)                                 {}
