package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

const DefaultGeminiModel = "gemini-2.5-flash"

// Generator is the slice of the genai client Gemini needs. *genai.Models
// satisfies it.
type Generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type GeminiConfig struct {
	APIKey       string
	Model        string
	SystemPrompt string
}

// Gemini keeps the running conversation and replays it on every send.
type Gemini struct {
	gen    Generator
	model  string
	config *genai.GenerateContentConfig
	logger *zap.Logger

	mu      sync.Mutex
	history []*genai.Content
}

func NewGemini(ctx context.Context, cfg GeminiConfig, logger *zap.Logger) (*Gemini, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini API key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	return NewGeminiWithGenerator(client.Models, cfg, logger), nil
}

func NewGeminiWithGenerator(gen Generator, cfg GeminiConfig, logger *zap.Logger) *Gemini {
	if logger == nil {
		logger = zap.NewNop()
	}
	model := cfg.Model
	if model == "" {
		model = DefaultGeminiModel
	}
	g := &Gemini{gen: gen, model: model, logger: logger}
	if cfg.SystemPrompt != "" {
		g.config = &genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(cfg.SystemPrompt, genai.RoleUser),
		}
	}
	return g
}

func (g *Gemini) Send(ctx context.Context, text string) (Reply, error) {
	g.mu.Lock()
	contents := append(append([]*genai.Content(nil), g.history...), genai.NewContentFromText(text, genai.RoleUser))
	g.mu.Unlock()

	resp, err := g.gen.GenerateContent(ctx, g.model, contents, g.config)
	if err != nil {
		return Reply{}, fmt.Errorf("gemini generate: %w", err)
	}
	reply := strings.TrimSpace(resp.Text())
	if reply == "" {
		return Reply{}, errors.New("gemini returned an empty reply")
	}
	g.logger.Debug("gemini reply", zap.String("model", g.model), zap.Int("chars", len(reply)))

	g.mu.Lock()
	g.history = append(g.history,
		genai.NewContentFromText(text, genai.RoleUser),
		genai.NewContentFromText(reply, genai.RoleModel),
	)
	g.mu.Unlock()
	return Reply{Text: reply}, nil
}

func (g *Gemini) AppendAssistant(text string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.history = append(g.history, genai.NewContentFromText(text, genai.RoleModel))
}

// Turns reports how many turns the conversation holds.
func (g *Gemini) Turns() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.history)
}
