package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"orbit/internal/chat"
	"orbit/internal/config"
	"orbit/internal/ingest"
	"orbit/internal/knowledge"
	"orbit/internal/orbit"
	"orbit/internal/store"
)

// project is a loaded config plus its knowledge base. db is set only when
// the source is a sqlite:// or postgres:// store.
type project struct {
	cfg   *config.ProjectConfig
	items []knowledge.Item
	db    store.Store
}

// loadProject reads the config and the knowledge source. A non-empty
// override replaces knowledge.source.
func loadProject(ctx context.Context, override string) (*project, error) {
	cfg, err := config.LoadProjectConfig(configPath)
	if err != nil {
		return nil, err
	}
	if err := applyLogLevel(cfg.Log.Level); err != nil {
		return nil, err
	}
	if override != "" {
		cfg.Knowledge.Source = override
	}

	p := &project{cfg: cfg}
	source := cfg.Knowledge.Source
	switch {
	case isStoreDSN(source):
		db, err := openStore(ctx, source)
		if err != nil {
			return nil, err
		}
		items, err := store.LoadItems(ctx, db)
		if err != nil {
			db.Close(ctx)
			return nil, err
		}
		p.db, p.items = db, items
	case source == "":
		items, err := ingest.LoadItems(cfg.Knowledge.Paths, cfg.Knowledge.Exclude)
		if err != nil {
			return nil, err
		}
		p.items = items
	default:
		items, err := loadPath(source, cfg.Knowledge.Exclude)
		if err != nil {
			return nil, err
		}
		p.items = items
	}

	logger.Debug("knowledge base loaded",
		zap.String("source", source),
		zap.Int("items", len(p.items)),
	)
	return p, nil
}

func loadPath(path string, excludes []string) ([]knowledge.Item, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("loading knowledge base: %w", err)
	}
	if info.IsDir() {
		return ingest.LoadItems([]string{path}, excludes)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return knowledge.LoadFile(path)
	default:
		return nil, fmt.Errorf("unsupported knowledge source %s: expected a .yaml file, a markdown directory, or a store DSN", path)
	}
}

func (p *project) Close(ctx context.Context) {
	if p.db != nil {
		_ = p.db.Close(ctx)
	}
}

func (p *project) engineConfig() orbit.Config {
	return orbit.Config{
		Weights:       p.cfg.Relevance,
		Visibility:    p.cfg.Visibility,
		Layout:        p.cfg.Layout,
		Gesture:       p.cfg.GestureOptions(),
		FallbackReply: p.cfg.Chat.FallbackReply,
	}
}

// chatClient builds the configured backend. A Gemini config without a key
// degrades to offline so the canvas still works.
func (p *project) chatClient(ctx context.Context) chat.Client {
	if !strings.EqualFold(p.cfg.Chat.Provider, config.ProviderGemini) {
		return chat.Offline{}
	}
	client, err := chat.NewGemini(ctx, chat.GeminiConfig{
		APIKey:       p.cfg.Chat.APIKey(),
		Model:        p.cfg.Chat.Model,
		SystemPrompt: p.cfg.Chat.SystemPrompt,
	}, logger)
	if err != nil {
		logger.Warn("chat disabled", zap.String("provider", p.cfg.Chat.Provider), zap.Error(err))
		return chat.Offline{}
	}
	return client
}

func (p *project) newSession(ctx context.Context) (*orbit.Session, error) {
	return orbit.NewSession(p.items, p.chatClient(ctx), p.engineConfig(), logger)
}
