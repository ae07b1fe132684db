// Package mcp exposes one orbit session as Model Context Protocol tools so an
// agent or a thin renderer can drive the canvas over stdio.
package mcp

import (
	"context"
	"time"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"orbit/internal/knowledge"
	"orbit/internal/orbit"
	"orbit/internal/store"
)

// Searcher is the full-text side of a store. It is optional.
type Searcher interface {
	Search(ctx context.Context, query, kind string) ([]store.SearchResult, error)
}

type Server struct {
	session *orbit.Session
	search  Searcher
	logger  *zap.Logger
	// origin anchors pointer event timestamps, which arrive as milliseconds
	// since the server started.
	origin time.Time
	mcp    *sdk.Server
}

func NewServer(session *orbit.Session, search Searcher, version string, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		session: session,
		search:  search,
		logger:  logger,
		origin:  time.Now(),
		mcp: sdk.NewServer(&sdk.Implementation{
			Name:    "orbit",
			Version: version,
		}, nil),
	}
	session.OnSelect(func(item knowledge.Item, message string) {
		s.logger.Info("selection opened conversation",
			zap.String("item", knowledge.ID(item)),
			zap.Int("message_length", len(message)),
		)
	})
	s.registerTools()
	return s
}

func (s *Server) Run(ctx context.Context, transport sdk.Transport) error {
	return s.mcp.Run(ctx, transport)
}
