package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"orbit/internal/mcp"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

func serveCmd() *cobra.Command {
	var source string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server over stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := loadProject(ctx, source)
			if err != nil {
				return err
			}
			defer p.Close(ctx)

			session, err := p.newSession(ctx)
			if err != nil {
				return err
			}
			logger.Info("serving session",
				zap.String("session", session.ID),
				zap.Int("items", len(session.Items())),
			)

			var search mcp.Searcher
			if p.db != nil {
				search = p.db
			}
			server := mcp.NewServer(session, search, version, logger)
			return server.Run(ctx, &sdk.StdioTransport{})
		},
	}
	cmd.Flags().StringVar(&source, "source", "", "Knowledge source (defaults to knowledge.source)")
	return cmd
}
