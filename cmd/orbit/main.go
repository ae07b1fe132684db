package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	configPath string
	debug      bool
	logger     = zap.NewNop()
	logLevel   = zap.NewAtomicLevelAt(zapcore.InfoLevel)
)

func main() {
	root := &cobra.Command{
		Use:          "orbit",
		Short:        "Intent-driven spatial layout for a knowledge base",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := newLogger(debug)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			logger = l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}
	root.Version = version
	root.SetVersionTemplate("{{.Version}}\n")
	root.PersistentFlags().StringVar(&configPath, "config", "orbit.yaml", "Project config file")
	root.PersistentFlags().BoolVar(&debug, "debug", false, "Log at debug level")

	root.AddCommand(initCmd())
	root.AddCommand(ingestCmd())
	root.AddCommand(validateCmd())
	root.AddCommand(rankCmd())
	root.AddCommand(layoutCmd())
	root.AddCommand(selectCmd())
	root.AddCommand(replayCmd())
	root.AddCommand(serveCmd())
	root.AddCommand(versionCmd())
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := root.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// newLogger writes JSON logs to stderr so stdout stays free for command
// output and the MCP stdio transport.
func newLogger(debug bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}
	if debug {
		logLevel.SetLevel(zapcore.DebugLevel)
	}
	config.Level = logLevel
	return config.Build()
}

// applyLogLevel switches to the project's configured level unless --debug
// already forced debug.
func applyLogLevel(level string) error {
	if debug {
		return nil
	}
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return err
	}
	logLevel.SetLevel(lvl)
	return nil
}
