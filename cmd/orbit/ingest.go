package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"orbit/internal/config"
	"orbit/internal/ingest"
)

func ingestCmd() *cobra.Command {
	var full bool
	var dsn string
	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Synchronise the knowledge store with markdown source files",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIngest(cmd.Context(), dsn, full)
		},
	}
	cmd.Flags().BoolVar(&full, "full", false, "Force full re-ingestion (ignore incremental hashes)")
	cmd.Flags().StringVar(&dsn, "db", "", "Store DSN (defaults to knowledge.source)")
	return cmd
}

func runIngest(ctx context.Context, dsn string, full bool) error {
	cfg, err := config.LoadProjectConfig(configPath)
	if err != nil {
		return err
	}
	if err := applyLogLevel(cfg.Log.Level); err != nil {
		return err
	}
	if dsn == "" {
		dsn = cfg.Knowledge.Source
	}
	if !isStoreDSN(dsn) {
		return fmt.Errorf("ingest needs a sqlite:// or postgres:// store, got %q", dsn)
	}
	if len(cfg.Knowledge.Paths) == 0 {
		return fmt.Errorf("knowledge.paths is empty; nothing to ingest")
	}

	db, err := openStore(ctx, dsn)
	if err != nil {
		return err
	}
	defer db.Close(ctx)

	result, err := ingest.Run(ctx, cfg, db, ingest.Options{Full: full, Logger: logger})
	if err != nil {
		return err
	}

	fmt.Fprintln(os.Stdout, "Ingestion complete.")
	fmt.Fprintf(os.Stdout, "  Items upserted: %d\n", result.ItemsUpserted)
	fmt.Fprintf(os.Stdout, "  Items removed:  %d\n", result.ItemsRemoved)
	fmt.Fprintf(os.Stdout, "  Files skipped:  %d\n", result.FilesSkipped)

	if len(result.Errors) > 0 {
		fmt.Fprintf(os.Stdout, "\nErrors (%d):\n", len(result.Errors))
		for _, item := range result.Errors {
			fmt.Fprintf(os.Stdout, "  - %v\n", item)
		}
		return fmt.Errorf("ingestion completed with errors")
	}

	return nil
}
