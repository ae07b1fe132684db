package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"orbit/internal/knowledge"
)

func rankCmd() *cobra.Command {
	var limit int
	var source string
	cmd := &cobra.Command{
		Use:   "rank <text>",
		Short: "Score every knowledge item against free text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadProject(cmd.Context(), source)
			if err != nil {
				return err
			}
			defer p.Close(cmd.Context())

			session, err := p.newSession(cmd.Context())
			if err != nil {
				return err
			}
			ranked := session.Rank(strings.Join(args, " "))
			if limit > 0 && len(ranked) > limit {
				ranked = ranked[:limit]
			}
			for _, r := range ranked {
				fmt.Fprintf(os.Stdout, "%6.2f  %s (%s) %s\n", r.Score, knowledge.ID(r.Item), r.Item.Kind(), r.Item.Label())
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "Maximum items to print (0 for all)")
	cmd.Flags().StringVar(&source, "source", "", "Knowledge source (defaults to knowledge.source)")
	return cmd
}
