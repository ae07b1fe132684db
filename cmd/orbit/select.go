package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func selectCmd() *cobra.Command {
	var source string
	cmd := &cobra.Command{
		Use:   "select <id>",
		Short: "Show the opening message and seed keywords for an item",
		Args:  cobra.ExactArgs(1),
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
			message, err := session.Select(args[0])
			if err != nil {
				return err
			}
			frame := session.Snapshot()
			fmt.Fprintln(os.Stdout, message)
			fmt.Fprintf(os.Stdout, "\nseed keywords: %s\n", strings.Join(frame.Window, ", "))
			return nil
		},
	}
	cmd.Flags().StringVar(&source, "source", "", "Knowledge source (defaults to knowledge.source)")
	return cmd
}
