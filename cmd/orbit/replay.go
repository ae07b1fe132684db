package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"orbit/internal/gesture"
	"orbit/internal/knowledge"
)

func replayCmd() *cobra.Command {
	var asJSON bool
	var source string
	cmd := &cobra.Command{
		Use:   "replay <script.yaml>",
		Short: "Feed a recorded gesture script through a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading gesture script: %w", err)
			}
			script, err := gesture.ParseScript(data)
			if err != nil {
				return err
			}

			p, err := loadProject(cmd.Context(), source)
			if err != nil {
				return err
			}
			defer p.Close(cmd.Context())

			session, err := p.newSession(cmd.Context())
			if err != nil {
				return err
			}
			var taps []string
			session.OnSelect(func(item knowledge.Item, message string) {
				taps = append(taps, knowledge.ID(item))
				if !asJSON {
					fmt.Fprintf(os.Stdout, "tap %s: %s\n", knowledge.ID(item), message)
				}
			})

			if err := session.Replay(script, time.Now()); err != nil {
				return err
			}
			frame := session.Snapshot()
			if asJSON {
				return writeJSON(os.Stdout, struct {
					Taps  []string `json:"taps"`
					State string   `json:"state"`
					Frame any      `json:"frame"`
				}{Taps: taps, State: session.GestureState().String(), Frame: frame})
			}
			fmt.Fprintf(os.Stdout, "%d events, %d taps, gesture %s\n", len(script.Events), len(taps), session.GestureState())
			printFrame(os.Stdout, frame)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print taps and the final frame as JSON")
	cmd.Flags().StringVar(&source, "source", "", "Knowledge source (defaults to knowledge.source)")
	return cmd
}
