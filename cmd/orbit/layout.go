package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"orbit/internal/gesture"
	"orbit/internal/intent"
	"orbit/internal/orbit"
)

func layoutCmd() *cobra.Command {
	var asJSON bool
	var source string
	cmd := &cobra.Command{
		Use:   "layout [turn...]",
		Short: "Print the canvas for a conversation window",
		Long: "Each argument is recorded as one conversation turn, then the\n" +
			"resulting frame is printed ring by ring.",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadProject(cmd.Context(), source)
			if err != nil {
				return err
			}
			defer p.Close(cmd.Context())

			tracker := intent.NewTracker()
			for _, turn := range args {
				tracker.RecordText(turn)
			}
			viewport := gesture.Viewport{Zoom: 1}
			frame := orbit.Recompute(p.items, tracker.Window(), viewport, p.engineConfig())
			if asJSON {
				return writeJSON(os.Stdout, frame)
			}
			printFrame(os.Stdout, frame)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the frame as JSON")
	cmd.Flags().StringVar(&source, "source", "", "Knowledge source (defaults to knowledge.source)")
	return cmd
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printFrame(out io.Writer, frame orbit.Frame) {
	header := color.New(color.Bold).SprintfFunc()
	priority := color.New(color.FgGreen).SprintFunc()

	fmt.Fprintf(out, "intent %.2f  window [%s]  zoom %.2f  pan (%.0f, %.0f)\n",
		frame.IntentLevel, strings.Join(frame.Window, " "),
		frame.Viewport.Zoom, frame.Viewport.Pan.X, frame.Viewport.Pan.Y)
	if frame.Selected != "" {
		fmt.Fprintf(out, "selected %s\n", frame.Selected)
	}

	ring := -1
	for _, tile := range frame.Tiles {
		if tile.Ring != ring {
			ring = tile.Ring
			label := fmt.Sprintf("ring %d", ring)
			if ring == 0 {
				label = fmt.Sprintf("priority ring (capacity %d)", frame.PriorityCapacity)
			}
			fmt.Fprintln(out, header(label))
		}
		id := tile.ID
		if ring == 0 {
			id = priority(id)
		}
		fmt.Fprintf(out, "  %6.2f  %-24s %-12s (%7.1f, %7.1f)  %s\n",
			tile.Score, id, tile.Kind, tile.Position.X, tile.Position.Y, tile.Label)
	}
}
