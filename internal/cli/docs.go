package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/troynguyen8/tetris-sandbox/internal/docs"
)

func newDocsCmd(app *App) *cobra.Command {
	var (
		raw   bool
		width int
	)

	cmd := &cobra.Command{
		Use:   "docs [topic]",
		Short: "Show the built-in documentation",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return writeOut(cmd, app, map[string]any{"topics": docs.Topics()})
			}

			topic := args[0]
			body, ok := docs.Get(topic)
			if !ok {
				return writeErr(cmd, fmt.Errorf("unknown docs topic: %q (run `tetris-sandbox docs` to list topics)", topic))
			}

			w := cmd.OutOrStdout()
			switch {
			case raw:
				_, err := fmt.Fprint(w, body)
				return err
			case cmd.Flags().Changed("format") || !isTerminal(w):
				return writeOut(cmd, app, map[string]any{"topic": topic, "markdown": body})
			}

			style := "light"
			if lipgloss.HasDarkBackground() {
				style = "dark"
			}
			_, err := fmt.Fprintln(w, docs.Render(body, style, width))
			return err
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print raw markdown (no envelope, no styling)")
	cmd.Flags().IntVar(&width, "width", 80, "Wrap rendered docs at this width")

	return cmd
}
