package cli

import (
	"github.com/spf13/cobra"

	"github.com/troynguyen8/tetris-sandbox/internal/templates"
)

type templateSummary struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Cells       int      `json:"cells"`
	Rows        []string `json:"rows"`
}

func newTemplatesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List built-in board templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			all := templates.All()
			out := make([]templateSummary, 0, len(all))
			for _, t := range all {
				out = append(out, templateSummary{
					Name:        t.Name,
					Description: t.Description,
					Cells:       t.Grid.Count(),
					Rows:        asciiRows(t.Grid),
				})
			}
			return writeOut(cmd, app, out)
		},
	}
}
