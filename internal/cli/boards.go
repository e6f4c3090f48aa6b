package cli

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/troynguyen8/tetris-sandbox/internal/editor"
	"github.com/troynguyen8/tetris-sandbox/internal/store"
	"github.com/troynguyen8/tetris-sandbox/internal/workspace"
)

type boardSummary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	UpdatedAt time.Time `json:"updatedAt"`
	Updated   string    `json:"updated"`
}

func summarizeBoard(b store.Board) boardSummary {
	return boardSummary{ID: b.ID, Name: b.Name, UpdatedAt: b.UpdatedAt, Updated: humanize.Time(b.UpdatedAt)}
}

func libraryStore(app *App) (store.Store, error) {
	dir, err := resolveDir(app)
	if err != nil {
		return store.Store{}, err
	}
	return store.Store{Dir: dir}, nil
}

func newBoardsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "boards",
		Aliases: []string{"board", "library"},
		Short:   "Save and load named boards",
	}
	cmd.AddCommand(newBoardsSaveCmd(app))
	cmd.AddCommand(newBoardsListCmd(app))
	cmd.AddCommand(newBoardsLoadCmd(app))
	cmd.AddCommand(newBoardsRmCmd(app))
	return cmd
}

func newBoardsSaveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "save <name>",
		Short: "Save the current board under a name (overwrites a board with the same name)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			b, err := ws.Store.SaveBoard(cmd.Context(), args[0], ws.Fragment())
			if err != nil {
				return writeErr(cmd, fmt.Errorf("save board: %w", err))
			}
			app.logger().WithField("id", b.ID).Info("saved board")
			return writeOut(cmd, app, summarizeBoard(b))
		},
	}
}

func newBoardsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved boards, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := libraryStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			boards, err := s.ListBoards(cmd.Context())
			if err != nil {
				return writeErr(cmd, fmt.Errorf("list boards: %w", err))
			}
			out := make([]boardSummary, 0, len(boards))
			for _, b := range boards {
				out = append(out, summarizeBoard(b))
			}
			return writeOut(cmd, app, out)
		},
	}
}

func newBoardsLoadCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "load <id-or-name>",
		Short: "Replace the current board with a saved one (undoable)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editBoard(cmd, app, func(ws *workspace.Workspace) (editor.Outcome, error) {
				b, err := ws.Store.FindBoard(cmd.Context(), args[0])
				if err != nil {
					return editor.Outcome{}, err
				}
				out, err := ws.Import(b.Fragment)
				if err != nil {
					return out, fmt.Errorf("board %s: %w", b.Name, err)
				}
				return out, nil
			})
		},
	}
}

func newBoardsRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id-or-name>",
		Aliases: []string{"delete"},
		Short:   "Delete a saved board",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := libraryStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			b, err := s.FindBoard(cmd.Context(), args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.DeleteBoard(cmd.Context(), b.ID); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"deleted": b.ID, "name": b.Name})
		},
	}
}
