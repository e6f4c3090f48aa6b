package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/troynguyen8/tetris-sandbox/internal/editor"
	"github.com/troynguyen8/tetris-sandbox/internal/fragment"
	"github.com/troynguyen8/tetris-sandbox/internal/model"
	"github.com/troynguyen8/tetris-sandbox/internal/render"
	"github.com/troynguyen8/tetris-sandbox/internal/templates"
	"github.com/troynguyen8/tetris-sandbox/internal/workspace"
)

// boardResult is the output of every command that changes the board.
type boardResult struct {
	editor.Outcome
	State model.AppState `json:"state"`
}

type showResult struct {
	State model.AppState `json:"state"`
	Rows  []string       `json:"rows"`
	Cells int            `json:"cells"`
	Full  []int          `json:"fullRows"`
}

// asciiRows renders g as one letter per cell, top row first.
func asciiRows(g model.Grid) []string {
	out := make([]string, 0, model.Rows)
	for _, row := range g {
		var b strings.Builder
		for _, c := range row {
			b.WriteByte(templates.Letter(c))
		}
		out = append(out, b.String())
	}
	return out
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// editBoard opens the workspace, applies fn and persists the result.
func editBoard(cmd *cobra.Command, app *App, fn func(ws *workspace.Workspace) (editor.Outcome, error)) error {
	ws, err := openWorkspace(app)
	if err != nil {
		return writeErr(cmd, err)
	}
	out, err := fn(ws)
	if err != nil {
		return writeErr(cmd, err)
	}
	if err := ws.Commit(); err != nil {
		return writeErr(cmd, fmt.Errorf("save board: %w", err))
	}
	return writeOut(cmd, app, boardResult{Outcome: out, State: ws.State()})
}

func newShowCmd(app *App) *cobra.Command {
	var (
		ascii bool
		frag  string
	)
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Render the current board (or a given fragment/link)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var st model.AppState
			if strings.TrimSpace(frag) != "" {
				decoded, err := fragment.ParseLink(frag)
				if err != nil {
					return writeErr(cmd, fmt.Errorf("show: %w", err))
				}
				st = decoded
			} else {
				ws, err := openWorkspace(app)
				if err != nil {
					return writeErr(cmd, err)
				}
				st = ws.State()
			}

			if cmd.Flags().Changed("format") {
				return writeOut(cmd, app, showResult{
					State: st,
					Rows:  asciiRows(st.Grid),
					Cells: st.Grid.Count(),
					Full:  st.Grid.FullRows(),
				})
			}

			w := cmd.OutOrStdout()
			opts := render.Options{ASCII: ascii || !isTerminal(w)}
			if _, err := fmt.Fprintln(w, render.Framed(st.Grid, opts)); err != nil {
				return err
			}
			_, err := fmt.Fprintf(w, "color: %s  auto-clear: %s\n", st.SelectedColor, onOff(st.ShouldClearFullLines))
			return err
		},
	}
	cmd.Flags().BoolVar(&ascii, "ascii", false, "Draw letters instead of colored blocks")
	cmd.Flags().StringVar(&frag, "fragment", "", "Render this fragment or share link instead of the stored board")
	return cmd
}

func parseCell(rowArg, colArg string) (int, int, error) {
	row, err := strconv.Atoi(strings.TrimSpace(rowArg))
	if err != nil {
		return 0, 0, errUsage("row must be a number: %q", rowArg)
	}
	col, err := strconv.Atoi(strings.TrimSpace(colArg))
	if err != nil {
		return 0, 0, errUsage("col must be a number: %q", colArg)
	}
	if !model.InBounds(row, col) {
		return 0, 0, outOfBoundsError{row: row, col: col}
	}
	return row, col, nil
}

func newPaintCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "paint <row> <col> [color]",
		Short: "Paint one cell (selected color unless given)",
		Example: strings.TrimSpace(`
  tetris-sandbox paint 19 0
  tetris-sandbox paint 19 1 orange
  tetris-sandbox paint 0 0 black   # erase`),
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			row, col, err := parseCell(args[0], args[1])
			if err != nil {
				return writeErr(cmd, err)
			}
			var color *model.Color
			if len(args) == 3 {
				c, err := model.ParseColor(args[2])
				if err != nil {
					return writeErr(cmd, err)
				}
				color = &c
			}
			return editBoard(cmd, app, func(ws *workspace.Workspace) (editor.Outcome, error) {
				if color != nil {
					return ws.Editor.PaintColor(row, col, *color)
				}
				return ws.Editor.Paint(row, col)
			})
		},
	}
}

func newUndoCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "undo",
		Short: "Undo the last change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return editBoard(cmd, app, func(ws *workspace.Workspace) (editor.Outcome, error) {
				ok, err := ws.Editor.Undo()
				return editor.Outcome{Changed: ok}, err
			})
		},
	}
}

func newRedoCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "redo",
		Short: "Redo the last undone change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return editBoard(cmd, app, func(ws *workspace.Workspace) (editor.Outcome, error) {
				ok, err := ws.Editor.Redo()
				return editor.Outcome{Changed: ok}, err
			})
		},
	}
}

func newAutoClearCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:       "autoclear on|off",
		Short:     "Toggle automatic clearing of full rows",
		Long:      "Turning auto-clear on immediately clears every row that is already full (one undoable step).",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"on", "off"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var on bool
			switch strings.ToLower(strings.TrimSpace(args[0])) {
			case "on", "true", "1":
				on = true
			case "off", "false", "0":
				on = false
			default:
				return writeErr(cmd, errUsage("autoclear: want on or off, got %q", args[0]))
			}
			return editBoard(cmd, app, func(ws *workspace.Workspace) (editor.Outcome, error) {
				return ws.Editor.SetAutoClear(on), nil
			})
		},
	}
}

func newClearLinesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "clear-lines",
		Short: "Clear every full row now",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return editBoard(cmd, app, func(ws *workspace.Workspace) (editor.Outcome, error) {
				return ws.Editor.ClearFullLines(), nil
			})
		},
	}
}

type paletteEntry struct {
	Key      int    `json:"key"`
	Name     string `json:"name"`
	CSS      string `json:"css"`
	Selected bool   `json:"selected"`
}

func newColorCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "color [name]",
		Short: "Show the palette or select the paint color",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if len(args) == 1 {
				c, err := model.ParseColor(args[0])
				if err != nil {
					return writeErr(cmd, err)
				}
				if err := ws.Editor.SelectColor(c); err != nil {
					return writeErr(cmd, err)
				}
				if err := ws.Commit(); err != nil {
					return writeErr(cmd, err)
				}
			}

			selected := ws.State().SelectedColor
			palette := model.Palette()
			out := make([]paletteEntry, 0, len(palette))
			for i, c := range palette {
				out = append(out, paletteEntry{Key: i + 1, Name: c.String(), CSS: c.CSS(), Selected: c == selected})
			}
			return writeOut(cmd, app, map[string]any{"selectedColor": selected, "palette": out})
		},
	}
}

func newFragmentCmd(app *App) *cobra.Command {
	var raw bool
	cmd := &cobra.Command{
		Use:   "fragment",
		Short: "Print the encoded board state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if raw {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), ws.Fragment())
				return err
			}
			return writeOut(cmd, app, map[string]any{"fragment": ws.Fragment()})
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "Print the bare fragment (no envelope)")
	return cmd
}

func newLinkCmd(app *App) *cobra.Command {
	var base string
	var raw bool
	cmd := &cobra.Command{
		Use:   "link",
		Short: "Print a share link for the current board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if strings.TrimSpace(base) == "" {
				base = app.cfg.ShareBase()
			}
			link := fragment.Link(base, ws.State())
			if raw {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), link)
				return err
			}
			return writeOut(cmd, app, map[string]any{"link": link})
		},
	}
	cmd.Flags().StringVar(&base, "base", "", "Page URL to put in front of the fragment (default: shareBaseUrl from config)")
	cmd.Flags().BoolVar(&raw, "raw", false, "Print the bare link (no envelope)")
	return cmd
}

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <link-or-fragment>",
		Short: "Replace the board with a shared link or fragment (undoable)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editBoard(cmd, app, func(ws *workspace.Workspace) (editor.Outcome, error) {
				out, err := ws.Import(args[0])
				if err != nil {
					return out, fmt.Errorf("import: %w", err)
				}
				return out, nil
			})
		},
	}
}

func newResetCmd(app *App) *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Replace the board with a template (undoable)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tpl, ok := templates.Get(name)
			if !ok {
				return writeErr(cmd, errUsage("unknown template %q (want one of %s)", name, strings.Join(templates.Names(), ", ")))
			}
			return editBoard(cmd, app, func(ws *workspace.Workspace) (editor.Outcome, error) {
				return ws.Editor.LoadGrid(tpl.Grid), nil
			})
		},
	}
	cmd.Flags().StringVar(&name, "template", "empty", "Template name (see `tetris-sandbox templates`)")
	return cmd
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
