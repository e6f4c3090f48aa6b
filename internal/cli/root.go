package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/troynguyen8/tetris-sandbox/internal/applog"
	"github.com/troynguyen8/tetris-sandbox/internal/format"
	"github.com/troynguyen8/tetris-sandbox/internal/store"
	"github.com/troynguyen8/tetris-sandbox/internal/tui"
	"github.com/troynguyen8/tetris-sandbox/internal/workspace"
)

type App struct {
	Dir        string
	Format     string
	PrettyJSON bool
	LogFile    string
	LogLevel   string

	cfg       *store.GlobalConfig
	log       *logrus.Logger
	logCloser io.Closer
}

func NewRootCmd() *cobra.Command {
	cmd, _ := newRootCmd()
	return cmd
}

// Execute runs the root command and closes the log file afterwards, also when
// the command failed and cobra skipped its post-run hooks.
func Execute() error {
	cmd, app := newRootCmd()
	return execute(cmd, app)
}

func execute(cmd *cobra.Command, app *App) error {
	err := cmd.Execute()
	if cerr := app.closeLog(); err == nil {
		err = cerr
	}
	return err
}

func newRootCmd() (*cobra.Command, *App) {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "tetris-sandbox",
		Short:        "Paint and share 20x10 Tetris boards",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Open the interactive editor
  tetris-sandbox

  # Paint the bottom-left cell red, then undo it
  tetris-sandbox paint 19 0 red
  tetris-sandbox undo

  # Share the current board
  tetris-sandbox link

  # Open a shared link
  tetris-sandbox 'https://tetris-sandbox.local/#%7B%22grid%22...'
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if !format.Valid(app.Format) {
			return writeErr(cmd, fmt.Errorf("unknown format: %s (want one of %s)", app.Format, strings.Join(format.Formats, ", ")))
		}
		cfg, err := store.LoadConfig()
		if err != nil {
			// Unreadable config falls back to defaults.
			cfg = &store.GlobalConfig{}
			fmt.Fprintln(cmd.ErrOrStderr(), "warning: ignoring unreadable config:", err)
		}
		app.cfg = cfg

		path := firstNonEmpty(app.LogFile, cfg.LogFile)
		level := firstNonEmpty(app.LogLevel, cfg.LogLevel)
		log, closer, err := applog.New(path, level)
		if err != nil {
			return writeErr(cmd, err)
		}
		app.log, app.logCloser = log, closer
		app.log.WithFields(logrus.Fields{"cmd": cmd.CommandPath(), "args": args}).Debug("start")
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("TETRIS_SANDBOX_DIR", ""), "Board store dir (default: ~/.tetris-sandbox/board or defaultDir from config)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("TETRIS_SANDBOX_FORMAT", "json"), "Output format (json|edn)")
	cmd.PersistentFlags().StringVar(&app.LogFile, "log-file", envOr("TETRIS_SANDBOX_LOG", ""), "Write logs to this file")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", envOr("TETRIS_SANDBOX_LOG_LEVEL", ""), "Log level (debug|info|warn|error)")

	cmd.AddCommand(newShowCmd(app))
	cmd.AddCommand(newPaintCmd(app))
	cmd.AddCommand(newUndoCmd(app))
	cmd.AddCommand(newRedoCmd(app))
	cmd.AddCommand(newAutoClearCmd(app))
	cmd.AddCommand(newClearLinesCmd(app))
	cmd.AddCommand(newColorCmd(app))
	cmd.AddCommand(newFragmentCmd(app))
	cmd.AddCommand(newLinkCmd(app))
	cmd.AddCommand(newImportCmd(app))
	cmd.AddCommand(newResetCmd(app))
	cmd.AddCommand(newTemplatesCmd(app))
	cmd.AddCommand(newBoardsCmd(app))
	cmd.AddCommand(newBagCmd(app))
	cmd.AddCommand(newDocsCmd(app))
	cmd.AddCommand(newConfigCmd(app))

	return cmd, app
}

func runTUI(app *App) error {
	ws, err := openWorkspace(app)
	if err != nil {
		return err
	}
	return tui.Run(ws, app.cfg, app.logger())
}

// resolveDir picks the store dir: --dir / TETRIS_SANDBOX_DIR, then defaultDir
// from config, then ~/.tetris-sandbox/board.
func resolveDir(app *App) (string, error) {
	if strings.TrimSpace(app.Dir) != "" {
		return app.Dir, nil
	}
	return store.DefaultDir()
}

func openWorkspace(app *App) (*workspace.Workspace, error) {
	dir, err := resolveDir(app)
	if err != nil {
		return nil, err
	}
	app.Dir = dir
	return workspace.Open(store.Store{Dir: dir}, workspace.Options{Log: app.logger()})
}

func (app *App) closeLog() error {
	c := app.logCloser
	app.logCloser = nil
	if c == nil {
		return nil
	}
	return c.Close()
}

func (app *App) logger() *logrus.Logger {
	if app.log == nil {
		return applog.Discard()
	}
	return app.log
}

func firstNonEmpty(vs ...string) string {
	for _, v := range vs {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

// envelope wraps command output as {"data": ...}.
func envelope(v any) map[string]any {
	return map[string]any{"data": v}
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), envelope(v), app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
