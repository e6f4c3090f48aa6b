package cli

import (
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/troynguyen8/tetris-sandbox/internal/store"
)

// configKeys maps user-facing keys to the fields they edit.
var configKeys = map[string]func(cfg *store.GlobalConfig) *string{
	"default-dir":    func(cfg *store.GlobalConfig) *string { return &cfg.DefaultDir },
	"share-base-url": func(cfg *store.GlobalConfig) *string { return &cfg.ShareBaseURL },
	"log-file":       func(cfg *store.GlobalConfig) *string { return &cfg.LogFile },
	"log-level":      func(cfg *store.GlobalConfig) *string { return &cfg.LogLevel },
	"tui.theme":      func(cfg *store.GlobalConfig) *string { return &tuiConfig(cfg).Theme },
	"tui.glyphs":     func(cfg *store.GlobalConfig) *string { return &tuiConfig(cfg).Glyphs },
}

func tuiConfig(cfg *store.GlobalConfig) *store.TUIConfig {
	if cfg.TUI == nil {
		cfg.TUI = &store.TUIConfig{}
	}
	return cfg.TUI
}

func configKeyNames() []string {
	out := make([]string, 0, len(configKeys))
	for k := range configKeys {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change ~/.tetris-sandbox/config.json",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := store.LoadConfig()
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, cfg)
		},
	}
	cmd.AddCommand(newConfigSetCmd(app))
	cmd.AddCommand(newConfigUnsetCmd(app))
	return cmd
}

func updateConfig(cmd *cobra.Command, app *App, key, value string) error {
	field, ok := configKeys[strings.ToLower(strings.TrimSpace(key))]
	if !ok {
		return writeErr(cmd, errUsage("unknown config key %q (want one of %s)", key, strings.Join(configKeyNames(), ", ")))
	}
	cfg, err := store.LoadConfig()
	if err != nil {
		return writeErr(cmd, err)
	}
	*field(cfg) = strings.TrimSpace(value)
	if cfg.TUI != nil && *cfg.TUI == (store.TUIConfig{}) {
		cfg.TUI = nil
	}
	if err := store.SaveConfig(cfg); err != nil {
		return writeErr(cmd, err)
	}
	app.logger().WithField("key", key).Info("config updated")
	return writeOut(cmd, app, cfg)
}

func newConfigSetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a config value",
		Example: strings.TrimSpace(`
  tetris-sandbox config set share-base-url https://boards.example/
  tetris-sandbox config set tui.glyphs ascii`),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateConfig(cmd, app, args[0], args[1])
		},
	}
}

func newConfigUnsetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "unset <key>",
		Short: "Reset a config value to its default",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateConfig(cmd, app, args[0], "")
		},
	}
}
