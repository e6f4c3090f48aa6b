// Package tui is the interactive board editor.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"
	"github.com/sirupsen/logrus"

	"github.com/troynguyen8/tetris-sandbox/internal/store"
	"github.com/troynguyen8/tetris-sandbox/internal/workspace"
)

// Run opens the editor on ws and blocks until the user quits.
func Run(ws *workspace.Workspace, cfg *store.GlobalConfig, log logrus.FieldLogger) error {
	theme, glyphPref := "", ""
	if cfg != nil && cfg.TUI != nil {
		theme, glyphPref = cfg.TUI.Theme, cfg.TUI.Glyphs
	}
	if applyColorProfilePreference() == termenv.Ascii {
		setGlyphs(glyphSetASCII)
	}
	applyThemePreference(theme)
	applyGlyphPreference(glyphPref)

	m := newAppModel(ws, cfg, log)
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}
