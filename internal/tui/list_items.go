package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/dustin/go-humanize"

	"github.com/troynguyen8/tetris-sandbox/internal/store"
	"github.com/troynguyen8/tetris-sandbox/internal/templates"
)

type boardItem struct {
	board store.Board
}

func (i boardItem) FilterValue() string { return i.board.Name }
func (i boardItem) Title() string       { return i.board.Name }
func (i boardItem) Description() string {
	return fmt.Sprintf("saved %s", humanize.Time(i.board.UpdatedAt))
}

type templateItem struct {
	tpl templates.Template
}

func (i templateItem) FilterValue() string { return i.tpl.Name }
func (i templateItem) Title() string       { return i.tpl.Name }
func (i templateItem) Description() string {
	if d := strings.TrimSpace(i.tpl.Description); d != "" {
		return d
	}
	return fmt.Sprintf("%d cells", i.tpl.Grid.Count())
}

func boardItems(boards []store.Board) []list.Item {
	items := make([]list.Item, 0, len(boards))
	for _, b := range boards {
		items = append(items, boardItem{board: b})
	}
	return items
}

func templateItems() []list.Item {
	all := templates.All()
	items := make([]list.Item, 0, len(all))
	for _, t := range all {
		items = append(items, templateItem{tpl: t})
	}
	return items
}

func newList(title string, items []list.Item) list.Model {
	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = title
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetStatusBarItemName("board", "boards")
	// The list quits on ESC by default; here ESC goes back to the board.
	l.KeyMap.Quit.SetKeys("q")
	l.KeyMap.CursorUp.SetKeys(append(append([]string{}, l.KeyMap.CursorUp.Keys()...), "ctrl+p")...)
	l.KeyMap.CursorDown.SetKeys(append(append([]string{}, l.KeyMap.CursorDown.Keys()...), "ctrl+n")...)
	return l
}
