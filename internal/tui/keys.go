package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up, Down, Left, Right key.Binding

	Paint     key.Binding
	NextColor key.Binding
	PrevColor key.Binding
	PickColor key.Binding

	AutoClear  key.Binding
	ClearLines key.Binding
	Template   key.Binding

	Undo key.Binding
	Redo key.Binding

	Link    key.Binding
	Save    key.Binding
	Library key.Binding

	Help key.Binding
	Quit key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),

		Paint:     key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "paint")),
		NextColor: key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next color")),
		PrevColor: key.NewBinding(key.WithKeys("["), key.WithHelp("[", "prev color")),
		PickColor: key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("1-9", "color")),

		AutoClear:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "auto-clear")),
		ClearLines: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "clear full rows")),
		Template:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "template")),

		Undo: key.NewBinding(key.WithKeys("ctrl+z", "u"), key.WithHelp("ctrl+z/u", "undo")),
		Redo: key.NewBinding(key.WithKeys("ctrl+y", "ctrl+shift+z", "U"), key.WithHelp("ctrl+y/U", "redo")),

		Link:    key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "share link")),
		Save:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save")),
		Library: key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "library")),

		Help: key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PickColor, k.AutoClear, k.Undo, k.Redo, k.Save, k.Library, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Paint},
		{k.PickColor, k.PrevColor, k.NextColor},
		{k.AutoClear, k.ClearLines, k.Template},
		{k.Undo, k.Redo, k.Link, k.Save, k.Library},
		{k.Help, k.Quit},
	}
}
