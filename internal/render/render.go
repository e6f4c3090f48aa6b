// Package render draws a board as terminal text.
package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/troynguyen8/tetris-sandbox/internal/model"
	"github.com/troynguyen8/tetris-sandbox/internal/templates"
)

// CellWidth is the number of terminal columns per mino. Two columns make a
// cell roughly square in most fonts.
const CellWidth = 2

type Options struct {
	// ASCII draws letters instead of colored blocks.
	ASCII bool
	// Cursor highlights one cell when HasCursor is set.
	HasCursor bool
	CursorRow int
	CursorCol int
	// Dim renders the board faint (used while input is suppressed).
	Dim bool
}

var minoColors = map[model.Color]lipgloss.Color{
	model.Black:  lipgloss.Color("#000000"),
	model.Teal:   lipgloss.Color("#00ffff"),
	model.Purple: lipgloss.Color("#800080"),
	model.Red:    lipgloss.Color("#ff0000"),
	model.Blue:   lipgloss.Color("#0000ff"),
	model.Yellow: lipgloss.Color("#ffd700"),
	model.Green:  lipgloss.Color("#008000"),
	model.Orange: lipgloss.Color("#ffa500"),
	model.White:  lipgloss.Color("#ffffff"),
}

// MinoColor returns the terminal color used for c.
func MinoColor(c model.Color) lipgloss.Color {
	return minoColors[c]
}

func Swatch(c model.Color, ascii bool) string {
	if ascii {
		return string(templates.Letter(c))
	}
	return lipgloss.NewStyle().Background(MinoColor(c)).Render(strings.Repeat(" ", CellWidth))
}

// Grid renders the board top row first, one line per row.
func Grid(g model.Grid, opts Options) string {
	var b strings.Builder
	for row := 0; row < model.Rows; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		for col := 0; col < model.Cols; col++ {
			cursor := opts.HasCursor && opts.CursorRow == row && opts.CursorCol == col
			b.WriteString(cell(g[row][col], cursor, opts))
		}
	}
	return b.String()
}

func cell(c model.Color, cursor bool, opts Options) string {
	if opts.ASCII {
		l := string(templates.Letter(c))
		if cursor {
			return l + "*"
		}
		return l + " "
	}
	st := lipgloss.NewStyle().Background(MinoColor(c))
	text := strings.Repeat(" ", CellWidth)
	if cursor {
		fg := lipgloss.Color("#ffffff")
		if c == model.White || c == model.Yellow || c == model.Teal {
			fg = lipgloss.Color("#000000")
		}
		st = st.Foreground(fg).Bold(true)
		text = "[]"
	}
	if opts.Dim {
		st = st.Faint(true)
	}
	return st.Render(text)
}

// Framed wraps the rendered board in a border.
func Framed(g model.Grid, opts Options) string {
	border := lipgloss.NormalBorder()
	if opts.ASCII {
		border = lipgloss.Border{
			Top: "-", Bottom: "-", Left: "|", Right: "|",
			TopLeft: "+", TopRight: "+", BottomLeft: "+", BottomRight: "+",
		}
	}
	return lipgloss.NewStyle().Border(border).Render(Grid(g, opts))
}
