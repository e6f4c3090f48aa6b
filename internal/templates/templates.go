// Package templates holds built-in starting boards.
package templates

import (
	"sort"
	"strings"

	"github.com/troynguyen8/tetris-sandbox/internal/model"
)

type Template struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Grid        model.Grid `json:"grid"`
}

// Perfect Clear Opener bottom rows, top to bottom. Each letter is one mino.
var pcoRows = []string{
	"RR....OOOT",
	"PRR...OYYT",
	"PPGG..BYYT",
	"PGG...BBBT",
}

var letters = map[byte]model.Color{
	'.': model.Empty,
	'T': model.Teal,
	'P': model.Purple,
	'R': model.Red,
	'B': model.Blue,
	'Y': model.Yellow,
	'G': model.Green,
	'O': model.Orange,
	'W': model.White,
}

// Letter returns the single-letter code used by FromRows and ASCII rendering.
func Letter(c model.Color) byte {
	for b, lc := range letters {
		if lc == c {
			return b
		}
	}
	return '?'
}

// FromRows builds a grid whose bottom rows are given as letter strings.
// Rows above the given ones are empty. Unknown letters and short rows panic;
// this is only used for fixtures.
func FromRows(rows []string) model.Grid {
	var g model.Grid
	if len(rows) > model.Rows {
		panic("templates: too many rows")
	}
	off := model.Rows - len(rows)
	for i, s := range rows {
		if len(s) != model.Cols {
			panic("templates: row " + s + " has the wrong width")
		}
		for col := 0; col < model.Cols; col++ {
			c, ok := letters[s[col]]
			if !ok {
				panic("templates: unknown mino letter in " + s)
			}
			g.Set(off+i, col, c)
		}
	}
	return g
}

var builtins = map[string]Template{
	"empty": {
		Name:        "empty",
		Description: "Blank 20x10 board",
		Grid:        model.NewGrid(),
	},
	"pco": {
		Name:        "pco",
		Description: "Perfect Clear Opener setup",
		Grid:        FromRows(pcoRows),
	},
}

// Names lists built-in template names, sorted.
func Names() []string {
	out := make([]string, 0, len(builtins))
	for k := range builtins {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func All() []Template {
	var out []Template
	for _, n := range Names() {
		out = append(out, builtins[n])
	}
	return out
}

func Get(name string) (Template, bool) {
	t, ok := builtins[strings.ToLower(strings.TrimSpace(name))]
	return t, ok
}

// MustGrid returns a built-in template's grid and panics on an unknown name.
func MustGrid(name string) model.Grid {
	t, ok := Get(name)
	if !ok {
		panic("templates: unknown template " + name)
	}
	return t.Grid
}
