package mutate

import "github.com/troynguyen8/tetris-sandbox/internal/model"

type EditResult struct {
	Changed bool
	// RowBecameFull is true only when this edit turned a non-full row full.
	RowBecameFull bool
	Prev          model.Color
}

// ApplyEdit paints one cell. It is the single mutation entry point for
// user edits and for undo/redo replay.
//
// Painting a cell with the color it already has is a no-op (Changed=false).
// Line clearing is left to the caller so replay can skip it.
func ApplyEdit(st *model.AppState, row, col int, c model.Color) (EditResult, error) {
	if st == nil {
		return EditResult{}, nil
	}
	if !c.Valid() {
		return EditResult{}, InvalidColorError{Color: uint8(c)}
	}
	g := &st.Grid
	prev := g.Get(row, col)
	if prev == c {
		return EditResult{Prev: prev}, nil
	}
	wasFull := g.LineIsFull(row)
	g.Set(row, col, c)
	return EditResult{
		Changed:       true,
		RowBecameFull: !wasFull && g.LineIsFull(row),
		Prev:          prev,
	}, nil
}
