// Package editor owns the board state and routes every user action through
// the mutate and history packages.
package editor

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/troynguyen8/tetris-sandbox/internal/applog"
	"github.com/troynguyen8/tetris-sandbox/internal/history"
	"github.com/troynguyen8/tetris-sandbox/internal/model"
	"github.com/troynguyen8/tetris-sandbox/internal/mutate"
)

type Options struct {
	// Now is the clock used by the line-clear cooldown (default time.Now).
	Now func() time.Time
	Log logrus.FieldLogger
}

// Outcome describes what one action did to the board.
type Outcome struct {
	Changed       bool  `json:"changed"`
	RowBecameFull bool  `json:"rowBecameFull,omitempty"`
	Cleared       []int `json:"cleared,omitempty"`
	// Ignored is set when drag input was dropped by the line-clear cooldown.
	Ignored bool `json:"ignored,omitempty"`
}

// Editor is not safe for concurrent use; callers drive it from one event loop.
type Editor struct {
	state    model.AppState
	hist     *history.Manager
	cooldown *history.Cooldown
	log      logrus.FieldLogger

	painting bool
}

func New(st model.AppState, h *history.Manager, opts Options) *Editor {
	if h == nil {
		h = history.New()
	}
	log := opts.Log
	if log == nil {
		log = applog.Discard()
	}
	return &Editor{
		state:    st,
		hist:     h,
		cooldown: history.NewCooldown(opts.Now),
		log:      log,
	}
}

// State returns a copy of the current state.
func (e *Editor) State() model.AppState { return e.state }

func (e *Editor) History() *history.Manager { return e.hist }

func (e *Editor) CoolingDown() bool { return e.cooldown.Active() }

// Replace swaps in externally loaded state and history (e.g. the fragment
// file changed underneath us).
func (e *Editor) Replace(st model.AppState, h *history.Manager) {
	if h == nil {
		h = history.New()
	}
	e.state = st
	e.hist = h
	e.painting = false
}

// Paint applies the selected color to one cell.
func (e *Editor) Paint(row, col int) (Outcome, error) {
	return e.PaintColor(row, col, e.state.SelectedColor)
}

// PaintColor applies c to one cell, records it, and clears the row when it
// became full and auto-clear is on.
func (e *Editor) PaintColor(row, col int, c model.Color) (Outcome, error) {
	res, err := mutate.ApplyEdit(&e.state, row, col, c)
	if err != nil {
		return Outcome{}, err
	}
	if !res.Changed {
		return Outcome{}, nil
	}
	out := Outcome{Changed: true, RowBecameFull: res.RowBecameFull}
	entry := model.Entry{Records: []model.Record{model.CellRecord(row, col, res.Prev, c)}}

	if res.RowBecameFull && e.state.ShouldClearFullLines {
		removed := mutate.ClearLine(&e.state.Grid, row)
		entry.Records = append(entry.Records, model.LineClearRecord(row, removed))
		out.Cleared = []int{row}
		e.cooldown.Start(history.LineClearCooldown)
	}
	e.hist.Record(entry)

	e.log.WithFields(logrus.Fields{
		"row":     row,
		"col":     col,
		"color":   c.String(),
		"prev":    res.Prev.String(),
		"cleared": out.Cleared,
	}).Debug("edit")
	return out, nil
}

// Press starts a paint gesture at a cell.
func (e *Editor) Press(row, col int) (Outcome, error) {
	e.painting = true
	return e.Paint(row, col)
}

// Drag paints a cell entered while a gesture is in progress. Input inside
// the line-clear cooldown is dropped.
func (e *Editor) Drag(row, col int) (Outcome, error) {
	if !e.painting {
		return Outcome{}, nil
	}
	if e.cooldown.Active() {
		e.log.WithFields(logrus.Fields{"row": row, "col": col}).Debug("drag ignored during line-clear cooldown")
		return Outcome{Ignored: true}, nil
	}
	return e.Paint(row, col)
}

func (e *Editor) Release() { e.painting = false }

func (e *Editor) Painting() bool { return e.painting }

// SetAutoClear updates the option. Turning it on clears every row that is
// already full, in ascending order, as one undoable step.
func (e *Editor) SetAutoClear(on bool) Outcome {
	was := e.state.ShouldClearFullLines
	e.state.ShouldClearFullLines = on
	out := Outcome{Changed: was != on}
	if on && !was {
		cleared := e.clearFull()
		if len(cleared) > 0 {
			out.Cleared = cleared
		}
	}
	e.log.WithFields(logrus.Fields{"autoClear": on, "cleared": out.Cleared}).Info("auto-clear toggled")
	return out
}

// ClearFullLines clears every full row now regardless of the option.
func (e *Editor) ClearFullLines() Outcome {
	cleared := e.clearFull()
	return Outcome{Changed: len(cleared) > 0, Cleared: cleared}
}

func (e *Editor) clearFull() []int {
	recs := mutate.ClearFullLines(&e.state.Grid)
	if len(recs) == 0 {
		return nil
	}
	e.hist.Record(model.Entry{Records: recs})
	rows := make([]int, 0, len(recs))
	for _, r := range recs {
		rows = append(rows, r.Row)
	}
	return rows
}

func (e *Editor) SelectColor(c model.Color) error {
	if !c.Valid() {
		return mutate.InvalidColorError{Color: uint8(c)}
	}
	e.state.SelectedColor = c
	return nil
}

// CycleColor moves the selection delta steps through the palette, wrapping.
func (e *Editor) CycleColor(delta int) model.Color {
	pal := model.Palette()
	i := model.PaletteIndex(e.state.SelectedColor)
	if i < 0 {
		i = 0
	}
	n := len(pal)
	i = ((i+delta)%n + n) % n
	e.state.SelectedColor = pal[i]
	return pal[i]
}

// Undo reverts the latest entry. ok is false when there was nothing to undo.
// Replay goes through the same mutation path but never records or
// auto-clears.
func (e *Editor) Undo() (bool, error) {
	entry, ok := e.hist.Undo()
	if !ok {
		return false, nil
	}
	if err := mutate.Revert(&e.state, entry.Records); err != nil {
		return false, err
	}
	e.log.WithField("records", len(entry.Records)).Debug("undo")
	return true, nil
}

func (e *Editor) Redo() (bool, error) {
	entry, ok := e.hist.Redo()
	if !ok {
		return false, nil
	}
	if err := mutate.Replay(&e.state, entry.Records); err != nil {
		return false, err
	}
	e.log.WithField("records", len(entry.Records)).Debug("redo")
	return true, nil
}

// LoadGrid replaces the board with g as one undoable step, cell by cell.
func (e *Editor) LoadGrid(g model.Grid) Outcome {
	var recs []model.Record
	for row := 0; row < model.Rows; row++ {
		for col := 0; col < model.Cols; col++ {
			c := g[row][col]
			res, err := mutate.ApplyEdit(&e.state, row, col, c)
			if err != nil || !res.Changed {
				continue
			}
			recs = append(recs, model.CellRecord(row, col, res.Prev, c))
		}
	}
	e.hist.Record(model.Entry{Records: recs})
	return Outcome{Changed: len(recs) > 0}
}
