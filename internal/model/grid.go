package model

import (
	"encoding/json"
	"fmt"
)

const (
	Rows = 20
	Cols = 10
)

// Row is one line of minos, left to right.
type Row [Cols]Color

// Grid is the board. Row 0 is the top. The zero value is an empty board.
type Grid [Rows]Row

// RangeError reports a Get/Set outside the board. It is raised as a panic:
// coordinates come from the view, which never produces them out of range.
type RangeError struct {
	Row int
	Col int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("cell out of range: row=%d col=%d (board is %dx%d)", e.Row, e.Col, Rows, Cols)
}

func NewGrid() Grid { return Grid{} }

// EmptyRow returns a row with every cell set to Empty.
func EmptyRow() Row { return Row{} }

func InBounds(row, col int) bool {
	return row >= 0 && row < Rows && col >= 0 && col < Cols
}

func (g *Grid) Get(row, col int) Color {
	if !InBounds(row, col) {
		panic(&RangeError{Row: row, Col: col})
	}
	return g[row][col]
}

// Set overwrites a cell and returns its previous color.
func (g *Grid) Set(row, col int, c Color) Color {
	if !InBounds(row, col) {
		panic(&RangeError{Row: row, Col: col})
	}
	prev := g[row][col]
	g[row][col] = c
	return prev
}

// LineIsFull reports whether no cell in the row is Empty.
func (g *Grid) LineIsFull(row int) bool {
	if row < 0 || row >= Rows {
		panic(&RangeError{Row: row, Col: 0})
	}
	return g[row].Full()
}

// FullRows returns the indices of full rows in ascending order.
func (g *Grid) FullRows() []int {
	var out []int
	for i := range g {
		if g[i].Full() {
			out = append(out, i)
		}
	}
	return out
}

func (g *Grid) IsEmpty() bool {
	for i := range g {
		if !g[i].Empty() {
			return false
		}
	}
	return true
}

// Count returns the number of painted (non-empty) cells.
func (g *Grid) Count() int {
	n := 0
	for i := range g {
		for _, c := range g[i] {
			if c != Empty {
				n++
			}
		}
	}
	return n
}

func (r Row) Full() bool {
	for _, c := range r {
		if c == Empty {
			return false
		}
	}
	return true
}

func (r Row) Empty() bool {
	for _, c := range r {
		if c != Empty {
			return false
		}
	}
	return true
}

// UnmarshalJSON rejects anything that is not exactly Rows x Cols. Plain array
// decoding would silently pad or truncate.
func (g *Grid) UnmarshalJSON(b []byte) error {
	var raw [][]Color
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if len(raw) != Rows {
		return fmt.Errorf("grid: expected %d rows, got %d", Rows, len(raw))
	}
	var out Grid
	for i, row := range raw {
		if len(row) != Cols {
			return fmt.Errorf("grid: row %d: expected %d cells, got %d", i, Cols, len(row))
		}
		copy(out[i][:], row)
	}
	*g = out
	return nil
}

func (r *Row) UnmarshalJSON(b []byte) error {
	var raw []Color
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if len(raw) != Cols {
		return fmt.Errorf("row: expected %d cells, got %d", Cols, len(raw))
	}
	copy(r[:], raw)
	return nil
}
