package model

// RecordKind tags a history record.
type RecordKind string

const (
	RecordCell      RecordKind = "cell"
	RecordLineClear RecordKind = "line_clear"
)

// Record is one reversible change to the grid.
//
// Cell records carry Row/Col/Prev/Next. Line-clear records carry Row (the
// cleared index) and Removed (the row content before it was dropped).
type Record struct {
	Kind    RecordKind `json:"kind"`
	Row     int        `json:"row"`
	Col     int        `json:"col,omitempty"`
	Prev    Color      `json:"prev,omitempty"`
	Next    Color      `json:"next,omitempty"`
	Removed *Row       `json:"removed,omitempty"`
}

func CellRecord(row, col int, prev, next Color) Record {
	return Record{Kind: RecordCell, Row: row, Col: col, Prev: prev, Next: next}
}

func LineClearRecord(row int, removed Row) Record {
	r := removed
	return Record{Kind: RecordLineClear, Row: row, Removed: &r}
}

// Entry groups the records produced by one user action (an edit plus the
// line clear it triggered, or a bulk clear). Undo reverses them together.
type Entry struct {
	Records []Record `json:"records"`
}

func (e Entry) Empty() bool { return len(e.Records) == 0 }

// Valid reports whether r can be applied to a board: a known kind, an
// on-board position and palette colors.
func (r Record) Valid() bool {
	switch r.Kind {
	case RecordCell:
		return InBounds(r.Row, r.Col) && r.Prev.Valid() && r.Next.Valid()
	case RecordLineClear:
		if r.Removed == nil || !InBounds(r.Row, 0) {
			return false
		}
		for _, c := range r.Removed {
			if !c.Valid() {
				return false
			}
		}
		return true
	}
	return false
}
