package mutate

import "github.com/troynguyen8/tetris-sandbox/internal/model"

// ClearLine removes row and drops every row above it by one, leaving a fresh
// empty row at the top. It returns the removed content.
func ClearLine(g *model.Grid, row int) model.Row {
	if row < 0 || row >= model.Rows {
		panic(&model.RangeError{Row: row})
	}
	removed := g[row]
	copy(g[1:row+1], g[0:row])
	g[0] = model.EmptyRow()
	return removed
}

// RestoreLine is the inverse of ClearLine: it drops row 0, lifts rows
// 1..row back up, and puts content back at row.
func RestoreLine(g *model.Grid, row int, content model.Row) {
	if row < 0 || row >= model.Rows {
		panic(&model.RangeError{Row: row})
	}
	copy(g[0:row], g[1:row+1])
	g[row] = content
}

// ClearFullLines clears every full row in ascending index order. Clearing row
// i only moves rows above i, so the remaining indices stay valid.
func ClearFullLines(g *model.Grid) []model.Record {
	var out []model.Record
	for _, row := range g.FullRows() {
		removed := ClearLine(g, row)
		out = append(out, model.LineClearRecord(row, removed))
	}
	return out
}

// Revert undoes records in reverse order.
func Revert(st *model.AppState, recs []model.Record) error {
	for i := len(recs) - 1; i >= 0; i-- {
		r := recs[i]
		switch r.Kind {
		case model.RecordCell:
			if _, err := ApplyEdit(st, r.Row, r.Col, r.Prev); err != nil {
				return err
			}
		case model.RecordLineClear:
			content := model.EmptyRow()
			if r.Removed != nil {
				content = *r.Removed
			}
			RestoreLine(&st.Grid, r.Row, content)
		default:
			return UnknownRecordError{Kind: string(r.Kind)}
		}
	}
	return nil
}

// Replay reapplies records in order.
func Replay(st *model.AppState, recs []model.Record) error {
	for _, r := range recs {
		switch r.Kind {
		case model.RecordCell:
			if _, err := ApplyEdit(st, r.Row, r.Col, r.Next); err != nil {
				return err
			}
		case model.RecordLineClear:
			ClearLine(&st.Grid, r.Row)
		default:
			return UnknownRecordError{Kind: string(r.Kind)}
		}
	}
	return nil
}
