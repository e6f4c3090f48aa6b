package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/troynguyen8/tetris-sandbox/internal/applog"
	"github.com/troynguyen8/tetris-sandbox/internal/fragment"
	"github.com/troynguyen8/tetris-sandbox/internal/model"
	"github.com/troynguyen8/tetris-sandbox/internal/store"
	"github.com/troynguyen8/tetris-sandbox/internal/workspace"
)

func newTestModel(t *testing.T) appModel {
	t.Helper()
	ws, err := workspace.Open(store.Store{Dir: t.TempDir()}, workspace.Options{Log: applog.Discard()})
	if err != nil {
		t.Fatalf("open workspace: %v", err)
	}
	m := newAppModel(ws, &store.GlobalConfig{}, applog.Discard())
	mm, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return mm.(appModel)
}

func send(t *testing.T, m appModel, msgs ...tea.Msg) appModel {
	t.Helper()
	for _, msg := range msgs {
		mm, _ := m.Update(msg)
		m = mm.(appModel)
	}
	return m
}

func cellOf(m appModel, row, col int) model.Color {
	g := m.ws.State().Grid
	return g.Get(row, col)
}

func rowFull(m appModel, row int) bool {
	g := m.ws.State().Grid
	return g.LineIsFull(row)
}

func boardEmpty(m appModel) bool {
	g := m.ws.State().Grid
	return g.IsEmpty()
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(row, col int) tea.MouseMsg {
	return tea.MouseMsg{X: 1 + col*2, Y: boardTop + 1 + row, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func motion(row, col int) tea.MouseMsg {
	return tea.MouseMsg{X: 1 + col*2, Y: boardTop + 1 + row, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft}
}

func release() tea.MouseMsg {
	return tea.MouseMsg{Action: tea.MouseActionRelease, Button: tea.MouseButtonNone}
}

func TestCellAt_MapsBoardAndRejectsChrome(t *testing.T) {
	t.Parallel()

	cases := []struct {
		x, y     int
		row, col int
		ok       bool
	}{
		{x: 1, y: boardTop + 1, row: 0, col: 0, ok: true},
		{x: 2, y: boardTop + 1, row: 0, col: 0, ok: true},
		{x: 3, y: boardTop + 1, row: 0, col: 1, ok: true},
		{x: 20, y: boardTop + 20, row: 19, col: 9, ok: true},
		{x: 0, y: boardTop + 1},  // left border
		{x: 21, y: boardTop + 1}, // right border
		{x: 5, y: boardTop},      // top border
		{x: 5, y: boardTop + 21}, // bottom border
	}
	for _, tc := range cases {
		row, col, ok := cellAt(tc.x, tc.y)
		if ok != tc.ok || (ok && (row != tc.row || col != tc.col)) {
			t.Fatalf("cellAt(%d,%d) = %d,%d,%v; want %d,%d,%v", tc.x, tc.y, row, col, ok, tc.row, tc.col, tc.ok)
		}
	}

	c, ok := paletteAt(sidebarLeft+3, boardTop+1)
	if !ok || c != model.Palette()[0] {
		t.Fatalf("expected first palette entry; got %v %v", c, ok)
	}
	if _, ok := paletteAt(sidebarLeft, boardTop+1+len(model.Palette())); ok {
		t.Fatalf("expected no palette entry below the list")
	}
}

func TestMouse_PressDragReleasePaints(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	m = send(t, m, press(19, 0), motion(19, 1), motion(18, 1), release(), motion(17, 1))

	g := m.ws.State().Grid
	for _, rc := range [][2]int{{19, 0}, {19, 1}, {18, 1}} {
		if got := g.Get(rc[0], rc[1]); got != model.Teal {
			t.Fatalf("expected (%d,%d) painted teal; got %v", rc[0], rc[1], got)
		}
	}
	if got := g.Get(17, 1); got != model.Empty {
		t.Fatalf("expected motion after release to be ignored; got %v", got)
	}
	if m.ws.Editor.Painting() {
		t.Fatalf("expected painting to stop on release")
	}

	// Every edit is persisted.
	frag, ok, err := m.ws.Store.LoadFragment()
	if err != nil || !ok {
		t.Fatalf("expected fragment on disk: ok=%v err=%v", ok, err)
	}
	st, err := fragment.Decode(frag)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if st.Grid != g {
		t.Fatalf("expected persisted grid to match the editor")
	}
}

func TestKeys_PaintUndoRedo(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	m = send(t, m, runes("4"), tea.KeyMsg{Type: tea.KeySpace})
	if got := cellOf(m, model.Rows-1, 0); got != model.Palette()[3] {
		t.Fatalf("expected palette color 4 at cursor; got %v", got)
	}

	m = send(t, m, runes("u"))
	if got := cellOf(m, model.Rows-1, 0); got != model.Empty {
		t.Fatalf("expected undo to clear the cell; got %v", got)
	}
	m = send(t, m, runes("U"))
	if got := cellOf(m, model.Rows-1, 0); got != model.Palette()[3] {
		t.Fatalf("expected redo to repaint the cell; got %v", got)
	}

	m = send(t, m, runes("u"), runes("u"))
	if !strings.Contains(m.status, "nothing to undo") {
		t.Fatalf("expected empty-history status; got %q", m.status)
	}
}

func TestKeys_CursorStaysOnBoard(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	for i := 0; i < 30; i++ {
		m = send(t, m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyLeft})
	}
	if m.cursorRow != model.Rows-1 || m.cursorCol != 0 {
		t.Fatalf("expected cursor clamped to bottom-left; got %d,%d", m.cursorRow, m.cursorCol)
	}
	for i := 0; i < 30; i++ {
		m = send(t, m, runes("k"), runes("l"))
	}
	if m.cursorRow != 0 || m.cursorCol != model.Cols-1 {
		t.Fatalf("expected cursor clamped to top-right; got %d,%d", m.cursorRow, m.cursorCol)
	}
}

func TestKeys_AutoClearToggleClearsFullRows(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	if m.ws.State().ShouldClearFullLines {
		t.Fatalf("expected auto-clear off by default")
	}
	for col := 0; col < model.Cols; col++ {
		m = send(t, m, press(19, col), release())
	}
	if !rowFull(m, 19) {
		t.Fatalf("expected full bottom row while auto-clear is off")
	}

	m = send(t, m, runes("c"))
	st := m.ws.State()
	if !st.ShouldClearFullLines {
		t.Fatalf("expected auto-clear on")
	}
	if !st.Grid.IsEmpty() {
		t.Fatalf("expected the full row to be cleared when auto-clear turned on")
	}
	if !strings.Contains(m.status, "cleared row 19") {
		t.Fatalf("unexpected status %q", m.status)
	}

	m = send(t, m, runes("u"))
	if !rowFull(m, 19) {
		t.Fatalf("expected undo to restore the cleared row")
	}
}

func TestSaveAndLibrary_RoundTrip(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	m = send(t, m, press(10, 3), release(), runes("s"))
	if m.mode != modeSave {
		t.Fatalf("expected save prompt")
	}
	m = send(t, m, runes("opener"), tea.KeyMsg{Type: tea.KeyEnter})
	if m.mode != modeBoard {
		t.Fatalf("expected to return to the board after saving")
	}

	boards, err := m.ws.Store.ListBoards(context.Background())
	if err != nil || len(boards) != 1 || boards[0].Name != "opener" {
		t.Fatalf("expected one saved board; got %#v err=%v", boards, err)
	}

	// Change the board, then load the saved one back.
	m = send(t, m, press(0, 0), release())
	m = send(t, m, runes("o"))
	if m.mode != modeLibrary {
		t.Fatalf("expected library view; status=%q", m.status)
	}
	if !strings.Contains(m.View(), "opener") {
		t.Fatalf("expected library to list the saved board")
	}
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	g := m.ws.State().Grid
	if g.Get(10, 3) != model.Teal || g.Get(0, 0) != model.Empty {
		t.Fatalf("expected saved board to be loaded")
	}

	// Loading is one undoable step.
	m = send(t, m, runes("u"))
	if got := cellOf(m, 0, 0); got != model.Teal {
		t.Fatalf("expected undo to restore the pre-load board; got %v", got)
	}
}

func TestTemplates_LoadPCO(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	m = send(t, m, runes("t"))
	if m.mode != modeTemplates {
		t.Fatalf("expected template picker")
	}
	// Templates are listed empty, pco.
	m = send(t, m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEnter})
	if m.mode != modeBoard {
		t.Fatalf("expected to return to the board")
	}
	if boardEmpty(m) {
		t.Fatalf("expected the pco template on the board")
	}
}

func TestView_ShowsSidebarAndStatus(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	v := m.View()
	for _, want := range []string{"Tetris Sandbox", "auto-clear", "undo 0  redo 0", "0 cells", "teal"} {
		if !strings.Contains(v, want) {
			t.Fatalf("expected view to contain %q\n%s", want, v)
		}
	}

	m = send(t, m, runes("?"))
	if m.mode != modeHelp {
		t.Fatalf("expected help mode")
	}
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.mode != modeBoard {
		t.Fatalf("expected esc to close help")
	}
}

func TestLinkKey_CopiesShareLink(t *testing.T) {
	var copied string
	prev := clipboardWrite
	clipboardWrite = func(s string) error { copied = s; return nil }
	t.Cleanup(func() { clipboardWrite = prev })

	m := newTestModel(t)
	m.cfg.ShareBaseURL = "https://boards.example/"
	m = send(t, m, press(5, 5), release(), runes("y"))

	if !strings.HasPrefix(copied, "https://boards.example/#") {
		t.Fatalf("unexpected link %q", copied)
	}
	st, err := fragment.ParseLink(copied)
	if err != nil {
		t.Fatalf("ParseLink: %v", err)
	}
	if st.Grid.Get(5, 5) != model.Teal {
		t.Fatalf("expected link to carry the painted cell")
	}
}
