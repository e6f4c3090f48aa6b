package workspace

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/troynguyen8/tetris-sandbox/internal/applog"
	"github.com/troynguyen8/tetris-sandbox/internal/fragment"
	"github.com/troynguyen8/tetris-sandbox/internal/model"
	"github.com/troynguyen8/tetris-sandbox/internal/store"
	"github.com/troynguyen8/tetris-sandbox/internal/templates"
)

func open(t *testing.T, dir string) *Workspace {
	t.Helper()
	w, err := Open(store.Store{Dir: dir}, Options{Log: applog.Discard()})
	require.NoError(t, err)
	return w
}

func TestOpen_DefaultsWhenNothingStored(t *testing.T) {
	t.Parallel()

	w := open(t, t.TempDir())
	assert.Equal(t, model.DefaultAppState(), w.State())
	assert.False(t, w.Editor.History().CanUndo())
}

func TestOpen_MalformedFragmentFallsBackToDefault(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fragment.txt"), []byte("%7Bbroken"), 0o644))

	w := open(t, dir)
	assert.Equal(t, model.DefaultAppState(), w.State())
}

func TestCommit_PersistsStateAndHistoryAcrossOpens(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	w := open(t, dir)
	require.NoError(t, w.Editor.SelectColor(model.Orange))
	_, err := w.Editor.Paint(10, 4)
	require.NoError(t, err)
	require.NoError(t, w.Commit())

	w2 := open(t, dir)
	st := w2.State()
	assert.Equal(t, model.Orange, st.Grid.Get(10, 4))
	assert.Equal(t, model.Orange, st.SelectedColor)

	ok, err := w2.Editor.Undo()
	require.NoError(t, err)
	require.True(t, ok)
	st = w2.State()
	assert.Equal(t, model.Empty, st.Grid.Get(10, 4))
}

func TestChangedExternally_AndReload(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	w := open(t, dir)
	require.NoError(t, w.Commit())
	assert.False(t, w.ChangedExternally())

	other := open(t, dir)
	_, err := other.Editor.PaintColor(0, 0, model.Red)
	require.NoError(t, err)
	// Make sure the mtime moves even on coarse filesystems.
	future := time.Now().Add(2 * time.Second)
	require.NoError(t, other.Commit())
	require.NoError(t, os.Chtimes(filepath.Join(dir, "fragment.txt"), future, future))

	assert.True(t, w.ChangedExternally())
	require.NoError(t, w.Reload())
	st := w.State()
	assert.Equal(t, model.Red, st.Grid.Get(0, 0))
	assert.False(t, w.ChangedExternally())
	assert.True(t, w.Editor.History().CanUndo())
}

func TestImport_LinkIsUndoable(t *testing.T) {
	t.Parallel()

	w := open(t, t.TempDir())
	want := model.AppState{Grid: templates.MustGrid("pco"), SelectedColor: model.Green}

	out, err := w.Import(fragment.Link("https://x.test/", want))
	require.NoError(t, err)
	assert.True(t, out.Changed)
	assert.Equal(t, want, w.State())

	ok, err := w.Editor.Undo()
	require.NoError(t, err)
	require.True(t, ok)
	st := w.State()
	assert.True(t, st.Grid.IsEmpty())

	_, err = w.Import("#garbage")
	assert.ErrorIs(t, err, fragment.ErrMalformed)
}

func TestImport_ClearsFullRowsWhenAutoClearAlreadyOn(t *testing.T) {
	t.Parallel()

	w := open(t, t.TempDir())
	w.Editor.SetAutoClear(true)

	var g model.Grid
	for col := 0; col < model.Cols; col++ {
		g.Set(19, col, model.Blue)
	}
	g.Set(18, 0, model.Red)
	out, err := w.Import(fragment.Encode(model.AppState{Grid: g, ShouldClearFullLines: true, SelectedColor: model.Teal}))
	require.NoError(t, err)
	assert.Equal(t, []int{19}, out.Cleared)

	st := w.State()
	assert.False(t, st.Grid.LineIsFull(19))
	assert.Equal(t, model.Red, st.Grid.Get(19, 0))

	// The clear and the load undo separately.
	ok, err := w.Editor.Undo()
	require.NoError(t, err)
	require.True(t, ok)
	st = w.State()
	assert.True(t, st.Grid.LineIsFull(19))
}

func TestOpen_UnreadableFragmentDropsStoredHistory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	w := open(t, dir)
	for col := 0; col < model.Cols; col++ {
		_, err := w.Editor.PaintColor(19, col, model.Red)
		require.NoError(t, err)
	}
	require.NoError(t, w.Commit())
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fragment.txt"), []byte("%7Bbroken"), 0o644))

	w2 := open(t, dir)
	st := w2.State()
	assert.True(t, st.Grid.IsEmpty())
	assert.False(t, w2.Editor.History().CanUndo())
	assert.False(t, w2.Editor.History().CanRedo())

	ok, err := w2.Editor.Undo()
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, os.Remove(filepath.Join(dir, "fragment.txt")))
	w3 := open(t, dir)
	assert.False(t, w3.Editor.History().CanUndo())
}

func TestOpen_OffBoardHistoryIsDiscarded(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, open(t, dir).Commit())
	session := `{"version":1,"history":{"undo":[{"records":[{"kind":"cell","row":42,"col":3,"next":"red"}]}],"redo":[]}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "session.json"), []byte(session), 0o644))

	w := open(t, dir)
	assert.False(t, w.Editor.History().CanUndo())
	assert.NotPanics(t, func() {
		ok, err := w.Editor.Undo()
		assert.NoError(t, err)
		assert.False(t, ok)
	})
}
