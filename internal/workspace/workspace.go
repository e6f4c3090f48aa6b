// Package workspace ties an editor to its on-disk store: it restores state
// on open and writes the fragment and history after every change.
package workspace

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/troynguyen8/tetris-sandbox/internal/editor"
	"github.com/troynguyen8/tetris-sandbox/internal/fragment"
	"github.com/troynguyen8/tetris-sandbox/internal/history"
	"github.com/troynguyen8/tetris-sandbox/internal/model"
	"github.com/troynguyen8/tetris-sandbox/internal/store"
)

type Workspace struct {
	Store  store.Store
	Editor *editor.Editor

	log     logrus.FieldLogger
	lastMod time.Time
}

type Options struct {
	Log logrus.FieldLogger
	Now func() time.Time
}

// Open restores the board from s. A missing or malformed fragment yields the
// default board; a malformed one is logged, never returned as an error.
func Open(s store.Store, opts Options) (*Workspace, error) {
	w := &Workspace{Store: s, log: opts.Log}
	if w.log == nil {
		w.log = logrus.StandardLogger()
	}
	st, h, err := w.read()
	if err != nil {
		return nil, err
	}
	w.Editor = editor.New(st, h, editor.Options{Now: opts.Now, Log: w.log})
	return w, nil
}

// read loads the stored board. History is only trusted alongside a readable
// fragment; a fresh default board starts with an empty history.
func (w *Workspace) read() (model.AppState, *history.Manager, error) {
	frag, ok, err := w.Store.LoadFragment()
	if err != nil {
		return model.AppState{}, nil, err
	}
	w.lastMod = w.Store.FragmentModTime()
	if !ok {
		return model.DefaultAppState(), history.New(), nil
	}
	st, err := fragment.Load(frag)
	if err != nil {
		w.log.WithError(err).WithField("dir", w.Store.Dir).Warn("ignoring unreadable fragment; starting from an empty board and history")
		return st, history.New(), nil
	}
	h, err := w.Store.LoadHistory()
	if err != nil {
		return model.AppState{}, nil, err
	}
	return st, h, nil
}

// State is shorthand for w.Editor.State().
func (w *Workspace) State() model.AppState { return w.Editor.State() }

// Fragment returns the encoded current state.
func (w *Workspace) Fragment() string { return fragment.Encode(w.Editor.State()) }

// Commit persists the current state and history.
func (w *Workspace) Commit() error {
	if err := w.Store.SaveFragment(w.Fragment()); err != nil {
		return err
	}
	if err := w.Store.SaveHistory(w.Editor.History()); err != nil {
		return err
	}
	w.lastMod = w.Store.FragmentModTime()
	return nil
}

// ChangedExternally reports whether the fragment file was written by someone
// else since we last read or wrote it.
func (w *Workspace) ChangedExternally() bool {
	mod := w.Store.FragmentModTime()
	return !mod.IsZero() && !mod.Equal(w.lastMod)
}

// Reload re-reads state and history from disk into the existing editor.
func (w *Workspace) Reload() error {
	st, h, err := w.read()
	if err != nil {
		return err
	}
	w.Editor.Replace(st, h)
	return nil
}

// Import replaces the board with a decoded fragment or link as one undoable
// step, and takes over its options. Malformed input leaves the board as is.
func (w *Workspace) Import(link string) (editor.Outcome, error) {
	st, err := fragment.ParseLink(link)
	if err != nil {
		return editor.Outcome{}, err
	}
	out := w.Editor.LoadGrid(st.Grid)
	if err := w.Editor.SelectColor(st.SelectedColor); err != nil {
		return out, err
	}
	auto := w.Editor.SetAutoClear(st.ShouldClearFullLines)
	if st.ShouldClearFullLines && len(auto.Cleared) == 0 {
		// Already on: the imported rows still need clearing.
		auto = w.Editor.ClearFullLines()
	}
	if len(auto.Cleared) > 0 {
		out.Changed, out.Cleared = true, auto.Cleared
	}
	return out, nil
}
