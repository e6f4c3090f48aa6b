// Package history keeps the undo and redo stacks for board edits.
package history

import "github.com/troynguyen8/tetris-sandbox/internal/model"

// MaxPersisted caps each stack when a Manager is snapshotted for the session file.
const MaxPersisted = 500

// Manager is an unbounded undo stack plus a redo stack. Recording a new entry
// clears redo.
type Manager struct {
	undo []model.Entry
	redo []model.Entry
}

func New() *Manager { return &Manager{} }

func (m *Manager) Record(e model.Entry) {
	if e.Empty() {
		return
	}
	m.undo = append(m.undo, e)
	m.redo = nil
}

// Undo pops the latest entry onto the redo stack. ok is false when there is
// nothing to undo.
func (m *Manager) Undo() (model.Entry, bool) {
	if len(m.undo) == 0 {
		return model.Entry{}, false
	}
	e := m.undo[len(m.undo)-1]
	m.undo = m.undo[:len(m.undo)-1]
	m.redo = append(m.redo, e)
	return e, true
}

// Redo pops the latest undone entry back onto the undo stack.
func (m *Manager) Redo() (model.Entry, bool) {
	if len(m.redo) == 0 {
		return model.Entry{}, false
	}
	e := m.redo[len(m.redo)-1]
	m.redo = m.redo[:len(m.redo)-1]
	m.undo = append(m.undo, e)
	return e, true
}

func (m *Manager) CanUndo() bool { return len(m.undo) > 0 }
func (m *Manager) CanRedo() bool { return len(m.redo) > 0 }

func (m *Manager) Len() (undo, redo int) { return len(m.undo), len(m.redo) }

// Snapshot is the serialized form of a Manager.
type Snapshot struct {
	Undo []model.Entry `json:"undo"`
	Redo []model.Entry `json:"redo"`
}

// Snapshot copies both stacks, keeping the newest MaxPersisted of each.
func (m *Manager) Snapshot() Snapshot {
	return Snapshot{
		Undo: tail(m.undo, MaxPersisted),
		Redo: tail(m.redo, MaxPersisted),
	}
}

func FromSnapshot(s Snapshot) *Manager {
	return &Manager{
		undo: tail(s.Undo, len(s.Undo)),
		redo: tail(s.Redo, len(s.Redo)),
	}
}

func tail(es []model.Entry, n int) []model.Entry {
	if len(es) > n {
		es = es[len(es)-n:]
	}
	out := make([]model.Entry, len(es))
	copy(out, es)
	return out
}
