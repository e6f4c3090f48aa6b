package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/troynguyen8/tetris-sandbox/internal/history"
	"github.com/troynguyen8/tetris-sandbox/internal/model"
)

// Session stores the undo/redo history next to the fragment so separate CLI
// invocations and the TUI share it.
//
// It is "best effort": a missing or corrupt file yields an empty history.
type Session struct {
	Version int              `json:"version"`
	History history.Snapshot `json:"history"`
}

func (s Store) sessionPath() string {
	return filepath.Join(s.Dir, sessionFileName)
}

func (s Store) LoadSession() (*Session, error) {
	b, err := os.ReadFile(s.sessionPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Session{Version: 1}, nil
		}
		return nil, err
	}
	var sess Session
	if err := json.Unmarshal(b, &sess); err != nil {
		// Best-effort; if corrupted, treat as missing.
		return &Session{Version: 1}, nil
	}
	if !validSnapshot(sess.History) {
		// Records that cannot apply to a board are as bad as unparsable JSON.
		return &Session{Version: 1}, nil
	}
	if sess.Version == 0 {
		sess.Version = 1
	}
	return &sess, nil
}

func validSnapshot(snap history.Snapshot) bool {
	for _, stack := range [][]model.Entry{snap.Undo, snap.Redo} {
		for _, e := range stack {
			for _, r := range e.Records {
				if !r.Valid() {
					return false
				}
			}
		}
	}
	return true
}

func (s Store) SaveSession(sess *Session) error {
	if sess == nil {
		return nil
	}
	if err := s.Ensure(); err != nil {
		return err
	}
	if sess.Version == 0 {
		sess.Version = 1
	}
	b, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return atomicWriteFile(s.Dir, sessionFileName+".*.tmp", s.sessionPath(), b, 0o644)
}

// LoadHistory is LoadSession reduced to a history manager.
func (s Store) LoadHistory() (*history.Manager, error) {
	sess, err := s.LoadSession()
	if err != nil {
		return nil, err
	}
	return history.FromSnapshot(sess.History), nil
}

func (s Store) SaveHistory(h *history.Manager) error {
	if h == nil {
		return nil
	}
	return s.SaveSession(&Session{Version: 1, History: h.Snapshot()})
}
