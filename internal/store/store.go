package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	fragmentFileName = "fragment.txt"
	sessionFileName  = "session.json"
	libraryFileName  = "library.sqlite"
)

// Store is a workspace directory holding the current board fragment, the
// undo session, and the board library.
type Store struct {
	Dir string
}

// DefaultDir resolves the workspace dir: the configured default, else
// <config dir>/board.
func DefaultDir() (string, error) {
	cfg, err := LoadConfig()
	if err == nil && strings.TrimSpace(cfg.DefaultDir) != "" {
		return filepath.Clean(cfg.DefaultDir), nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "board"), nil
}

func (s Store) Ensure() error {
	if strings.TrimSpace(s.Dir) == "" {
		return errors.New("store: dir is empty")
	}
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) fragmentPath() string { return filepath.Join(s.Dir, fragmentFileName) }

// LoadFragment returns the stored fragment. A missing file is not an error;
// ok reports whether a fragment was found.
func (s Store) LoadFragment() (frag string, ok bool, err error) {
	b, err := os.ReadFile(s.fragmentPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read fragment: %w", err)
	}
	frag = strings.TrimSpace(string(b))
	return frag, frag != "", nil
}

// SaveFragment atomically replaces the stored fragment.
func (s Store) SaveFragment(frag string) error {
	if err := s.Ensure(); err != nil {
		return err
	}
	if err := atomicWriteFile(s.Dir, fragmentFileName+".*.tmp", s.fragmentPath(), []byte(frag+"\n"), 0o644); err != nil {
		return fmt.Errorf("write fragment: %w", err)
	}
	return nil
}

// FragmentModTime is used to notice writes made by other processes.
func (s Store) FragmentModTime() time.Time {
	st, err := os.Stat(s.fragmentPath())
	if err != nil {
		return time.Time{}
	}
	return st.ModTime()
}
