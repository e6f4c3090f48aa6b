// Package applog configures the logrus logger shared by the CLI and TUI.
//
// The TUI owns the terminal, so logs go to a file or nowhere.
package applog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// New returns a logger writing to path at the given level. An empty path
// discards output. The returned closer must be called on exit.
func New(path, level string) (*logrus.Logger, io.Closer, error) {
	l := logrus.New()
	l.SetFormatter(&logrus.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
	})

	lvl := logrus.InfoLevel
	if s := strings.TrimSpace(level); s != "" {
		parsed, err := logrus.ParseLevel(s)
		if err != nil {
			return nil, nil, fmt.Errorf("log level: %w", err)
		}
		lvl = parsed
	}
	l.SetLevel(lvl)

	path = strings.TrimSpace(path)
	if path == "" {
		l.SetOutput(io.Discard)
		return l, nopCloser{}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	l.SetOutput(f)
	return l, f, nil
}

// Discard returns a logger that drops everything. Handy for tests.
func Discard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
