package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	_ "modernc.org/sqlite"
)

var ErrBoardNotFound = errors.New("board not found")

// Board is a named, saved fragment in the workspace library.
type Board struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Fragment  string    `json:"fragment"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (s Store) libraryPath() string {
	return filepath.Join(s.Dir, libraryFileName)
}

func (s Store) openLibrary(ctx context.Context) (*sql.DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.libraryPath())
	if err != nil {
		return nil, err
	}
	// WAL + busy_timeout: the TUI and CLI may hold the file at the same time.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrateLibrary(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func migrateLibrary(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS boards (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			fragment TEXT NOT NULL,
			created_at_unixms INTEGER NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_boards_updated ON boards(updated_at_unixms);`,
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate library: %w", err)
		}
	}
	return nil
}

func newBoardID() string {
	return "board-" + uuid.NewString()
}

// SaveBoard stores frag under name, overwriting an existing board with the
// same name (its id and creation time are kept).
func (s Store) SaveBoard(ctx context.Context, name, frag string) (Board, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Board{}, errors.New("board name is empty")
	}
	db, err := s.openLibrary(ctx)
	if err != nil {
		return Board{}, err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return Board{}, err
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC()
	nowMs := now.UnixMilli()

	b, err := scanBoard(tx.QueryRowContext(ctx, `SELECT id, name, fragment, created_at_unixms, updated_at_unixms FROM boards WHERE name = ?`, name))
	switch {
	case errors.Is(err, ErrBoardNotFound):
		b = Board{ID: newBoardID(), Name: name, CreatedAt: time.UnixMilli(nowMs).UTC()}
		if _, err := tx.ExecContext(ctx, `INSERT INTO boards(id, name, fragment, created_at_unixms, updated_at_unixms) VALUES(?, ?, ?, ?, ?)`,
			b.ID, b.Name, frag, nowMs, nowMs); err != nil {
			return Board{}, err
		}
	case err != nil:
		return Board{}, err
	default:
		if _, err := tx.ExecContext(ctx, `UPDATE boards SET fragment = ?, updated_at_unixms = ? WHERE id = ?`, frag, nowMs, b.ID); err != nil {
			return Board{}, err
		}
	}
	if err := tx.Commit(); err != nil {
		return Board{}, err
	}
	b.Fragment = frag
	b.UpdatedAt = time.UnixMilli(nowMs).UTC()
	return b, nil
}

// ListBoards returns saved boards, most recently updated first.
func (s Store) ListBoards(ctx context.Context) ([]Board, error) {
	db, err := s.openLibrary(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `SELECT id, name, fragment, created_at_unixms, updated_at_unixms FROM boards ORDER BY updated_at_unixms DESC, name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Board{}
	for rows.Next() {
		b, err := scanBoard(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// FindBoard looks a board up by id or, failing that, by name.
func (s Store) FindBoard(ctx context.Context, ref string) (Board, error) {
	ref = strings.TrimSpace(ref)
	db, err := s.openLibrary(ctx)
	if err != nil {
		return Board{}, err
	}
	defer db.Close()

	b, err := scanBoard(db.QueryRowContext(ctx, `SELECT id, name, fragment, created_at_unixms, updated_at_unixms FROM boards WHERE id = ? OR name = ? ORDER BY id = ? DESC LIMIT 1`, ref, ref, ref))
	if err != nil {
		return Board{}, fmt.Errorf("%w: %s", err, ref)
	}
	return b, nil
}

func (s Store) DeleteBoard(ctx context.Context, ref string) error {
	b, err := s.FindBoard(ctx, ref)
	if err != nil {
		return err
	}
	db, err := s.openLibrary(ctx)
	if err != nil {
		return err
	}
	defer db.Close()
	_, err = db.ExecContext(ctx, `DELETE FROM boards WHERE id = ?`, b.ID)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBoard(r rowScanner) (Board, error) {
	var (
		b                  Board
		createdMs, updated int64
	)
	if err := r.Scan(&b.ID, &b.Name, &b.Fragment, &createdMs, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Board{}, ErrBoardNotFound
		}
		return Board{}, err
	}
	b.CreatedAt = time.UnixMilli(createdMs).UTC()
	b.UpdatedAt = time.UnixMilli(updated).UTC()
	return b, nil
}
