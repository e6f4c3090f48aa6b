package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/troynguyen8/tetris-sandbox/internal/history"
	"github.com/troynguyen8/tetris-sandbox/internal/model"
)

func TestFragment_SaveLoad(t *testing.T) {
	t.Parallel()

	s := Store{Dir: filepath.Join(t.TempDir(), "ws")}

	// Missing file => not found, no error.
	_, ok, err := s.LoadFragment()
	if err != nil {
		t.Fatalf("LoadFragment: %v", err)
	}
	if ok {
		t.Fatalf("expected no fragment before first save")
	}
	if !s.FragmentModTime().IsZero() {
		t.Fatalf("expected zero mod time for missing fragment")
	}

	if err := s.SaveFragment("%7Babc%7D"); err != nil {
		t.Fatalf("SaveFragment: %v", err)
	}
	got, ok, err := s.LoadFragment()
	if err != nil || !ok {
		t.Fatalf("LoadFragment after save: ok=%v err=%v", ok, err)
	}
	if got != "%7Babc%7D" {
		t.Fatalf("unexpected fragment %q", got)
	}
	if s.FragmentModTime().IsZero() {
		t.Fatalf("expected mod time after save")
	}
}

func TestSession_RoundTripAndCorruptFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s := Store{Dir: dir}

	h := history.New()
	h.Record(model.Entry{Records: []model.Record{model.CellRecord(1, 2, model.Empty, model.Red)}})
	var full model.Row
	for i := range full {
		full[i] = model.Blue
	}
	h.Record(model.Entry{Records: []model.Record{
		model.CellRecord(19, 9, model.Empty, model.Blue),
		model.LineClearRecord(19, full),
	}})
	_, _ = h.Undo()

	if err := s.SaveHistory(h); err != nil {
		t.Fatalf("SaveHistory: %v", err)
	}
	got, err := s.LoadHistory()
	if err != nil {
		t.Fatalf("LoadHistory: %v", err)
	}
	undo, redo := got.Len()
	if undo != 1 || redo != 1 {
		t.Fatalf("expected 1/1 entries; got %d/%d", undo, redo)
	}
	e, ok := got.Redo()
	if !ok || len(e.Records) != 2 || e.Records[1].Removed == nil || *e.Records[1].Removed != full {
		t.Fatalf("unexpected redo entry: %#v", e)
	}

	if err := os.WriteFile(filepath.Join(dir, sessionFileName), []byte("{nope"), 0o644); err != nil {
		t.Fatalf("write corrupt session: %v", err)
	}
	got, err = s.LoadHistory()
	if err != nil {
		t.Fatalf("LoadHistory (corrupt): %v", err)
	}
	if got.CanUndo() || got.CanRedo() {
		t.Fatalf("expected empty history from corrupt session")
	}

	for name, rec := range map[string]string{
		"off-board cell":     `{"kind":"cell","row":42,"col":3,"next":"red"}`,
		"off-board column":   `{"kind":"cell","row":1,"col":10,"next":"red"}`,
		"unknown kind":       `{"kind":"rotate","row":1}`,
		"line clear no row":  `{"kind":"line_clear","row":19}`,
		"line clear too low": `{"kind":"line_clear","row":20,"removed":["red","red","red","red","red","red","red","red","red","red"]}`,
	} {
		body := `{"version":1,"history":{"undo":[{"records":[` + rec + `]}],"redo":[]}}`
		if err := os.WriteFile(filepath.Join(dir, sessionFileName), []byte(body), 0o644); err != nil {
			t.Fatalf("%s: write session: %v", name, err)
		}
		got, err := s.LoadHistory()
		if err != nil {
			t.Fatalf("%s: LoadHistory: %v", name, err)
		}
		if got.CanUndo() || got.CanRedo() {
			t.Fatalf("%s: expected the session to be dropped", name)
		}
	}
}

func TestLibrary_SaveListFindDelete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := Store{Dir: t.TempDir()}

	boards, err := s.ListBoards(ctx)
	if err != nil {
		t.Fatalf("ListBoards: %v", err)
	}
	if len(boards) != 0 {
		t.Fatalf("expected empty library; got %d", len(boards))
	}

	a, err := s.SaveBoard(ctx, "opener", "frag-a")
	if err != nil {
		t.Fatalf("SaveBoard: %v", err)
	}
	if a.ID == "" || a.Name != "opener" {
		t.Fatalf("unexpected board: %#v", a)
	}
	if _, err := s.SaveBoard(ctx, "other", "frag-b"); err != nil {
		t.Fatalf("SaveBoard other: %v", err)
	}

	// Same name overwrites in place.
	a2, err := s.SaveBoard(ctx, "opener", "frag-a2")
	if err != nil {
		t.Fatalf("SaveBoard overwrite: %v", err)
	}
	if a2.ID != a.ID {
		t.Fatalf("expected id to be kept on overwrite; %s != %s", a2.ID, a.ID)
	}

	boards, err = s.ListBoards(ctx)
	if err != nil {
		t.Fatalf("ListBoards: %v", err)
	}
	if len(boards) != 2 {
		t.Fatalf("expected 2 boards; got %d", len(boards))
	}

	byName, err := s.FindBoard(ctx, "opener")
	if err != nil {
		t.Fatalf("FindBoard by name: %v", err)
	}
	if byName.Fragment != "frag-a2" {
		t.Fatalf("expected overwritten fragment; got %q", byName.Fragment)
	}
	byID, err := s.FindBoard(ctx, a.ID)
	if err != nil || byID.Name != "opener" {
		t.Fatalf("FindBoard by id: %#v %v", byID, err)
	}

	if err := s.DeleteBoard(ctx, "opener"); err != nil {
		t.Fatalf("DeleteBoard: %v", err)
	}
	if _, err := s.FindBoard(ctx, "opener"); !errors.Is(err, ErrBoardNotFound) {
		t.Fatalf("expected ErrBoardNotFound; got %v", err)
	}
	if err := s.DeleteBoard(ctx, "opener"); !errors.Is(err, ErrBoardNotFound) {
		t.Fatalf("expected ErrBoardNotFound on second delete; got %v", err)
	}
	if _, err := s.SaveBoard(ctx, "  ", "x"); err == nil {
		t.Fatalf("expected error for empty name")
	}
}

func TestConfig_SaveLoad(t *testing.T) {
	t.Setenv(envConfigDir, t.TempDir())

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.ShareBase() != DefaultShareBaseURL {
		t.Fatalf("expected default share base; got %q", cfg.ShareBase())
	}

	cfg.ShareBaseURL = "https://boards.example/"
	cfg.TUI = &TUIConfig{Theme: "dark", Glyphs: "ascii"}
	if err := SaveConfig(cfg); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}
	got, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig after save: %v", err)
	}
	if got.ShareBase() != "https://boards.example/" || got.TUI == nil || got.TUI.Glyphs != "ascii" {
		t.Fatalf("unexpected config: %#v", got)
	}

	dir, err := DefaultDir()
	if err != nil {
		t.Fatalf("DefaultDir: %v", err)
	}
	if filepath.Base(dir) != "board" {
		t.Fatalf("unexpected default dir %q", dir)
	}
}
