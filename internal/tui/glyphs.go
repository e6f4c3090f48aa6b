package tui

import (
	"os"
	"strings"
	"sync"
)

// Some terminals or fonts cannot show colored half-width blocks well (or the
// user runs with NO_COLOR). The ASCII glyph set draws each mino as its letter.

type glyphSet int

const (
	glyphSetBlocks glyphSet = iota
	glyphSetASCII
)

var (
	glyphsMu      sync.RWMutex
	currentGlyphs = glyphSetBlocks
)

// applyGlyphPreference reads TETRIS_SANDBOX_TUI_GLYPHS, falling back to the
// configured value. Unknown values are ignored.
func applyGlyphPreference(configured string) {
	for _, v := range []string{os.Getenv("TETRIS_SANDBOX_TUI_GLYPHS"), configured} {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "blocks", "unicode":
			setGlyphs(glyphSetBlocks)
			return
		case "ascii":
			setGlyphs(glyphSetASCII)
			return
		}
	}
}

func setGlyphs(gs glyphSet) {
	glyphsMu.Lock()
	currentGlyphs = gs
	glyphsMu.Unlock()
}

func glyphs() glyphSet {
	glyphsMu.RLock()
	gs := currentGlyphs
	glyphsMu.RUnlock()
	return gs
}

func asciiBoard() bool { return glyphs() == glyphSetASCII }

func glyphOn() string {
	if asciiBoard() {
		return "[x]"
	}
	return "●"
}

func glyphOff() string {
	if asciiBoard() {
		return "[ ]"
	}
	return "○"
}
