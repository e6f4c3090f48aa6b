package tui

import (
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
)

func truncateToWidth(s string, w int) string {
	s = strings.TrimSpace(strings.ReplaceAll(s, "\n", " "))
	if w <= 0 {
		return ""
	}
	if xansi.StringWidth(s) <= w {
		return s
	}
	if w <= 1 {
		return "…"
	}
	return xansi.Cut(s, 0, w-1) + "…"
}

// clipLines keeps at most h lines of s, each cut to w columns.
func clipLines(s string, w, h int) string {
	lines := strings.Split(s, "\n")
	if h > 0 && len(lines) > h {
		lines = lines[:h]
	}
	if w > 0 {
		for i, ln := range lines {
			if xansi.StringWidth(ln) > w {
				lines[i] = xansi.Cut(ln, 0, w) + "\x1b[0m"
			}
		}
	}
	return strings.Join(lines, "\n")
}
