package tui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Chrome colors. The board itself uses fixed mino colors from the render
// package; everything around it has to stay readable on light and dark
// terminals, so these are adaptive.
var (
	colorMuted  lipgloss.TerminalColor = lipgloss.AdaptiveColor{Light: "240", Dark: "243"}
	colorAccent lipgloss.TerminalColor = lipgloss.AdaptiveColor{Light: "27", Dark: "62"}
	colorError  lipgloss.TerminalColor = lipgloss.AdaptiveColor{Light: "160", Dark: "196"}
	colorTitle  lipgloss.TerminalColor = lipgloss.AdaptiveColor{Light: "235", Dark: "255"}
)

func styleMuted() lipgloss.Style {
	st := lipgloss.NewStyle().Foreground(colorMuted)
	// Faint text on light terminals is often illegible.
	if lipgloss.HasDarkBackground() {
		st = st.Faint(true)
	}
	return st
}

func styleTitle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(colorTitle)
}

func styleAccent() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
}

func styleError() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorError)
}

// applyColorProfilePreference sets Lip Gloss's color profile for the TUI.
//
// termenv.EnvColorProfile honors CLICOLOR, which can disable colors in a TUI
// by accident, so only NO_COLOR is honored here.
func applyColorProfilePreference() termenv.Profile {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return termenv.Ascii
	}

	profile := termenv.ColorProfile()

	// Trust TERM/COLORTERM when they claim more than the detector found.
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	if strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit") {
		if profile != termenv.Ascii {
			profile = termenv.TrueColor
		}
	} else if strings.Contains(term, "256color") && (profile == termenv.Ascii || profile == termenv.ANSI) {
		profile = termenv.ANSI256
	}

	lipgloss.SetColorProfile(profile)
	return profile
}

// applyThemePreference configures background detection.
//
// Priority:
// 1) TETRIS_SANDBOX_TUI_THEME=light|dark|auto
// 2) theme from config.json
// 3) COLORFGBG heuristic ("fg;bg")
func applyThemePreference(configured string) {
	for _, v := range []string{os.Getenv("TETRIS_SANDBOX_TUI_THEME"), configured} {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "light":
			lipgloss.SetHasDarkBackground(false)
			return
		case "dark":
			lipgloss.SetHasDarkBackground(true)
			return
		}
	}

	if v := strings.TrimSpace(os.Getenv("COLORFGBG")); v != "" {
		parts := strings.Split(v, ";")
		if bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1])); err == nil {
			lipgloss.SetHasDarkBackground(bg < 7)
		}
	}
}

// markdownStyle picks the glamour style matching the background.
func markdownStyle() string {
	if lipgloss.ColorProfile() == termenv.Ascii {
		return "notty"
	}
	if lipgloss.HasDarkBackground() {
		return "dark"
	}
	return "light"
}
