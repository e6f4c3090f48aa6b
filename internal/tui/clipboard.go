package tui

import (
	"errors"
	"os/exec"
	"runtime"
	"strings"
)

// clipboardWrite is swapped out in tests.
var clipboardWrite = copyToClipboard

// copyToClipboard shells out to the platform clipboard tool. Share links are
// one line, so line endings are normalized and trailing space trimmed.
func copyToClipboard(s string) error {
	s = strings.TrimSpace(strings.ReplaceAll(s, "\r\n", "\n"))

	var tools [][]string
	switch runtime.GOOS {
	case "darwin":
		tools = [][]string{{"pbcopy"}}
	case "windows":
		tools = [][]string{{"cmd", "/c", "clip"}, {"powershell", "-NoProfile", "-Command", "Set-Clipboard"}}
	default:
		// Wayland first, then X11.
		tools = [][]string{{"wl-copy"}, {"xclip", "-selection", "clipboard"}, {"xsel", "--clipboard", "--input"}}
	}

	var errs []error
	for _, t := range tools {
		err := runClipboardCmd(t[0], t[1:], s)
		if err == nil {
			return nil
		}
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func runClipboardCmd(name string, args []string, stdin string) error {
	if _, err := exec.LookPath(name); err != nil {
		return err
	}
	cmd := exec.Command(name, args...)
	cmd.Stdin = strings.NewReader(stdin)
	if err := cmd.Run(); err != nil {
		return errors.New(name + ": " + err.Error())
	}
	return nil
}
