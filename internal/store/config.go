package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

const envConfigDir = "TETRIS_SANDBOX_CONFIG_DIR"

type GlobalConfig struct {
	// DefaultDir overrides the workspace dir used when --dir is not given.
	DefaultDir string `json:"defaultDir,omitempty"`

	// ShareBaseURL is the page URL that `link` puts in front of the fragment.
	ShareBaseURL string `json:"shareBaseUrl,omitempty"`

	LogFile  string `json:"logFile,omitempty"`
	LogLevel string `json:"logLevel,omitempty"`

	// TUI holds optional user preferences for the interactive TUI.
	TUI *TUIConfig `json:"tui,omitempty"`
}

type TUIConfig struct {
	// Theme is one of light|dark|auto.
	Theme string `json:"theme,omitempty"`
	// Glyphs selects the cell glyph set ("blocks", "ascii").
	Glyphs string `json:"glyphs,omitempty"`
}

// DefaultShareBaseURL is used by `link` when the config has none.
const DefaultShareBaseURL = "https://tetris-sandbox.local/"

func ConfigDir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.tetris-sandbox).
	if v := strings.TrimSpace(os.Getenv(envConfigDir)); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".tetris-sandbox"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

func LoadConfig() (*GlobalConfig, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &GlobalConfig{}, nil
		}
		return nil, err
	}
	var cfg GlobalConfig
	if err := json.Unmarshal(b, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *GlobalConfig) ShareBase() string {
	if c == nil || strings.TrimSpace(c.ShareBaseURL) == "" {
		return DefaultShareBaseURL
	}
	return strings.TrimSpace(c.ShareBaseURL)
}

func atomicWriteFile(dir, tmpPattern, path string, b []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(dir, tmpPattern)
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	_ = os.Chmod(tmp, perm)
	return os.Rename(tmp, path)
}

func SaveConfig(cfg *GlobalConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	// Unique temp name + rename so a TUI and a CLI writing at once cannot corrupt it.
	return atomicWriteFile(dir, "config.json.*.tmp", path, b, 0o600)
}
