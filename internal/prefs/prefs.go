// Package prefs persists viewer preferences that change at runtime.
// Preferences are stored in ~/.config/tael/prefs.toml.
package prefs

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Prefs holds preferences toggled from inside the viewer.
type Prefs struct {
	Theme string `toml:"theme"`
	// Grouping is a comma-separated level list ("status,proj"), "flat"
	// for no grouping, or empty to use the configured group_by.
	Grouping string `toml:"grouping,omitempty"`
}

const (
	defaultPrefsPath = "~/.config/tael/prefs.toml"
	defaultTheme     = "Nightfox"

	// Flat is the Grouping value for an ungrouped list.
	Flat = "flat"
)

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// Load reads preferences from the given path. Unreadable or invalid files
// yield defaults; preferences never block startup.
func Load(path string) Prefs {
	prefs := Prefs{Theme: defaultTheme}

	resolved, err := resolvePath(path)
	if err != nil {
		return prefs
	}

	file, err := os.Open(resolved)
	if err != nil {
		return prefs
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return prefs
	}

	if err := toml.Unmarshal(bytes, &prefs); err != nil {
		return Prefs{Theme: defaultTheme}
	}

	prefs.Theme = strings.TrimSpace(prefs.Theme)
	if prefs.Theme == "" {
		prefs.Theme = defaultTheme
	}
	prefs.Grouping = strings.TrimSpace(prefs.Grouping)
	return prefs
}

// Save writes preferences to the given path, creating directories as needed.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	bytes, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	if err := os.WriteFile(resolved, bytes, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}

// GroupLevels converts a Grouping value to level names. ok is false when
// the value is empty and the caller should fall back to its own default.
func GroupLevels(grouping string) (levels []string, ok bool) {
	grouping = strings.TrimSpace(grouping)
	switch {
	case grouping == "":
		return nil, false
	case strings.EqualFold(grouping, Flat):
		return []string{}, true
	}
	for _, part := range strings.Split(grouping, ",") {
		if part = strings.TrimSpace(part); part != "" {
			levels = append(levels, part)
		}
	}
	if len(levels) == 0 {
		return nil, false
	}
	return levels, true
}

// FormatLevels is the inverse of GroupLevels.
func FormatLevels(levels []string) string {
	if len(levels) == 0 {
		return Flat
	}
	return strings.Join(levels, ",")
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultPrefsPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", errors.New("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
