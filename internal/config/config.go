package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures tael's user settings.
type Config struct {
	Path            string // resolved config file path
	FocusCommand    string
	CheckboxStyle   string
	Colors          bool
	GroupBy         []string
	RefreshInterval time.Duration
	InboxFile       string
	LogFile         string
}

const (
	defaultConfigPath      = "~/.config/tael/config.toml"
	defaultLogFile         = "~/.local/share/tael/tael.log"
	defaultCheckboxStyle   = "brackets"
	defaultRefreshInterval = 2 * time.Second

	zellijFocusCommand = "zellij action focus-pane-with-id {pane_id}"
	tmuxFocusCommand   = "tmux select-pane -t {pane_id}"
)

// DefaultGroupBy is the grouping used when none is configured.
var DefaultGroupBy = []string{"status", "proj"}

// Default returns the built-in settings without consulting disk or env.
func Default() Config {
	return Config{
		CheckboxStyle:   defaultCheckboxStyle,
		Colors:          true,
		GroupBy:         append([]string(nil), DefaultGroupBy...),
		RefreshInterval: defaultRefreshInterval,
	}
}

// Load locates and parses the tael config, falling back to defaults when missing.
// TAEL_FOCUS_CMD overrides focus_command; when neither is set the focus
// command is detected from the running multiplexer.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()
	cfg.Path = resolved

	if err := cfg.readFile(resolved); err != nil {
		return Config{}, err
	}

	if cmd := strings.TrimSpace(os.Getenv("TAEL_FOCUS_CMD")); cmd != "" {
		cfg.FocusCommand = cmd
	}
	if cfg.FocusCommand == "" {
		cfg.FocusCommand = detectFocusCommand()
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		FocusCommand    string   `toml:"focus_command"`
		CheckboxStyle   string   `toml:"checkbox_style"`
		Colors          *bool    `toml:"colors"`
		GroupBy         []string `toml:"group_by"`
		RefreshInterval int      `toml:"refresh_interval"`
		InboxFile       string   `toml:"inbox_file"`
		LogFile         string   `toml:"log_file"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	c.FocusCommand = strings.TrimSpace(raw.FocusCommand)
	if style := strings.TrimSpace(raw.CheckboxStyle); style != "" {
		c.CheckboxStyle = style
	}
	if raw.Colors != nil {
		c.Colors = *raw.Colors
	}
	if raw.GroupBy != nil {
		c.GroupBy = cleanLevels(raw.GroupBy)
	}
	if raw.RefreshInterval > 0 {
		c.RefreshInterval = time.Duration(raw.RefreshInterval) * time.Second
	}
	if inbox := strings.TrimSpace(raw.InboxFile); inbox != "" {
		c.InboxFile = mustExpand(inbox)
	}
	if logFile := strings.TrimSpace(raw.LogFile); logFile != "" {
		c.LogFile = mustExpand(logFile)
	}
	return nil
}

// LogPath returns the debug log location, defaulting when log_file is unset.
func (c Config) LogPath() string {
	if strings.TrimSpace(c.LogFile) != "" {
		return c.LogFile
	}
	return mustExpand(defaultLogFile)
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return mustExpand(defaultConfigPath)
}

// cleanLevels trims level names and drops blanks. An explicit empty list
// stays empty and means a flat list.
func cleanLevels(levels []string) []string {
	out := make([]string, 0, len(levels))
	for _, l := range levels {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

func detectFocusCommand() string {
	if _, ok := os.LookupEnv("ZELLIJ"); ok {
		return zellijFocusCommand
	}
	if _, ok := os.LookupEnv("TMUX"); ok {
		return tmuxFocusCommand
	}
	return ""
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
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
