package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/five82/tael/internal/config"
)

// debugEnabled reports whether TAEL_DEBUG asks for debug logging.
func debugEnabled() bool {
	v := strings.TrimSpace(os.Getenv("TAEL_DEBUG"))
	return v != "" && v != "0" && !strings.EqualFold(v, "false")
}

// newLogger returns a text logger writing to the debug log when logging is
// enabled, or a discarding logger otherwise. The terminal is never a sink:
// the viewer owns it.
func newLogger(cfg config.Config) (*slog.Logger, io.Closer, error) {
	if !debugEnabled() && cfg.LogFile == "" {
		return slog.New(slog.DiscardHandler), nil, nil
	}

	path := cfg.LogPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}

	level := slog.LevelInfo
	if debugEnabled() {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(file, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With("pid", os.Getpid()), file, nil
}
