package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/five82/tael/internal/config"
	"github.com/five82/tael/internal/focus"
	"github.com/five82/tael/internal/prefs"
	"github.com/five82/tael/internal/state"
	"github.com/five82/tael/internal/ui"
)

// Options configure the interactive viewer.
type Options struct {
	Config    config.Config
	InboxPath string
	PrefsPath string // empty uses default ~/.config/tael/prefs.toml
	Logger    *slog.Logger
	Stderr    io.Writer
}

// Run shows the viewer until the user quits or the context is cancelled,
// then focuses the pane the user picked, if any.
func Run(ctx context.Context, opts Options) error {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	cfg := opts.Config

	userPrefs := prefs.Load(opts.PrefsPath)

	store := state.NewStore(opts.InboxPath)
	store.Logger = logger

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var changes <-chan struct{}
	if w, err := Watch(watchCtx, opts.InboxPath, 0, logger); err != nil {
		// The refresh tick still reloads the inbox.
		logger.Warn("file watcher unavailable", "path", opts.InboxPath, "error", err)
	} else {
		changes = w.Changes()
	}

	renderer := lipgloss.NewRenderer(os.Stdout)
	if !cfg.Colors {
		renderer.SetColorProfile(termenv.Ascii)
	}

	final, err := ui.Run(ctx, ui.Options{
		Store:     store,
		Changes:   changes,
		Refresh:   cfg.RefreshInterval,
		Levels:    cfg.GroupBy,
		Checkbox:  ui.ParseCheckboxStyle(cfg.CheckboxStyle),
		Colors:    cfg.Colors,
		ThemeName: userPrefs.Theme,
		Grouping:  userPrefs.Grouping,
		PrefsPath: opts.PrefsPath,
		Renderer:  renderer,
		Logger:    logger,
	})
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("run viewer: %w", err)
	}

	pane, ok := final.FocusTarget()
	if !ok {
		return nil
	}
	focusPane(ctx, focus.New(cfg.FocusCommand, logger), pane, stderr, logger)
	return nil
}

// focusPane runs the focus command. Failures are reported but never fail
// the viewer, which has already exited cleanly.
func focusPane(ctx context.Context, f *focus.Focuser, pane uint32, stderr io.Writer, logger *slog.Logger) {
	if err := f.Focus(ctx, pane); err != nil {
		logger.Warn("focus failed", "pane", pane, "error", err)
		fmt.Fprintf(stderr, "failed to focus pane %d: %v\n", pane, err)
	}
}
