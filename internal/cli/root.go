package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/five82/tael/internal/app"
	"github.com/five82/tael/internal/config"
	"github.com/five82/tael/internal/state"
)

// App holds state shared by every command.
type App struct {
	File       string
	ConfigPath string
	PrefsPath  string

	cfg       config.Config
	logger    *slog.Logger
	logCloser io.Closer
}

// NewRootCmd builds the tael command tree.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&App{})
}

func newRootCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "tael",
		Short:         "Terminal-agnostic agent inbox",
		Long:          "Track which AI assistants are waiting for you and jump to their terminal pane.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: strings.TrimSpace(`
  # Open the interactive inbox
  tael

  # From an agent hook: ask for attention, then clear it
  tael add "claude-code: Auth question" --project crucible --branch main
  tael remove

  # Scriptable output
  tael list --format json
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runViewer(cmd, a)
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return a.setup()
	}

	cmd.PersistentFlags().StringVarP(&a.File, "file", "f", envOr("TAEL_INBOX_FILE", ""), "Inbox file path")
	cmd.PersistentFlags().StringVar(&a.ConfigPath, "config", "", "Config file path (default ~/.config/tael/config.toml)")

	cmd.AddCommand(newAddCmd(a))
	cmd.AddCommand(newRemoveCmd(a))
	cmd.AddCommand(newListCmd(a))
	cmd.AddCommand(newClearCmd(a))
	cmd.AddCommand(newTUICmd(a))
	cmd.AddCommand(newConfigCmd(a))
	cmd.AddCommand(newDocCmd(a))
	cmd.AddCommand(newServeCmd(a))
	cmd.AddCommand(newLogCmd(a))

	return cmd
}

// Execute runs the command tree with args.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	return execute(ctx, &App{}, args, stdout, stderr)
}

// execute closes the log file whether or not the command succeeded.
func execute(ctx context.Context, a *App, args []string, stdout, stderr io.Writer) (err error) {
	defer func() {
		if closeErr := a.close(); err == nil {
			err = closeErr
		}
	}()

	cmd := newRootCmd(a)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	err = cmd.ExecuteContext(ctx)
	if err != nil && a.logger != nil {
		a.logger.Error("command failed", "args", args, "error", err)
	}
	return err
}

func (a *App) setup() error {
	cfg, err := config.Load(a.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	a.cfg = cfg

	logger, closer, err := newLogger(cfg)
	if err != nil {
		return err
	}
	a.logger = logger
	a.logCloser = closer
	slog.SetDefault(logger)
	return nil
}

func (a *App) close() error {
	if a.logCloser == nil {
		return nil
	}
	err := a.logCloser.Close()
	a.logCloser = nil
	return err
}

// inboxPath resolves --file / TAEL_INBOX_FILE, then inbox_file, then the
// per-session default.
func (a *App) inboxPath() string {
	if p := strings.TrimSpace(a.File); p != "" {
		return p
	}
	if a.cfg.InboxFile != "" {
		return a.cfg.InboxFile
	}
	return state.DefaultPath()
}

func (a *App) store() *state.Store {
	s := state.NewStore(a.inboxPath())
	s.Logger = a.logger
	return s
}

func runViewer(cmd *cobra.Command, a *App) error {
	return app.Run(cmd.Context(), app.Options{
		Config:    a.cfg,
		InboxPath: a.inboxPath(),
		PrefsPath: a.PrefsPath,
		Logger:    a.logger,
		Stderr:    cmd.ErrOrStderr(),
	})
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

// parsePane validates a pane id from a flag or the environment.
func parsePane(raw string) (uint32, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("pane ID required (use --pane or set ZELLIJ_PANE_ID)")
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid pane ID %q", raw)
	}
	return uint32(id), nil
}
