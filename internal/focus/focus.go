// Package focus switches the terminal multiplexer to an agent's pane.
package focus

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"
)

// Placeholder is replaced with the pane id in focus commands.
const Placeholder = "{pane_id}"

// ErrNoCommand is returned when no focus command is configured or detected.
var ErrNoCommand = errors.New("no focus command configured")

// Focuser runs a configured command to focus a pane.
type Focuser struct {
	Command string
	Logger  *slog.Logger
}

// New returns a Focuser for the command template.
func New(command string, logger *slog.Logger) *Focuser {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Focuser{Command: command, Logger: logger}
}

// Args expands the command template for paneID and splits it on whitespace.
// Quoting is not interpreted.
func (f *Focuser) Args(paneID uint32) ([]string, error) {
	if strings.TrimSpace(f.Command) == "" {
		return nil, ErrNoCommand
	}
	expanded := strings.ReplaceAll(f.Command, Placeholder, strconv.FormatUint(uint64(paneID), 10))
	args := strings.Fields(expanded)
	if len(args) == 0 {
		return nil, errors.New("empty focus command")
	}
	return args, nil
}

// Focus runs the command and waits for it to finish.
func (f *Focuser) Focus(ctx context.Context, paneID uint32) error {
	args, err := f.Args(paneID)
	if err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	f.Logger.Debug("focusing pane", "pane", paneID, "command", strings.Join(args, " "))

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			msg := strings.TrimSpace(stderr.String())
			if msg == "" {
				return fmt.Errorf("focus command exited with status %d", exitErr.ExitCode())
			}
			return fmt.Errorf("focus command exited with status %d: %s", exitErr.ExitCode(), msg)
		}
		return fmt.Errorf("execute focus command: %w", err)
	}
	return nil
}
