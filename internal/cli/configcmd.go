package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/five82/tael/internal/prefs"
)

func newConfigCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			cfg := a.cfg

			focus := cfg.FocusCommand
			if focus == "" {
				focus = "(none)"
			}
			group := prefs.FormatLevels(cfg.GroupBy)

			fmt.Fprintf(out, "Config file: %s\n", cfg.Path)
			fmt.Fprintf(out, "Inbox file: %s\n", a.inboxPath())
			fmt.Fprintf(out, "Log file: %s\n", cfg.LogPath())
			fmt.Fprintln(out)
			fmt.Fprintf(out, "focus_command: %s\n", focus)
			fmt.Fprintf(out, "checkbox_style: %s\n", cfg.CheckboxStyle)
			fmt.Fprintf(out, "colors: %t\n", cfg.Colors)
			fmt.Fprintf(out, "group_by: %s\n", strings.ReplaceAll(group, ",", ", "))
			fmt.Fprintf(out, "refresh_interval: %s\n", cfg.RefreshInterval)
			return nil
		},
	}
}
