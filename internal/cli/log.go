package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/five82/tael/internal/logtail"
)

func newLogCmd(a *App) *cobra.Command {
	var (
		lines int
		level string
	)

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show the tail of the debug log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var minLevel slog.Level
			if err := minLevel.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
				return fmt.Errorf("invalid level %q (use debug, info, warn or error)", level)
			}

			path := a.cfg.LogPath()
			out, err := logtail.Read(path, lines)
			if err != nil {
				return err
			}
			out = logtail.Filter(out, minLevel)

			w := cmd.OutOrStdout()
			if len(out) == 0 {
				fmt.Fprintf(w, "No log entries in %s\n", path)
				return nil
			}

			colors := false
			if f, ok := w.(*os.File); ok {
				colors = a.cfg.Colors && isatty.IsTerminal(f.Fd())
			}
			palette := logtail.DefaultPalette(lipgloss.NewRenderer(w))
			for _, line := range out {
				if colors {
					line = palette.Colorize(line)
				}
				fmt.Fprintln(w, line)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "Number of lines to show (0 for all)")
	cmd.Flags().StringVar(&level, "level", "debug", "Minimum level to show")
	return cmd
}
