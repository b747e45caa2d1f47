package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/five82/tael/internal/inbox"
	"github.com/five82/tael/internal/prefs"
	"github.com/five82/tael/internal/ui"
)

const defaultListWidth = 80

func newListCmd(a *App) *cobra.Command {
	var (
		format string
		group  string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print every item",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := a.store().Load()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			switch strings.ToLower(strings.TrimSpace(format)) {
			case "", "text":
				levels := a.cfg.GroupBy
				if parsed, ok := prefs.GroupLevels(group); ok {
					levels = parsed
				}
				opts := ui.RenderOptions{
					Checkbox:   ui.ParseCheckboxStyle(a.cfg.CheckboxStyle),
					Colors:     a.cfg.Colors,
					Levels:     levels,
					HideFooter: true,
				}
				_, err := io.WriteString(out, renderText(out, in, opts, prefs.Load(a.PrefsPath).Theme))
				return err
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(items(in))
			case "yaml":
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				if err := enc.Encode(items(in)); err != nil {
					return fmt.Errorf("encode yaml: %w", err)
				}
				return enc.Close()
			default:
				return fmt.Errorf("unknown format %q (use text, json or yaml)", format)
			}
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "Output format (text|json|yaml)")
	cmd.Flags().StringVar(&group, "group", "", "Grouping levels, comma separated, or 'flat' (default from config)")
	return cmd
}

// items never returns nil so empty inboxes encode as [].
func items(in *inbox.Inbox) []inbox.Item {
	if in.IsEmpty() {
		return []inbox.Item{}
	}
	return in.Items
}

// renderText draws the static list sized to the terminal. Colors are used
// only when enabled and out is a terminal.
func renderText(out io.Writer, in *inbox.Inbox, opts ui.RenderOptions, theme string) string {
	width := defaultListWidth
	tty := false
	if f, ok := out.(*os.File); ok {
		tty = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		if tty {
			if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
				width = w
			}
		}
	}
	opts.Colors = opts.Colors && tty
	opts.Width = width

	renderer := lipgloss.NewRenderer(out)
	if !opts.Colors {
		renderer.SetColorProfile(termenv.Ascii)
	}
	opts.Styles = ui.GetTheme(theme).Styles(renderer)

	return ui.RenderList(in, -1, opts)
}
