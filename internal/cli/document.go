package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/five82/tael/internal/inbox"
)

func newDocCmd(a *App) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "doc",
		Short: "Print the inbox document",
		Long:  "Print the persisted inbox document. On a terminal it is rendered as Markdown unless --raw is given.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := a.store().Load()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			body := inbox.Render(in)
			if body == "" {
				_, err := fmt.Fprintln(out, "(empty inbox)")
				return err
			}

			width, tty := terminalWidth(out)
			if raw || !tty {
				_, err := io.WriteString(out, body)
				return err
			}
			_, err = io.WriteString(out, renderMarkdown(body, width))
			return err
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print raw text even on a terminal")
	return cmd
}

func terminalWidth(out io.Writer) (int, bool) {
	f, ok := out.(*os.File)
	if !ok || !isatty.IsTerminal(f.Fd()) {
		return defaultListWidth, false
	}
	if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
		return w, true
	}
	return defaultListWidth, true
}

// renderMarkdown falls back to the raw text when glamour fails.
func renderMarkdown(md string, width int) string {
	r, err := glamour.NewTermRenderer(
		// A fixed style avoids terminal background queries.
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(max(width-4, 20)),
	)
	if err != nil {
		return md
	}
	rendered, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(rendered, "\n") + "\n"
}
