package cli

import "github.com/spf13/cobra"

func newTUICmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:     "tui",
		Aliases: []string{"ui"},
		Short:   "Open the interactive inbox (default)",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runViewer(cmd, a)
		},
	}
}
