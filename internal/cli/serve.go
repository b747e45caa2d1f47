package cli

import (
	"github.com/spf13/cobra"

	"github.com/five82/tael/internal/mcpserver"
)

func newServeCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the inbox as MCP tools over stdio",
		Long:  "Run a Model Context Protocol server on stdin/stdout exposing inbox_add, inbox_remove, inbox_list and inbox_clear.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.inboxPath()
			a.logger.Info("mcp server starting", "inbox", path)
			s := mcpserver.New(a.store(), a.logger)
			err := mcpserver.Serve(cmd.Context(), s, cmd.InOrStdin(), cmd.OutOrStdout())
			a.logger.Info("mcp server stopped", "error", err)
			return err
		},
	}
}
