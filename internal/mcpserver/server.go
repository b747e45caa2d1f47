// Package mcpserver exposes the inbox to assistants over the Model Context
// Protocol. Agents call inbox_add when they need input and inbox_remove
// when they resume, instead of shelling out to the CLI.
package mcpserver

import (
	"context"
	"io"
	"log/slog"

	"github.com/mark3labs/mcp-go/server"

	"github.com/five82/tael/internal/state"
)

// Version is set at build time via ldflags.
var Version = "dev"

const instructions = `tael is the user's agent inbox. When you stop to wait for the user, call
inbox_add with a short message and your terminal pane id (status "wait").
While you run unattended, use status "work". When the user responds, call
inbox_remove with the same pane id so the entry disappears.`

// New creates the MCP server with every inbox tool registered.
func New(store *state.Store, logger *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer(
		"tael",
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(instructions),
	)

	addTool := NewAddTool(store, logger)
	s.AddTool(addTool.Definition(), addTool.Handle)

	removeTool := NewRemoveTool(store, logger)
	s.AddTool(removeTool.Definition(), removeTool.Handle)

	listTool := NewListTool(store)
	s.AddTool(listTool.Definition(), listTool.Handle)

	clearTool := NewClearTool(store, logger)
	s.AddTool(clearTool.Definition(), clearTool.Handle)

	return s
}

// Serve speaks MCP over the given streams until ctx is cancelled or the
// input closes.
func Serve(ctx context.Context, s *server.MCPServer, in io.Reader, out io.Writer) error {
	return server.NewStdioServer(s).Listen(ctx, in, out)
}
