// Package cli wires the tael command tree: the viewer, the static list,
// the hook-facing add/remove/clear commands, the MCP server and a few
// diagnostics.
package cli
