package mcpserver

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/five82/tael/internal/inbox"
	"github.com/five82/tael/internal/state"
)

// paneArg extracts a pane id. JSON numbers arrive as float64; numeric
// strings are accepted too.
func paneArg(req mcp.CallToolRequest) (uint32, error) {
	switch v := req.GetArguments()["pane"].(type) {
	case float64:
		if v < 0 || v > math.MaxUint32 || v != math.Trunc(v) {
			return 0, fmt.Errorf("'pane' must be a non-negative integer, got %v", v)
		}
		return uint32(v), nil
	case string:
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return 0, fmt.Errorf("'pane' must be a non-negative integer, got %q", v)
		}
		return uint32(id), nil
	case nil:
		return 0, fmt.Errorf("'pane' is required")
	default:
		return 0, fmt.Errorf("'pane' must be a number")
	}
}

func orDiscard(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return logger
}

// ─── AddTool ────────────────────────────────────────────────────────────────

// AddTool handles the inbox_add MCP tool.
type AddTool struct {
	store  *state.Store
	logger *slog.Logger
}

// NewAddTool creates an AddTool.
func NewAddTool(store *state.Store, logger *slog.Logger) *AddTool {
	return &AddTool{store: store, logger: orDiscard(logger)}
}

// Definition returns the MCP tool definition for inbox_add.
func (t *AddTool) Definition() mcp.Tool {
	return mcp.NewTool("inbox_add",
		mcp.WithDescription(
			"Add or replace the inbox entry for a terminal pane. One entry exists per pane; "+
				"calling again for the same pane overwrites it.",
		),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Short message shown to the user (e.g. 'claude-code: Auth question')"),
		),
		mcp.WithNumber("pane",
			mcp.Required(),
			mcp.Description("Terminal pane id, as in $ZELLIJ_PANE_ID"),
		),
		mcp.WithString("project",
			mcp.Description("Project name used for grouping"),
		),
		mcp.WithString("branch",
			mcp.Description("Git branch shown next to the project"),
		),
		mcp.WithString("status",
			mcp.Description("'wait' when blocked on the user (default), 'work' while running"),
		),
	)
}

// Handle processes the inbox_add tool call.
func (t *AddTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text := strings.TrimSpace(req.GetString("text", ""))
	if text == "" {
		return mcp.NewToolResultError("'text' is required"), nil
	}
	pane, err := paneArg(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	status, err := inbox.ParseStatus(req.GetString("status", "wait"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	item := inbox.NewItem(status,
		inbox.KeyMsg, text,
		inbox.KeyPane, strconv.FormatUint(uint64(pane), 10),
		inbox.KeyProj, strings.TrimSpace(req.GetString("project", "")),
		inbox.KeyBranch, strings.TrimSpace(req.GetString("branch", "")),
	)
	if err := item.Validate(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if _, err := t.store.Update(func(in *inbox.Inbox) bool {
		in.Upsert(item)
		return true
	}); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to add item: %v", err)), nil
	}

	t.logger.Info("mcp inbox_add", "pane", pane, "status", status)
	return mcp.NewToolResultText(fmt.Sprintf("Added item for pane %d", pane)), nil
}

// ─── RemoveTool ─────────────────────────────────────────────────────────────

// RemoveTool handles the inbox_remove MCP tool.
type RemoveTool struct {
	store  *state.Store
	logger *slog.Logger
}

// NewRemoveTool creates a RemoveTool.
func NewRemoveTool(store *state.Store, logger *slog.Logger) *RemoveTool {
	return &RemoveTool{store: store, logger: orDiscard(logger)}
}

// Definition returns the MCP tool definition for inbox_remove.
func (t *RemoveTool) Definition() mcp.Tool {
	return mcp.NewTool("inbox_remove",
		mcp.WithDescription("Remove the inbox entry for a terminal pane, typically once the user has responded."),
		mcp.WithNumber("pane",
			mcp.Required(),
			mcp.Description("Terminal pane id whose entry should be removed"),
		),
	)
}

// Handle processes the inbox_remove tool call.
func (t *RemoveTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pane, err := paneArg(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	removed := false
	if _, err := t.store.Update(func(in *inbox.Inbox) bool {
		removed = in.Remove(pane)
		return removed
	}); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to remove item: %v", err)), nil
	}

	t.logger.Info("mcp inbox_remove", "pane", pane, "removed", removed)
	if !removed {
		return mcp.NewToolResultText(fmt.Sprintf("No item found for pane %d", pane)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Removed item for pane %d", pane)), nil
}

// ─── ListTool ───────────────────────────────────────────────────────────────

// ListTool handles the inbox_list MCP tool.
type ListTool struct {
	store *state.Store
}

// NewListTool creates a ListTool.
func NewListTool(store *state.Store) *ListTool {
	return &ListTool{store: store}
}

// Definition returns the MCP tool definition for inbox_list.
func (t *ListTool) Definition() mcp.Tool {
	return mcp.NewTool("inbox_list",
		mcp.WithDescription("Show the current inbox document, grouped into waiting and background sections."),
	)
}

// Handle processes the inbox_list tool call.
func (t *ListTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	in, err := t.store.Load()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load inbox: %v", err)), nil
	}
	if in.IsEmpty() {
		return mcp.NewToolResultText("Inbox is empty"), nil
	}
	return mcp.NewToolResultText(inbox.Render(in)), nil
}

// ─── ClearTool ──────────────────────────────────────────────────────────────

// ClearTool handles the inbox_clear MCP tool.
type ClearTool struct {
	store  *state.Store
	logger *slog.Logger
}

// NewClearTool creates a ClearTool.
func NewClearTool(store *state.Store, logger *slog.Logger) *ClearTool {
	return &ClearTool{store: store, logger: orDiscard(logger)}
}

// Definition returns the MCP tool definition for inbox_clear.
func (t *ClearTool) Definition() mcp.Tool {
	return mcp.NewTool("inbox_clear",
		mcp.WithDescription("Remove every inbox entry. Only use this when the user asks for it."),
	)
}

// Handle processes the inbox_clear tool call.
func (t *ClearTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if _, err := t.store.Update(func(in *inbox.Inbox) bool {
		in.Items = nil
		return true
	}); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to clear inbox: %v", err)), nil
	}
	t.logger.Info("mcp inbox_clear")
	return mcp.NewToolResultText("Cleared inbox"), nil
}
