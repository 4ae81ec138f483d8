package mcptools

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sandeepkv93/todod/internal/backend"
	"github.com/sandeepkv93/todod/internal/model"
)

// UpdateStatusTool handles update_task_status.
type UpdateStatusTool struct {
	backend backend.Backend
}

func NewUpdateStatusTool(b backend.Backend) *UpdateStatusTool {
	return &UpdateStatusTool{backend: b}
}

func (t *UpdateStatusTool) Definition() mcp.Tool {
	return mcp.NewTool("update_task_status",
		mcp.WithDescription("Set the status of one task. Setting complete also marks it completed."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Task ID"),
		),
		mcp.WithString("status",
			mcp.Required(),
			mcp.Description("New status"),
			mcp.Enum("pending", "in-progress", "complete"),
		),
	)
}

func (t *UpdateStatusTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("id", "")
	if id == "" {
		return mcp.NewToolResultError("id is required"), nil
	}
	status, err := model.ParseStatus(req.GetString("status", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	task, err := t.backend.UpdateTaskStatus(ctx, id, status)
	switch {
	case errors.Is(err, backend.ErrNotFound):
		return mcp.NewToolResultError(fmt.Sprintf("task %q not found", id)), nil
	case err != nil:
		return mcp.NewToolResultError(fmt.Sprintf("failed to update task: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Task %q is now %s.", task.Title, task.Status.Label())), nil
}
