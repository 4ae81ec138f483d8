package mcptools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sandeepkv93/todod/internal/backend"
	"github.com/sandeepkv93/todod/internal/taskview"
)

// BucketsTool handles task_buckets.
type BucketsTool struct {
	backend backend.Backend
	now     Clock
}

func NewBucketsTool(b backend.Backend, now Clock) *BucketsTool {
	return &BucketsTool{backend: b, now: now}
}

func (t *BucketsTool) Definition() mcp.Tool {
	return mcp.NewTool("task_buckets",
		mcp.WithDescription("Group dated tasks into Today, Tomorrow and Upcoming. Tasks without a due date are left out."),
		mcp.WithString("today",
			mcp.Description("Override for today's date, YYYY-MM-DD."),
		),
	)
}

func (t *BucketsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ref, err := dateArg(req, "today", today(t.now))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	tasks, err := t.backend.FetchTasks(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to fetch tasks: %v", err)), nil
	}
	groups := taskview.GroupByDay(tasks, ref)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## Tasks by day (today is %s)\n", ref))
	if len(groups) == 0 {
		sb.WriteString("\n_no dated tasks_\n")
	}
	for _, g := range groups {
		sb.WriteString(fmt.Sprintf("\n### %s\n\n", g.Bucket))
		writeTaskLines(&sb, g.Tasks)
	}
	return mcp.NewToolResultText(sb.String()), nil
}
