package mcptools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sandeepkv93/todod/internal/backend"
	"github.com/sandeepkv93/todod/internal/model"
	"github.com/sandeepkv93/todod/internal/taskview"
)

// SummaryTool handles task_summary.
type SummaryTool struct {
	backend backend.Backend
}

func NewSummaryTool(b backend.Backend) *SummaryTool {
	return &SummaryTool{backend: b}
}

func (t *SummaryTool) Definition() mcp.Tool {
	return mcp.NewTool("task_summary",
		mcp.WithDescription("Count tasks by status, report the completion percentage and list the tasks matching a status filter."),
		mcp.WithString("filter",
			mcp.Description("Status filter"),
			mcp.Enum("all", "pending", "in-progress", "complete"),
		),
	)
}

func (t *SummaryTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filter, err := taskview.ParseFilter(req.GetString("filter", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	tasks, err := t.backend.FetchTasks(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to fetch tasks: %v", err)), nil
	}
	s := taskview.Summarize(tasks, filter)

	var sb strings.Builder
	sb.WriteString("## Task Summary\n\n")
	sb.WriteString(fmt.Sprintf("- **Total**: %d\n", s.Counts.Total))
	sb.WriteString(fmt.Sprintf("- **Completed**: %d (%d%%)\n", s.Counts.Completed, s.CompletionPercentage))
	sb.WriteString(fmt.Sprintf("- **Pending**: %d\n", s.Counts.Pending))
	sb.WriteString(fmt.Sprintf("- **In Progress**: %d\n", s.Counts.InProgress))
	sb.WriteString(fmt.Sprintf("- **Complete**: %d\n", s.Counts.Complete))
	sb.WriteString(fmt.Sprintf("\n### %s (%d)\n\n", filterTitle(filter), len(s.Visible)))
	writeTaskLines(&sb, s.Visible)
	return mcp.NewToolResultText(sb.String()), nil
}

func filterTitle(f taskview.Filter) string {
	if f == taskview.FilterAll {
		return "All tasks"
	}
	return model.Status(f).Label() + " tasks"
}

func writeTaskLines(sb *strings.Builder, tasks []model.Task) {
	if len(tasks) == 0 {
		sb.WriteString("_none_\n")
		return
	}
	for _, task := range tasks {
		sb.WriteString(fmt.Sprintf("- [%s] %s `%s`", task.Status.Label(), task.Title, task.ID))
		if task.DueDate != nil {
			sb.WriteString(" due " + task.DueDate.String())
		}
		sb.WriteString("\n")
	}
}
