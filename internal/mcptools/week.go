package mcptools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sandeepkv93/todod/internal/backend"
	"github.com/sandeepkv93/todod/internal/taskview"
)

// WeekTool handles task_week.
type WeekTool struct {
	backend backend.Backend
	now     Clock
}

func NewWeekTool(b backend.Backend, now Clock) *WeekTool {
	return &WeekTool{backend: b, now: now}
}

func (t *WeekTool) Definition() mcp.Tool {
	return mcp.NewTool("task_week",
		mcp.WithDescription("Lay out the Sunday to Saturday week containing a date with per-day task counts, and the tasks due on that date."),
		mcp.WithString("date",
			mcp.Description("Selected day, YYYY-MM-DD. Defaults to today."),
		),
		mcp.WithString("today",
			mcp.Description("Override for today's date, YYYY-MM-DD."),
		),
	)
}

func (t *WeekTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ref, err := dateArg(req, "today", today(t.now))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	selected, err := dateArg(req, "date", ref)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	tasks, err := t.backend.FetchTasks(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to fetch tasks: %v", err)), nil
	}
	week := taskview.WeekOf(tasks, ref, selected)
	day := taskview.Day(tasks, selected)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## Week of %s\n\n", week.Start))
	for _, d := range week.Days {
		marks := ""
		if d.IsToday {
			marks += " (today)"
		}
		if d.IsSelected {
			marks += " (selected)"
		}
		sb.WriteString(fmt.Sprintf("- %s %s: %d task(s)%s\n", d.Date.Weekday().String()[:3], d.Date, d.TaskCount, marks))
	}
	sb.WriteString(fmt.Sprintf("\n### %s: %d%% done\n\n", day.Date, day.CompletionPercentage))
	writeTaskLines(&sb, day.Tasks)
	return mcp.NewToolResultText(sb.String()), nil
}
