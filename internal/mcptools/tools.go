// Package mcptools exposes the task views as MCP tools so an agent can read
// summaries, weeks and day buckets and change a task's status.
//
// Each tool is a struct holding its dependencies, a Definition() returning
// the mcp.Tool schema and a Handle() serving calls.
package mcptools

import (
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sandeepkv93/todod/internal/backend"
	"github.com/sandeepkv93/todod/internal/model"
)

const instructions = `todod task tools. Dates are YYYY-MM-DD. Weeks run Sunday to Saturday.
Statuses are pending, in-progress and complete.`

// Clock supplies the current time for "today".
type Clock func() time.Time

// NewServer returns an MCP server with every task tool registered against b.
func NewServer(version string, b backend.Backend, now Clock) *server.MCPServer {
	s := server.NewMCPServer(
		"todod",
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(instructions),
	)
	Register(s, b, now)
	return s
}

func Register(s *server.MCPServer, b backend.Backend, now Clock) {
	summary := NewSummaryTool(b)
	s.AddTool(summary.Definition(), summary.Handle)

	week := NewWeekTool(b, now)
	s.AddTool(week.Definition(), week.Handle)

	buckets := NewBucketsTool(b, now)
	s.AddTool(buckets.Definition(), buckets.Handle)

	status := NewUpdateStatusTool(b)
	s.AddTool(status.Definition(), status.Handle)
}

// dateArg reads an optional YYYY-MM-DD argument, falling back to def.
func dateArg(req mcp.CallToolRequest, key string, def model.Date) (model.Date, error) {
	raw := strings.TrimSpace(req.GetString(key, ""))
	if raw == "" {
		return def, nil
	}
	return model.ParseDate(raw)
}

func today(now Clock) model.Date {
	if now == nil {
		now = time.Now
	}
	return model.DateOf(now())
}
