package mcptools

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sandeepkv93/todod/internal/backend"
	"github.com/sandeepkv93/todod/internal/model"
)

type stubBackend struct {
	tasks []model.Task
}

func (s *stubBackend) FetchTasks(context.Context) ([]model.Task, error) { return s.tasks, nil }

func (s *stubBackend) CreateTask(context.Context, model.NewTask) (model.Task, error) {
	return model.Task{}, nil
}

func (s *stubBackend) UpdateTaskStatus(_ context.Context, id string, status model.Status) (model.Task, error) {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks[i].SetStatus(status)
			return s.tasks[i], nil
		}
	}
	return model.Task{}, backend.ErrNotFound
}

func (s *stubBackend) SetTaskCompleted(context.Context, string, bool) (model.Task, error) {
	return model.Task{}, nil
}

func (s *stubBackend) DeleteTask(context.Context, string) error { return nil }

func (s *stubBackend) FetchReminders(context.Context) ([]model.Reminder, error) { return nil, nil }

func (s *stubBackend) SetReminderRead(context.Context, string, bool) (model.Reminder, error) {
	return model.Reminder{}, nil
}

func (s *stubBackend) DeleteReminder(context.Context, string) error { return nil }

func date(s string) *model.Date {
	d, err := model.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return &d
}

func newStub() *stubBackend {
	done := model.Task{ID: "t2", Title: "Write report", DueDate: date("2025-11-12")}
	done.SetStatus(model.StatusComplete)
	return &stubBackend{tasks: []model.Task{
		{ID: "t1", Title: "Pay rent", Status: model.StatusPending, DueDate: date("2025-11-12")},
		done,
		{ID: "t3", Title: "Plan trip", Status: model.StatusInProgress, DueDate: date("2025-11-13")},
		{ID: "t4", Title: "Book flights", Status: model.StatusPending, DueDate: date("2025-11-20")},
		{ID: "t5", Title: "Someday", Status: model.StatusPending},
	}}
}

func fixedClock() time.Time {
	return time.Date(2025, 11, 12, 8, 0, 0, 0, time.UTC)
}

func makeReq(args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func resultText(r *mcp.CallToolResult) string {
	if r == nil || len(r.Content) == 0 {
		return ""
	}
	for _, c := range r.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestDefinitions(t *testing.T) {
	b := newStub()
	cases := []struct {
		tool     mcp.Tool
		name     string
		required []string
	}{
		{NewSummaryTool(b).Definition(), "task_summary", nil},
		{NewWeekTool(b, fixedClock).Definition(), "task_week", nil},
		{NewBucketsTool(b, fixedClock).Definition(), "task_buckets", nil},
		{NewUpdateStatusTool(b).Definition(), "update_task_status", []string{"id", "status"}},
	}
	for _, tc := range cases {
		if tc.tool.Name != tc.name {
			t.Errorf("tool name = %q, want %q", tc.tool.Name, tc.name)
		}
		for _, r := range tc.required {
			found := false
			for _, got := range tc.tool.InputSchema.Required {
				if got == r {
					found = true
				}
			}
			if !found {
				t.Errorf("%s: %q should be required", tc.name, r)
			}
		}
	}
}

func TestSummaryTool(t *testing.T) {
	tool := NewSummaryTool(newStub())
	res, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{"filter": "pending"}))
	if err != nil || res.IsError {
		t.Fatalf("unexpected error: %v %s", err, resultText(res))
	}
	text := resultText(res)
	for _, want := range []string{"**Total**: 5", "**Completed**: 1 (20%)", "Pending tasks (3)", "Pay rent", "Someday"} {
		if !strings.Contains(text, want) {
			t.Errorf("expected %q in %q", want, text)
		}
	}
	if strings.Contains(text, "Plan trip") {
		t.Errorf("in-progress task leaked into pending list: %q", text)
	}

	res, _ = tool.Handle(context.Background(), makeReq(map[string]interface{}{"filter": "blocked"}))
	if !res.IsError {
		t.Fatal("expected error result for unknown filter")
	}
}

func TestWeekTool(t *testing.T) {
	tool := NewWeekTool(newStub(), fixedClock)
	res, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{}))
	if err != nil || res.IsError {
		t.Fatalf("unexpected error: %v %s", err, resultText(res))
	}
	text := resultText(res)
	for _, want := range []string{"Week of 2025-11-09", "Wed 2025-11-12: 2 task(s) (today) (selected)", "Thu 2025-11-13: 1 task(s)", "2025-11-12: 50% done"} {
		if !strings.Contains(text, want) {
			t.Errorf("expected %q in %q", want, text)
		}
	}

	res, _ = tool.Handle(context.Background(), makeReq(map[string]interface{}{"date": "2025-11-20"}))
	if text := resultText(res); !strings.Contains(text, "Week of 2025-11-16") || !strings.Contains(text, "Book flights") {
		t.Errorf("unexpected shifted week %q", text)
	}

	res, _ = tool.Handle(context.Background(), makeReq(map[string]interface{}{"date": "next week"}))
	if !res.IsError {
		t.Fatal("expected error result for bad date")
	}
}

func TestBucketsTool(t *testing.T) {
	tool := NewBucketsTool(newStub(), fixedClock)
	res, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{}))
	if err != nil || res.IsError {
		t.Fatalf("unexpected error: %v %s", err, resultText(res))
	}
	text := resultText(res)
	today := strings.Index(text, "### Today")
	tomorrow := strings.Index(text, "### Tomorrow")
	upcoming := strings.Index(text, "### Upcoming")
	if today < 0 || tomorrow < today || upcoming < tomorrow {
		t.Fatalf("expected ordered buckets, got %q", text)
	}
	if strings.Contains(text, "Someday") {
		t.Errorf("undated task must not be bucketed: %q", text)
	}
}

func TestUpdateStatusTool(t *testing.T) {
	b := newStub()
	tool := NewUpdateStatusTool(b)
	res, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{"id": "t1", "status": "done"}))
	if err != nil || res.IsError {
		t.Fatalf("unexpected error: %v %s", err, resultText(res))
	}
	if !b.tasks[0].Completed || b.tasks[0].Status != model.StatusComplete {
		t.Fatalf("expected t1 complete, got %#v", b.tasks[0])
	}

	res, _ = tool.Handle(context.Background(), makeReq(map[string]interface{}{"id": "missing", "status": "pending"}))
	if !res.IsError || !strings.Contains(resultText(res), "not found") {
		t.Fatalf("expected not found, got %q", resultText(res))
	}
	res, _ = tool.Handle(context.Background(), makeReq(map[string]interface{}{"id": "t1", "status": "blocked"}))
	if !res.IsError {
		t.Fatal("expected error for invalid status")
	}
}

func TestNewServer(t *testing.T) {
	if s := NewServer("test", newStub(), fixedClock); s == nil {
		t.Fatal("expected server")
	}
}
