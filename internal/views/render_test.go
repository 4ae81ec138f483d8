package views

import (
	"strings"
	"testing"
	"time"

	"github.com/sandeepkv93/todod/internal/model"
	"github.com/sandeepkv93/todod/internal/taskview"
)

func TestStatusBadgeShowsUnknownAsPending(t *testing.T) {
	if got := StatusBadge(model.Status("archived")); !strings.Contains(got, "[Pending]") {
		t.Fatalf("expected pending label, got %q", got)
	}
	if got := StatusBadge(model.StatusInProgress); !strings.Contains(got, "[In Progress]") {
		t.Fatalf("expected in progress label, got %q", got)
	}
}

func TestProgressBarClamps(t *testing.T) {
	cases := map[int]string{
		-5:  "[----]",
		50:  "[##--]",
		100: "[####]",
		250: "[####]",
	}
	for pct, want := range cases {
		if got := ProgressBar(pct, 4); got != want {
			t.Fatalf("ProgressBar(%d) = %q, want %q", pct, got, want)
		}
	}
}

func TestRenderTaskListMarksCursorAndDue(t *testing.T) {
	ref := model.NewDate(2025, time.November, 12)
	tomorrow := ref.AddDays(1)
	tasks := []model.Task{
		{ID: "1", Title: "Pay rent", Status: model.StatusPending, DueDate: &ref},
		{ID: "2", Title: "Plan trip", Status: model.StatusInProgress, DueDate: &tomorrow},
	}
	out := RenderTaskList(TaskListData{
		Summary:   taskview.Summarize(tasks, taskview.FilterAll),
		Reference: ref,
		Cursor:    1,
	})
	for _, want := range []string{"> [In Progress] Plan trip", "due:tomorrow", "due:today", "total 2"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in %q", want, out)
		}
	}

	empty := RenderTaskList(TaskListData{Summary: taskview.Summarize(nil, taskview.FilterComplete)})
	if !strings.Contains(empty, "(no tasks)") || !strings.Contains(empty, "0%") {
		t.Fatalf("unexpected empty render %q", empty)
	}
}

func TestRenderRemindersGroupsByDay(t *testing.T) {
	ref := model.NewDate(2025, time.November, 12)
	reminders := []model.Reminder{
		{ID: "a", Title: "Standup", Time: "09:30", Date: ref, Type: model.ReminderTypeNotification},
		{ID: "b", Title: "Invoice", Time: "17:00", Date: ref.AddDays(5), Type: model.ReminderTypeEmail, IsRead: true},
	}
	out := RenderReminders(ReminderPanelData{Summary: taskview.SummarizeReminders(reminders, taskview.ReminderFilterAll, ref)})
	for _, want := range []string{"unread 1", "Today:", "Upcoming:", "Standup", "2025-11-17"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in %q", want, out)
		}
	}
}

func TestRenderFormShowsToggle(t *testing.T) {
	out := RenderForm(FormData{
		Title:    "Sign in",
		Fields:   []FormField{{Label: "email", View: "ada@example.com", Focused: true}},
		Toggle:   "remember me",
		ToggleOn: true,
	})
	if !strings.Contains(out, "> email:") || !strings.Contains(out, "[x] remember me") {
		t.Fatalf("unexpected form %q", out)
	}
}

func TestMarkdownRendererReused(t *testing.T) {
	r := NewMarkdownRenderer(40)
	if r.term == nil {
		t.Fatal("expected a glamour renderer")
	}
	first := r.Render("**Pay** the rent")
	second := r.Render("- call the bank")
	if !strings.Contains(first, "Pay") || !strings.Contains(second, "call the bank") {
		t.Fatalf("unexpected output %q / %q", first, second)
	}
	if r.Render("   ") != "" {
		t.Fatal("blank description should render empty")
	}

	var missing *MarkdownRenderer
	if got := missing.Render("plain"); got != "plain" {
		t.Fatalf("nil renderer should pass text through, got %q", got)
	}
}
