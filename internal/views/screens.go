package views

import (
	"fmt"
	"strings"

	"github.com/sandeepkv93/todod/internal/model"
	"github.com/sandeepkv93/todod/internal/taskview"
)

type FormField struct {
	Label   string
	View    string
	Focused bool
}

type FormData struct {
	Title    string
	Fields   []FormField
	Toggle   string
	ToggleOn bool
	Focused  bool
	Hint     string
}

type TaskListData struct {
	Summary      taskview.Summary
	Reference    model.Date
	Cursor       int
	ProgressView string
	Loading      string
}

type WeekData struct {
	Week         taskview.Week
	Day          taskview.DayView
	Groups       []taskview.TaskGroup
	Cursor       int
	ProgressView string
	Loading      string
}

type ReminderPanelData struct {
	Summary taskview.ReminderSummary
	Cursor  int
	Loading string
}

type TaskDetailData struct {
	Task            model.Task
	Reference       model.Date
	DescriptionView string
}

type HelpPanelData struct {
	CurrentView string
	Bindings    []string
	HelpView    string
}

func RenderForm(data FormData) string {
	var b strings.Builder
	b.WriteString(strings.ToLower(data.Title) + ":\n")
	for _, f := range data.Fields {
		cursor := " "
		if f.Focused {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s %-10s %s\n", cursor, f.Label+":", f.View))
	}
	if data.Toggle != "" {
		cursor := " "
		if data.Focused {
			cursor = ">"
		}
		box := "[ ]"
		if data.ToggleOn {
			box = "[x]"
		}
		b.WriteString(fmt.Sprintf("%s %s %s\n", cursor, box, data.Toggle))
	}
	if data.Hint != "" {
		b.WriteString("\n" + mutedStyle.Render(data.Hint))
	}
	return strings.TrimSpace(b.String())
}

func RenderTaskList(data TaskListData) string {
	s := data.Summary
	var b strings.Builder
	b.WriteString("tasks:\n")
	b.WriteString(renderFilterTabs(s.Filter) + "\n")
	b.WriteString(fmt.Sprintf("total %d | pending %d | in progress %d | complete %d\n",
		s.Counts.Total, s.Counts.Pending, s.Counts.InProgress, s.Counts.Complete))
	b.WriteString(fmt.Sprintf("progress: %s %d%% (%d/%d)\n", data.ProgressView, s.CompletionPercentage, s.Counts.Completed, s.Counts.Total))
	if data.Loading != "" {
		b.WriteString(data.Loading + "\n")
	}
	if len(s.Visible) == 0 {
		b.WriteString("\n(no tasks)")
		return b.String()
	}
	b.WriteString("\n")
	for i, t := range s.Visible {
		b.WriteString(renderTaskRow(t, data.Reference, i == data.Cursor) + "\n")
	}
	return strings.TrimSpace(b.String())
}

func renderFilterTabs(active taskview.Filter) string {
	tabs := make([]string, 0, len(taskview.Filters))
	for _, f := range taskview.Filters {
		label := string(f)
		if f == active {
			label = cursorStyle.Render("<" + label + ">")
		}
		tabs = append(tabs, label)
	}
	return "filter: " + strings.Join(tabs, " ")
}

func renderTaskRow(t model.Task, reference model.Date, selected bool) string {
	cursor := " "
	if selected {
		cursor = ">"
	}
	row := fmt.Sprintf("%s %s %s", cursor, StatusBadge(t.Status), t.Title)
	if t.DueDate != nil {
		row += mutedStyle.Render(" " + dueLabel(*t.DueDate, reference))
	}
	if t.Reminder {
		row += " (!)"
	}
	if selected {
		return cursorStyle.Render(row)
	}
	return row
}

func dueLabel(d, reference model.Date) string {
	switch taskview.BucketFor(d, reference) {
	case taskview.BucketToday:
		return "due:today"
	case taskview.BucketTomorrow:
		return "due:tomorrow"
	default:
		return "due:" + d.String()
	}
}

func RenderWeek(data WeekData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("week of %s:\n", data.Week.Start))
	cells := make([]string, 0, len(data.Week.Days))
	for _, d := range data.Week.Days {
		cell := fmt.Sprintf("%s %02d", d.Date.Weekday().String()[:3], d.Date.Day)
		if d.TaskCount > 0 {
			cell += fmt.Sprintf("·%d", d.TaskCount)
		}
		switch {
		case d.IsSelected:
			cell = cursorStyle.Render("[" + cell + "]")
		case d.IsToday:
			cell = inProgressStyle.Render(" " + cell + " ")
		default:
			cell = " " + cell + " "
		}
		cells = append(cells, cell)
	}
	b.WriteString(strings.Join(cells, "") + "\n")
	if data.Loading != "" {
		b.WriteString(data.Loading + "\n")
	}

	day := data.Day
	b.WriteString(fmt.Sprintf("\n%s %s: %d task(s), %d%% done %s\n",
		day.Date.Weekday(), day.Date, len(day.Tasks), day.CompletionPercentage, data.ProgressView))
	if len(day.Tasks) == 0 {
		b.WriteString("  (nothing due)\n")
	}
	for i, t := range day.Tasks {
		b.WriteString(renderTaskRow(t, day.Date, i == data.Cursor) + "\n")
	}

	for _, g := range data.Groups {
		b.WriteString(fmt.Sprintf("\n%s:\n", g.Bucket))
		for _, t := range g.Tasks {
			line := fmt.Sprintf("  %s %s", StatusBadge(t.Status), t.Title)
			if g.Bucket == taskview.BucketUpcoming && t.DueDate != nil {
				line += mutedStyle.Render(" " + t.DueDate.String())
			}
			b.WriteString(line + "\n")
		}
	}
	return strings.TrimSpace(b.String())
}

func RenderReminders(data ReminderPanelData) string {
	s := data.Summary
	var b strings.Builder
	b.WriteString("reminders:\n")
	b.WriteString(fmt.Sprintf("type: %s | total %d | unread %d\n", s.Filter, s.Total, s.Unread))
	if data.Loading != "" {
		b.WriteString(data.Loading + "\n")
	}
	if len(s.Visible) == 0 {
		b.WriteString("\n(no reminders)")
		return b.String()
	}
	i := 0
	for _, g := range s.Groups {
		b.WriteString(fmt.Sprintf("\n%s:\n", g.Bucket))
		for _, r := range g.Reminders {
			cursor := " "
			if i == data.Cursor {
				cursor = ">"
			}
			mark := "*"
			if r.IsRead {
				mark = " "
			}
			line := fmt.Sprintf("%s %s %s %s [%s]", cursor, mark, r.DisplayTime(), r.Title, r.Type.Label())
			if g.Bucket == taskview.BucketUpcoming {
				line += mutedStyle.Render(" " + r.Date.String())
			}
			if r.IsRead {
				line = mutedStyle.Render(line)
			}
			b.WriteString(line + "\n")
			i++
		}
	}
	return strings.TrimSpace(b.String())
}

func RenderTaskDetail(data TaskDetailData) string {
	t := data.Task
	if t.ID == "" {
		return "details:\n(no selection)"
	}
	var b strings.Builder
	b.WriteString("details:\n")
	b.WriteString(fmt.Sprintf("title: %s\n", t.Title))
	b.WriteString(fmt.Sprintf("status: %s\n", StatusBadge(t.Status)))
	if t.DueDate != nil {
		b.WriteString(fmt.Sprintf("due: %s (%s)\n", t.DueDate, taskview.BucketFor(*t.DueDate, data.Reference)))
	} else {
		b.WriteString("due: -\n")
	}
	if t.Reminder {
		b.WriteString("reminder: on\n")
	}
	if data.DescriptionView != "" {
		b.WriteString("\n" + data.DescriptionView)
	}
	return strings.TrimSpace(b.String())
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderNotification(level string, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("notification: [%s] %s", strings.ToUpper(level), body)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help:\n%s view:\n%s\n%s",
		strings.ToLower(data.CurrentView),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}
