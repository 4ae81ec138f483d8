package taskview

import (
	"time"

	"github.com/sandeepkv93/todod/internal/model"
)

const DaysPerWeek = 7

type WeekDay struct {
	Date       model.Date `json:"date"`
	IsToday    bool       `json:"isToday"`
	IsSelected bool       `json:"isSelected"`
	TaskCount  int        `json:"taskCount"`
}

type Week struct {
	Start model.Date           `json:"start"`
	Days  [DaysPerWeek]WeekDay `json:"days"`
}

// StartOfWeek returns the Sunday on or before d.
func StartOfWeek(d model.Date) model.Date {
	return d.AddDays(-int(d.Weekday() - time.Sunday))
}

// WeekOf lays out the Sunday to Saturday week containing selected. A cell is
// today when it equals reference, independent of selection.
func WeekOf(tasks []model.Task, reference, selected model.Date) Week {
	w := Week{Start: StartOfWeek(selected)}
	for i := range w.Days {
		day := w.Start.AddDays(i)
		w.Days[i] = WeekDay{
			Date:       day,
			IsToday:    day == reference,
			IsSelected: day == selected,
			TaskCount:  countDueOn(tasks, day),
		}
	}
	return w
}

// ShiftWeek moves selected by whole weeks.
func ShiftWeek(selected model.Date, weeks int) model.Date {
	return selected.AddDays(DaysPerWeek * weeks)
}

func (w Week) Contains(d model.Date) bool {
	return !d.Before(w.Start) && d.Before(w.Start.AddDays(DaysPerWeek))
}

// TasksOn returns the tasks due on day in input order.
func TasksOn(tasks []model.Task, day model.Date) []model.Task {
	out := make([]model.Task, 0)
	for _, t := range tasks {
		if t.DueOn(day) {
			out = append(out, t)
		}
	}
	return out
}

type DayView struct {
	Date                 model.Date   `json:"date"`
	Tasks                []model.Task `json:"tasks"`
	Completed            int          `json:"completed"`
	CompletionPercentage int          `json:"completionPercentage"`
}

// Day summarizes the tasks due on selected.
func Day(tasks []model.Task, selected model.Date) DayView {
	v := DayView{Date: selected, Tasks: TasksOn(tasks, selected)}
	for _, t := range v.Tasks {
		if t.Completed {
			v.Completed++
		}
	}
	v.CompletionPercentage = CompletionPercentage(v.Completed, len(v.Tasks))
	return v
}

func countDueOn(tasks []model.Task, day model.Date) int {
	n := 0
	for _, t := range tasks {
		if t.DueOn(day) {
			n++
		}
	}
	return n
}
