// Package taskview derives what the task screens show from a task snapshot.
// Everything here is a pure function of its inputs; callers own the snapshot
// and the current filter and date selection.
package taskview

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sandeepkv93/todod/internal/model"
)

var ErrInvalidFilter = errors.New("taskview: invalid filter")

type Filter string

const (
	FilterAll        Filter = "all"
	FilterPending    Filter = "pending"
	FilterInProgress Filter = "in-progress"
	FilterComplete   Filter = "complete"
)

var Filters = []Filter{FilterAll, FilterPending, FilterInProgress, FilterComplete}

// ParseFilter accepts "all" plus any spelling model.ParseStatus accepts.
func ParseFilter(raw string) (Filter, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, string(FilterAll)) {
		return FilterAll, nil
	}
	status, err := model.ParseStatus(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidFilter, raw)
	}
	return Filter(status), nil
}

// Next cycles through Filters.
func (f Filter) Next() Filter {
	for i, item := range Filters {
		if item == f {
			return Filters[(i+1)%len(Filters)]
		}
	}
	return FilterAll
}

func (f Filter) Matches(t model.Task) bool {
	if f == FilterAll || f == "" {
		return true
	}
	return t.Status.Normalize() == model.Status(f)
}

type Counts struct {
	Total      int `json:"total"`
	Completed  int `json:"completed"`
	Pending    int `json:"pending"`
	InProgress int `json:"inProgress"`
	Complete   int `json:"complete"`
}

type Summary struct {
	Filter               Filter       `json:"filter"`
	Visible              []model.Task `json:"visible"`
	Counts               Counts       `json:"counts"`
	CompletionPercentage int          `json:"completionPercentage"`
}

// Summarize returns the tasks matching filter, in input order, with counts
// over the whole collection.
func Summarize(tasks []model.Task, filter Filter) Summary {
	out := Summary{
		Filter:  filter,
		Visible: make([]model.Task, 0, len(tasks)),
		Counts:  CountTasks(tasks),
	}
	for _, t := range tasks {
		if filter.Matches(t) {
			out.Visible = append(out.Visible, t)
		}
	}
	out.CompletionPercentage = CompletionPercentage(out.Counts.Completed, out.Counts.Total)
	return out
}

// CountTasks counts statuses after normalization. Completed counts the
// completed flag, which a foreign snapshot may carry out of step with status.
func CountTasks(tasks []model.Task) Counts {
	c := Counts{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			c.Completed++
		}
		switch t.Status.Normalize() {
		case model.StatusInProgress:
			c.InProgress++
		case model.StatusComplete:
			c.Complete++
		default:
			c.Pending++
		}
	}
	return c
}

// CompletionPercentage is round(100*done/total) with halves rounded up, and 0
// for an empty collection.
func CompletionPercentage(done, total int) int {
	if total <= 0 || done <= 0 {
		return 0
	}
	if done >= total {
		return 100
	}
	return (200*done + total) / (2 * total)
}

// ReplaceTask returns a copy of tasks with the element sharing updated.ID
// replaced. The second result is false when no element matched.
func ReplaceTask(tasks []model.Task, updated model.Task) ([]model.Task, bool) {
	out := make([]model.Task, len(tasks))
	copy(out, tasks)
	for i := range out {
		if out[i].ID == updated.ID {
			out[i] = updated
			return out, true
		}
	}
	return out, false
}

// RemoveTask returns a copy of tasks without the element with id.
func RemoveTask(tasks []model.Task, id string) ([]model.Task, bool) {
	out := make([]model.Task, 0, len(tasks))
	found := false
	for _, t := range tasks {
		if t.ID == id {
			found = true
			continue
		}
		out = append(out, t)
	}
	return out, found
}

func FindTask(tasks []model.Task, id string) (model.Task, bool) {
	for _, t := range tasks {
		if t.ID == id {
			return t, true
		}
	}
	return model.Task{}, false
}
