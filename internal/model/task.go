package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidStatus = errors.New("model: invalid task status")
	ErrTitleRequired = errors.New("model: task title is required")
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusComplete   Status = "complete"
)

// Statuses lists every status in display order.
var Statuses = []Status{StatusPending, StatusInProgress, StatusComplete}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusComplete:
		return true
	default:
		return false
	}
}

// ParseStatus accepts the canonical values and the spellings other clients
// send ("completed", "in_progress", "done").
func ParseStatus(raw string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "pending", "todo":
		return StatusPending, nil
	case "in-progress", "in_progress", "inprogress", "in progress":
		return StatusInProgress, nil
	case "complete", "completed", "done":
		return StatusComplete, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}
}

// Normalize maps any value to a valid status. Unknown values read as pending.
func (s Status) Normalize() Status {
	parsed, err := ParseStatus(string(s))
	if err != nil {
		return StatusPending
	}
	return parsed
}

func (s Status) Label() string {
	switch s.Normalize() {
	case StatusInProgress:
		return "In Progress"
	case StatusComplete:
		return "Complete"
	default:
		return "Pending"
	}
}

type Task struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Status      Status    `json:"status"`
	Completed   bool      `json:"completed"`
	DueDate     *Date     `json:"dueDate,omitempty"`
	Reminder    bool      `json:"reminder"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// SetStatus moves the task to s and keeps the completed flag derived from it.
func (t *Task) SetStatus(s Status) {
	t.Status = s.Normalize()
	t.Completed = t.Status == StatusComplete
}

// SetCompleted toggles completion through the status field. Reopening a task
// returns it to pending.
func (t *Task) SetCompleted(done bool) {
	if done {
		t.SetStatus(StatusComplete)
		return
	}
	t.SetStatus(StatusPending)
}

// DueOn reports whether the task is due on day d. Tasks without a due date
// are due on no day.
func (t Task) DueOn(d Date) bool {
	return t.DueDate != nil && *t.DueDate == d
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: task id is required")
	}
	if strings.TrimSpace(t.Title) == "" {
		return ErrTitleRequired
	}
	if !t.Status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, t.Status)
	}
	if t.CreatedAt.IsZero() {
		return errors.New("model: task created_at is required")
	}
	if t.Completed != (t.Status == StatusComplete) {
		return errors.New("model: completed flag must match complete status")
	}
	return nil
}

// NewTask is the input of the create form.
type NewTask struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	DueDate     *Date  `json:"dueDate,omitempty"`
	Reminder    bool   `json:"reminder"`
	Status      Status `json:"status,omitempty"`
}

func (n NewTask) Validate() error {
	if strings.TrimSpace(n.Title) == "" {
		return ErrTitleRequired
	}
	if n.Status != "" && !n.Status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, n.Status)
	}
	return nil
}
