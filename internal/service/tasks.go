// Package service implements backend.Backend on top of the storage
// repository for one signed-in user.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sandeepkv93/todod/internal/backend"
	"github.com/sandeepkv93/todod/internal/model"
	"github.com/sandeepkv93/todod/internal/storage"
)

// DefaultReminderClock is when the companion reminder of a task fires on its
// due date.
const DefaultReminderClock = "09:00"

type Tasks struct {
	repo   storage.Repository
	userID string

	Now           func() time.Time
	NewID         func() string
	ReminderClock string
}

var _ backend.Backend = (*Tasks)(nil)

func NewTasks(repo storage.Repository, userID string) *Tasks {
	return &Tasks{
		repo:          repo,
		userID:        userID,
		Now:           time.Now,
		NewID:         uuid.NewString,
		ReminderClock: DefaultReminderClock,
	}
}

func (s *Tasks) UserID() string {
	return s.userID
}

func (s *Tasks) FetchTasks(ctx context.Context) ([]model.Task, error) {
	rows, err := s.repo.ListTasks(ctx, storage.TaskListFilter{UserID: s.userID})
	if err != nil {
		return nil, fmt.Errorf("service: list tasks: %w", err)
	}
	out := make([]model.Task, 0, len(rows))
	for _, row := range rows {
		out = append(out, toModelTask(row))
	}
	return out, nil
}

// FetchTasksByStatus lists the user's tasks whose normalized status is
// status, so a stored value the views show as pending is listed as pending.
func (s *Tasks) FetchTasksByStatus(ctx context.Context, status model.Status) ([]model.Task, error) {
	tasks, err := s.FetchTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: list tasks by status: %w", err)
	}
	want := status.Normalize()
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Status.Normalize() == want {
			out = append(out, t)
		}
	}
	return out, nil
}

// CreateTask stores a new task. A task created with Reminder set and a due
// date also gets a notification reminder on that date.
func (s *Tasks) CreateTask(ctx context.Context, in model.NewTask) (model.Task, error) {
	if err := in.Validate(); err != nil {
		return model.Task{}, err
	}
	now := s.Now().UTC()
	task := model.Task{
		ID:          s.NewID(),
		UserID:      s.userID,
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		DueDate:     in.DueDate,
		Reminder:    in.Reminder,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	status := in.Status
	if status == "" {
		status = model.StatusPending
	}
	task.SetStatus(status)
	if err := task.Validate(); err != nil {
		return model.Task{}, err
	}
	var rem *model.Reminder
	if task.Reminder && task.DueDate != nil {
		rem = &model.Reminder{
			ID:          s.NewID(),
			UserID:      s.userID,
			TaskID:      task.ID,
			Title:       task.Title,
			Description: task.Description,
			Time:        s.ReminderClock,
			Date:        *task.DueDate,
			Type:        model.ReminderTypeNotification,
			CreatedAt:   now,
		}
		if err := rem.Validate(); err != nil {
			return model.Task{}, err
		}
	}
	err := s.repo.InTx(ctx, func(repo storage.Repository) error {
		if err := repo.CreateTask(ctx, fromModelTask(task)); err != nil {
			return fmt.Errorf("service: create task: %w", err)
		}
		if rem == nil {
			return nil
		}
		if err := repo.CreateReminder(ctx, fromModelReminder(*rem)); err != nil {
			return fmt.Errorf("service: create reminder: %w", err)
		}
		return nil
	})
	if err != nil {
		return model.Task{}, err
	}
	return task, nil
}

func (s *Tasks) UpdateTaskStatus(ctx context.Context, id string, status model.Status) (model.Task, error) {
	if !status.IsValid() {
		return model.Task{}, fmt.Errorf("%w: %q", model.ErrInvalidStatus, status)
	}
	return s.mutateTask(ctx, id, func(t *model.Task) { t.SetStatus(status) })
}

func (s *Tasks) SetTaskCompleted(ctx context.Context, id string, done bool) (model.Task, error) {
	return s.mutateTask(ctx, id, func(t *model.Task) { t.SetCompleted(done) })
}

func (s *Tasks) mutateTask(ctx context.Context, id string, apply func(*model.Task)) (model.Task, error) {
	row, err := s.ownedTask(ctx, id)
	if err != nil {
		return model.Task{}, err
	}
	task := toModelTask(row)
	apply(&task)
	task.UpdatedAt = s.Now().UTC()
	if err := s.repo.UpdateTask(ctx, fromModelTask(task)); err != nil {
		return model.Task{}, mapStorageErr("update task", id, err)
	}
	return task, nil
}

func (s *Tasks) DeleteTask(ctx context.Context, id string) error {
	if _, err := s.ownedTask(ctx, id); err != nil {
		return err
	}
	if err := s.repo.DeleteTask(ctx, id); err != nil {
		return mapStorageErr("delete task", id, err)
	}
	return nil
}

func (s *Tasks) FetchReminders(ctx context.Context) ([]model.Reminder, error) {
	rows, err := s.repo.ListReminders(ctx, storage.ReminderListFilter{UserID: s.userID})
	if err != nil {
		return nil, fmt.Errorf("service: list reminders: %w", err)
	}
	out := make([]model.Reminder, 0, len(rows))
	for _, row := range rows {
		rem, convErr := toModelReminder(row)
		if convErr != nil {
			return nil, convErr
		}
		out = append(out, rem)
	}
	return out, nil
}

func (s *Tasks) SetReminderRead(ctx context.Context, id string, read bool) (model.Reminder, error) {
	row, err := s.ownedReminder(ctx, id)
	if err != nil {
		return model.Reminder{}, err
	}
	row.IsRead = read
	if err := s.repo.UpdateReminder(ctx, row); err != nil {
		return model.Reminder{}, mapStorageErr("update reminder", id, err)
	}
	return toModelReminder(row)
}

func (s *Tasks) DeleteReminder(ctx context.Context, id string) error {
	if _, err := s.ownedReminder(ctx, id); err != nil {
		return err
	}
	if err := s.repo.DeleteReminder(ctx, id); err != nil {
		return mapStorageErr("delete reminder", id, err)
	}
	return nil
}

// ownedTask hides other users' tasks behind ErrNotFound.
func (s *Tasks) ownedTask(ctx context.Context, id string) (storage.Task, error) {
	row, err := s.repo.GetTask(ctx, id)
	if err != nil {
		return storage.Task{}, mapStorageErr("get task", id, err)
	}
	if row.UserID != s.userID {
		return storage.Task{}, fmt.Errorf("%w: task %q", backend.ErrNotFound, id)
	}
	return row, nil
}

func (s *Tasks) ownedReminder(ctx context.Context, id string) (storage.Reminder, error) {
	row, err := s.repo.GetReminder(ctx, id)
	if err != nil {
		return storage.Reminder{}, mapStorageErr("get reminder", id, err)
	}
	if row.UserID != s.userID {
		return storage.Reminder{}, fmt.Errorf("%w: reminder %q", backend.ErrNotFound, id)
	}
	return row, nil
}

func mapStorageErr(op, id string, err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("%w: %q", backend.ErrNotFound, id)
	}
	return fmt.Errorf("service: %s %q: %w", op, id, err)
}
