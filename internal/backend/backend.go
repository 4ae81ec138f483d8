// Package backend defines the task store contract the task screens consume.
// service.Tasks implements it against the local database and client.Client
// against the HTTP API.
package backend

import (
	"context"
	"errors"
	"fmt"

	"github.com/sandeepkv93/todod/internal/model"
)

var (
	ErrNotFound     = errors.New("backend: not found")
	ErrUnauthorized = errors.New("backend: unauthorized")
)

// NetworkError reports that the store could not be reached or failed to
// answer. The last snapshot a view holds stays valid.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("backend: %s: network error: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

func IsNetwork(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}

type Backend interface {
	FetchTasks(ctx context.Context) ([]model.Task, error)
	CreateTask(ctx context.Context, in model.NewTask) (model.Task, error)
	UpdateTaskStatus(ctx context.Context, id string, status model.Status) (model.Task, error)
	SetTaskCompleted(ctx context.Context, id string, done bool) (model.Task, error)
	DeleteTask(ctx context.Context, id string) error

	FetchReminders(ctx context.Context) ([]model.Reminder, error)
	SetReminderRead(ctx context.Context, id string, read bool) (model.Reminder, error)
	DeleteReminder(ctx context.Context, id string) error
}
