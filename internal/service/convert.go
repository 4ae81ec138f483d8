package service

import (
	"fmt"

	"github.com/sandeepkv93/todod/internal/model"
	"github.com/sandeepkv93/todod/internal/storage"
)

// toModelTask keeps the stored status verbatim so unknown values reach the
// views, which show them as pending. Completed is derived from status.
func toModelTask(in storage.Task) model.Task {
	out := model.Task{
		ID:          in.ID,
		UserID:      in.UserID,
		Title:       in.Title,
		Description: in.Description,
		Status:      model.Status(in.Status),
		Completed:   model.Status(in.Status).Normalize() == model.StatusComplete,
		Reminder:    in.Reminder,
		CreatedAt:   in.CreatedAt,
		UpdatedAt:   in.UpdatedAt,
	}
	if in.DueDate != "" {
		if d, err := model.ParseDate(in.DueDate); err == nil {
			out.DueDate = &d
		}
	}
	return out
}

func fromModelTask(in model.Task) storage.Task {
	out := storage.Task{
		ID:          in.ID,
		UserID:      in.UserID,
		Title:       in.Title,
		Description: in.Description,
		Status:      string(in.Status),
		Reminder:    in.Reminder,
		CreatedAt:   in.CreatedAt,
		UpdatedAt:   in.UpdatedAt,
	}
	if in.DueDate != nil {
		out.DueDate = in.DueDate.String()
	}
	return out
}

func toModelReminder(in storage.Reminder) (model.Reminder, error) {
	date, err := model.ParseDate(in.Date)
	if err != nil {
		return model.Reminder{}, fmt.Errorf("service: reminder %q: %w", in.ID, err)
	}
	return model.Reminder{
		ID:          in.ID,
		UserID:      in.UserID,
		TaskID:      in.TaskID,
		Title:       in.Title,
		Description: in.Description,
		Time:        in.Clock,
		Date:        date,
		Type:        model.ReminderType(in.Type),
		IsRead:      in.IsRead,
		CreatedAt:   in.CreatedAt,
	}, nil
}

func fromModelReminder(in model.Reminder) storage.Reminder {
	return storage.Reminder{
		ID:          in.ID,
		UserID:      in.UserID,
		TaskID:      in.TaskID,
		Title:       in.Title,
		Description: in.Description,
		Clock:       in.Time,
		Date:        in.Date.String(),
		Type:        string(in.Type),
		IsRead:      in.IsRead,
		CreatedAt:   in.CreatedAt,
	}
}
