package scheduler

import (
	"time"

	"github.com/sandeepkv93/todod/internal/model"
)

// EventsFromReminders turns unread reminders due after now into events,
// reading each reminder's date and clock in loc. Reminders with a malformed
// clock are skipped.
func EventsFromReminders(reminders []model.Reminder, loc *time.Location, now time.Time) []ReminderEvent {
	out := make([]ReminderEvent, 0, len(reminders))
	for _, r := range reminders {
		if r.IsRead {
			continue
		}
		at, err := r.At(loc)
		if err != nil || !at.After(now) {
			continue
		}
		out = append(out, ReminderEvent{
			ReminderID: r.ID,
			TaskID:     r.TaskID,
			Title:      r.Title,
			Channel:    r.Type,
			DueAt:      at,
		})
	}
	return out
}
