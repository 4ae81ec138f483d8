package taskview

import (
	"fmt"
	"strings"

	"github.com/sandeepkv93/todod/internal/model"
)

// ReminderFilter is "all" or one reminder type.
type ReminderFilter string

const ReminderFilterAll ReminderFilter = "all"

func ParseReminderFilter(raw string) (ReminderFilter, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" || raw == string(ReminderFilterAll) {
		return ReminderFilterAll, nil
	}
	if !model.ReminderType(raw).IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidFilter, raw)
	}
	return ReminderFilter(raw), nil
}

func (f ReminderFilter) Next() ReminderFilter {
	order := []ReminderFilter{ReminderFilterAll}
	for _, t := range model.ReminderTypes {
		order = append(order, ReminderFilter(t))
	}
	for i, item := range order {
		if item == f {
			return order[(i+1)%len(order)]
		}
	}
	return ReminderFilterAll
}

type ReminderSummary struct {
	Filter  ReminderFilter   `json:"filter"`
	Visible []model.Reminder `json:"visible"`
	Total   int              `json:"total"`
	Unread  int              `json:"unread"`
	Groups  []ReminderGroup  `json:"groups"`
}

type ReminderGroup struct {
	Bucket    Bucket           `json:"bucket"`
	Reminders []model.Reminder `json:"reminders"`
}

// SummarizeReminders filters by type and groups the visible reminders by
// day relative to reference. Total and Unread cover the whole collection.
func SummarizeReminders(reminders []model.Reminder, filter ReminderFilter, reference model.Date) ReminderSummary {
	out := ReminderSummary{
		Filter:  filter,
		Visible: make([]model.Reminder, 0, len(reminders)),
		Total:   len(reminders),
	}
	byBucket := make(map[Bucket][]model.Reminder, len(bucketOrder))
	for _, r := range reminders {
		if !r.IsRead {
			out.Unread++
		}
		if filter != ReminderFilterAll && filter != "" && model.ReminderType(filter) != r.Type {
			continue
		}
		out.Visible = append(out.Visible, r)
		b := BucketFor(r.Date, reference)
		byBucket[b] = append(byBucket[b], r)
	}
	for _, b := range bucketOrder {
		if items := byBucket[b]; len(items) > 0 {
			out.Groups = append(out.Groups, ReminderGroup{Bucket: b, Reminders: items})
		}
	}
	return out
}

func ReplaceReminder(reminders []model.Reminder, updated model.Reminder) ([]model.Reminder, bool) {
	out := make([]model.Reminder, len(reminders))
	copy(out, reminders)
	for i := range out {
		if out[i].ID == updated.ID {
			out[i] = updated
			return out, true
		}
	}
	return out, false
}

func RemoveReminder(reminders []model.Reminder, id string) ([]model.Reminder, bool) {
	out := make([]model.Reminder, 0, len(reminders))
	found := false
	for _, r := range reminders {
		if r.ID == id {
			found = true
			continue
		}
		out = append(out, r)
	}
	return out, found
}
