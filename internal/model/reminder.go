package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidReminderType = errors.New("model: invalid reminder type")
	ErrInvalidClock        = errors.New("model: invalid reminder time")
)

type ReminderType string

const (
	ReminderTypeEmail        ReminderType = "email"
	ReminderTypeNotification ReminderType = "notification"
	ReminderTypeSMS          ReminderType = "sms"
)

var ReminderTypes = []ReminderType{ReminderTypeEmail, ReminderTypeNotification, ReminderTypeSMS}

func (r ReminderType) IsValid() bool {
	switch r {
	case ReminderTypeEmail, ReminderTypeNotification, ReminderTypeSMS:
		return true
	default:
		return false
	}
}

func (r ReminderType) Label() string {
	switch r {
	case ReminderTypeEmail:
		return "Email"
	case ReminderTypeSMS:
		return "SMS"
	default:
		return "Notification"
	}
}

// ClockLayout is the stored form of a reminder's time of day.
const ClockLayout = "15:04"

type Reminder struct {
	ID          string       `json:"id"`
	UserID      string       `json:"userId,omitempty"`
	TaskID      string       `json:"taskId,omitempty"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Time        string       `json:"time"`
	Date        Date         `json:"date"`
	Type        ReminderType `json:"type"`
	IsRead      bool         `json:"isRead"`
	CreatedAt   time.Time    `json:"createdAt"`
}

// At returns the moment the reminder is due in loc.
func (r Reminder) At(loc *time.Location) (time.Time, error) {
	clock, err := time.Parse(ClockLayout, r.Time)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidClock, r.Time)
	}
	return time.Date(r.Date.Year, r.Date.Month, r.Date.Day, clock.Hour(), clock.Minute(), 0, 0, loc), nil
}

// DisplayTime renders the clock as "3:04 PM".
func (r Reminder) DisplayTime() string {
	clock, err := time.Parse(ClockLayout, r.Time)
	if err != nil {
		return r.Time
	}
	return clock.Format("3:04 PM")
}

func (r Reminder) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return errors.New("model: reminder id is required")
	}
	if strings.TrimSpace(r.Title) == "" {
		return errors.New("model: reminder title is required")
	}
	if r.Date.IsZero() {
		return errors.New("model: reminder date is required")
	}
	if _, err := time.Parse(ClockLayout, r.Time); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidClock, r.Time)
	}
	if !r.Type.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidReminderType, r.Type)
	}
	return nil
}
