package model

import (
	"errors"
	"testing"
	"time"
)

func TestReminderValidateSuccess(t *testing.T) {
	rem := Reminder{
		ID:    "rem-1",
		Title: "Team meeting",
		Time:  "10:00",
		Date:  NewDate(2026, 2, 9),
		Type:  ReminderTypeNotification,
	}
	if err := rem.Validate(); err != nil {
		t.Fatalf("expected valid reminder, got error: %v", err)
	}
}

func TestReminderValidateInvalidTypeAndClock(t *testing.T) {
	rem := Reminder{
		ID:    "rem-1",
		Title: "Call",
		Time:  "10:00",
		Date:  NewDate(2026, 2, 9),
		Type:  ReminderType("pager"),
	}
	if err := rem.Validate(); !errors.Is(err, ErrInvalidReminderType) {
		t.Fatalf("expected ErrInvalidReminderType, got: %v", err)
	}
	rem.Type = ReminderTypeSMS
	rem.Time = "25:99"
	if err := rem.Validate(); !errors.Is(err, ErrInvalidClock) {
		t.Fatalf("expected ErrInvalidClock, got: %v", err)
	}
}

func TestReminderAtAndDisplay(t *testing.T) {
	rem := Reminder{Time: "15:30", Date: NewDate(2026, 3, 1)}
	at, err := rem.At(time.UTC)
	if err != nil {
		t.Fatalf("at: %v", err)
	}
	want := time.Date(2026, 3, 1, 15, 30, 0, 0, time.UTC)
	if !at.Equal(want) {
		t.Fatalf("expected %v, got %v", want, at)
	}
	if rem.DisplayTime() != "3:30 PM" {
		t.Fatalf("unexpected display time %q", rem.DisplayTime())
	}
}

func TestReminderTypeIsValid(t *testing.T) {
	for _, item := range ReminderTypes {
		if !item.IsValid() {
			t.Fatalf("expected valid reminder type: %q", item)
		}
	}
	if ReminderType("other").IsValid() {
		t.Fatal("expected invalid type")
	}
	if ReminderTypeSMS.Label() != "SMS" {
		t.Fatalf("unexpected label %q", ReminderTypeSMS.Label())
	}
}
