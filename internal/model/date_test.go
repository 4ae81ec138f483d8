package model

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestParseDateCanonical(t *testing.T) {
	d, err := ParseDate("2025-11-30")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if d != NewDate(2025, time.November, 30) {
		t.Fatalf("unexpected date %+v", d)
	}
	if d.String() != "2025-11-30" {
		t.Fatalf("unexpected string %q", d.String())
	}
	if _, err := ParseDate("11/30/2025"); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}

func TestParseDateTimestampKeepsOwnCalendarDay(t *testing.T) {
	// 23:30 at -05:00 is already the next day in UTC; the day must not shift.
	d, err := ParseDate("2025-11-12T23:30:00-05:00")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if d.String() != "2025-11-12" {
		t.Fatalf("expected 2025-11-12, got %s", d)
	}
}

func TestDateAddDaysAcrossYear(t *testing.T) {
	d := NewDate(2025, time.December, 30)
	if got := d.AddDays(3).String(); got != "2026-01-02" {
		t.Fatalf("expected 2026-01-02, got %s", got)
	}
	if got := d.AddDays(-30).String(); got != "2025-11-30" {
		t.Fatalf("expected 2025-11-30, got %s", got)
	}
	if !d.Before(d.AddDays(1)) || !d.AddDays(1).After(d) {
		t.Fatal("ordering mismatch")
	}
}

func TestDateJSON(t *testing.T) {
	type wrapper struct {
		Due *Date `json:"due,omitempty"`
	}
	d := NewDate(2025, time.November, 13)
	raw, err := json.Marshal(wrapper{Due: &d})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != `{"due":"2025-11-13"}` {
		t.Fatalf("unexpected json %s", raw)
	}
	var back wrapper
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Due == nil || *back.Due != d {
		t.Fatalf("unexpected round trip %+v", back.Due)
	}
}
