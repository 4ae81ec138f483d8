package commands

import (
	"errors"
	"testing"
	"time"

	"github.com/sandeepkv93/todod/internal/model"
	"github.com/sandeepkv93/todod/internal/taskview"
)

func TestParseSupportedCommands(t *testing.T) {
	cases := []struct {
		in       string
		typeWant Type
	}{
		{"/add pay rent due:tomorrow", TypeAdd},
		{"filter in-progress", TypeFilter},
		{"status selected complete", TypeStatus},
		{"delete 3f2a", TypeDelete},
		{"rm 3f2a", TypeDelete},
		{"goto 2025-11-30", TypeGoto},
		{"/logout", TypeLogout},
	}

	for _, tc := range cases {
		cmd, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("parse %q failed: %v", tc.in, err)
		}
		if cmd.Type != tc.typeWant {
			t.Fatalf("parse %q type = %s, want %s", tc.in, cmd.Type, tc.typeWant)
		}
	}
}

func TestParseAddOptions(t *testing.T) {
	cmd, err := Parse("add book dentist due:2025-11-13 remind")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cmd.Add.Title != "book dentist" || cmd.Add.Due != "2025-11-13" || !cmd.Add.Reminder {
		t.Fatalf("unexpected add args %+v", cmd.Add)
	}
	if _, err := Parse("add due:today"); err == nil {
		t.Fatal("expected error for add without title")
	}
	if _, err := Parse("add call mom due:someday"); err == nil {
		t.Fatal("expected error for bad due date")
	}
}

func TestParseArgumentErrors(t *testing.T) {
	for _, in := range []string{"filter blocked", "filter", "status selected", "status x maybe", "delete", "goto next-week"} {
		_, err := Parse(in)
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != ErrCodeInvalidArgument {
			t.Fatalf("%q: expected invalid argument, got %v", in, err)
		}
	}
}

func TestParseNormalizesValues(t *testing.T) {
	cmd, err := Parse("status abc completed")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cmd.Status.Status != model.StatusComplete || cmd.Status.Target != "abc" {
		t.Fatalf("unexpected status args %+v", cmd.Status)
	}
	cmd, err = Parse("filter ALL")
	if err != nil || cmd.Filter.Filter != taskview.FilterAll {
		t.Fatalf("unexpected filter %+v err=%v", cmd.Filter, err)
	}
}

func TestParseUnknownCommand(t *testing.T) {
	_, err := Parse("/unknown do x")
	if err == nil {
		t.Fatal("expected error")
	}
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeUnknownCommand {
		t.Fatalf("expected unknown command error, got %v", err)
	}
	if _, err := Parse("  / "); !errors.As(err, &ce) || ce.Code != ErrCodeEmptyInput {
		t.Fatalf("expected empty input error, got %v", err)
	}
}

func TestResolveDate(t *testing.T) {
	today := model.NewDate(2025, time.December, 31)
	got, err := ResolveDate("tomorrow", today)
	if err != nil || got.String() != "2026-01-01" {
		t.Fatalf("unexpected tomorrow %s err=%v", got, err)
	}
	got, err = ResolveDate("2025-11-30", today)
	if err != nil || got.String() != "2025-11-30" {
		t.Fatalf("unexpected explicit date %s err=%v", got, err)
	}
}

func TestExecuteDispatch(t *testing.T) {
	cmd, err := Parse("/add write docs")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	called := false
	res, err := Execute(cmd, Handlers{
		Add: func(a AddArgs) (Result, error) {
			called = true
			if a.Title != "write docs" {
				t.Fatalf("unexpected title: %q", a.Title)
			}
			return Result{Message: "ok"}, nil
		},
	})
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !called || res.Message != "ok" {
		t.Fatalf("dispatch failed, called=%v res=%+v", called, res)
	}
}

func TestExecuteMissingHandler(t *testing.T) {
	cmd, err := Parse("logout")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	_, err = Execute(cmd, Handlers{})
	if err == nil {
		t.Fatal("expected error")
	}
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeHandlerMissing {
		t.Fatalf("expected missing handler error, got %v", err)
	}
}
