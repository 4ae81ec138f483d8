package commands

import (
	"fmt"
	"strings"

	"github.com/sandeepkv93/todod/internal/model"
	"github.com/sandeepkv93/todod/internal/taskview"
)

type Type string

const (
	TypeAdd    Type = "add"
	TypeFilter Type = "filter"
	TypeStatus Type = "status"
	TypeDelete Type = "delete"
	TypeGoto   Type = "goto"
	TypeLogout Type = "logout"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// TargetSelected refers to the task under the cursor.
const TargetSelected = "selected"

type AddArgs struct {
	Title    string
	Due      string
	Reminder bool
}

type FilterArgs struct {
	Filter taskview.Filter
}

type StatusArgs struct {
	Target string
	Status model.Status
}

type DeleteArgs struct {
	Target string
}

type GotoArgs struct {
	Date string
}

type Command struct {
	Type   Type
	Raw    string
	Add    *AddArgs
	Filter *FilterArgs
	Status *StatusArgs
	Delete *DeleteArgs
	Goto   *GotoArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeFilter:
		return parseFilter(input, args)
	case TypeStatus:
		return parseStatus(input, args)
	case TypeDelete, "rm":
		return parseDelete(input, args)
	case TypeGoto:
		return parseGoto(input, args)
	case TypeLogout:
		return Command{Type: TypeLogout, Raw: input}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

// parseAdd reads "add <title> [due:<date>] [remind]".
func parseAdd(raw string, args []string) (Command, error) {
	out := AddArgs{}
	words := make([]string, 0, len(args))
	for _, arg := range args {
		lower := strings.ToLower(arg)
		switch {
		case strings.HasPrefix(lower, "due:"):
			due := strings.TrimSpace(arg[len("due:"):])
			if !validDateWord(due) {
				return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid due date: %q", due)}
			}
			out.Due = due
		case lower == "remind" || lower == "+remind":
			out.Reminder = true
		default:
			words = append(words, arg)
		}
	}
	out.Title = strings.TrimSpace(strings.Join(words, " "))
	if out.Title == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a title"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &out}, nil
}

func parseFilter(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "filter requires one of all, pending, in-progress, complete"}
	}
	f, err := taskview.ParseFilter(args[0])
	if err != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: err.Error()}
	}
	return Command{Type: TypeFilter, Raw: raw, Filter: &FilterArgs{Filter: f}}, nil
}

func parseStatus(raw string, args []string) (Command, error) {
	if len(args) != 2 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "status requires target and status"}
	}
	status, err := model.ParseStatus(args[1])
	if err != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: err.Error()}
	}
	return Command{Type: TypeStatus, Raw: raw, Status: &StatusArgs{Target: args[0], Status: status}}, nil
}

func parseDelete(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "delete requires a target"}
	}
	return Command{Type: TypeDelete, Raw: raw, Delete: &DeleteArgs{Target: args[0]}}, nil
}

func parseGoto(raw string, args []string) (Command, error) {
	if len(args) != 1 || !validDateWord(args[0]) {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "goto requires today, tomorrow or YYYY-MM-DD"}
	}
	return Command{Type: TypeGoto, Raw: raw, Goto: &GotoArgs{Date: args[0]}}, nil
}

func validDateWord(s string) bool {
	switch strings.ToLower(s) {
	case "today", "tomorrow", "yesterday":
		return true
	}
	_, err := model.ParseDate(s)
	return err == nil
}

// ResolveDate turns a date word or YYYY-MM-DD into a calendar day relative to
// today.
func ResolveDate(s string, today model.Date) (model.Date, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "today":
		return today, nil
	case "tomorrow":
		return today.AddDays(1), nil
	case "yesterday":
		return today.AddDays(-1), nil
	}
	return model.ParseDate(s)
}
