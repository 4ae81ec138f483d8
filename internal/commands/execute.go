package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Add    func(AddArgs) (Result, error)
	Filter func(FilterArgs) (Result, error)
	Status func(StatusArgs) (Result, error)
	Delete func(DeleteArgs) (Result, error)
	Goto   func(GotoArgs) (Result, error)
	Logout func() (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, missingHandler(cmd.Type)
		}
		return handlers.Add(*cmd.Add)
	case TypeFilter:
		if handlers.Filter == nil {
			return Result{}, missingHandler(cmd.Type)
		}
		return handlers.Filter(*cmd.Filter)
	case TypeStatus:
		if handlers.Status == nil {
			return Result{}, missingHandler(cmd.Type)
		}
		return handlers.Status(*cmd.Status)
	case TypeDelete:
		if handlers.Delete == nil {
			return Result{}, missingHandler(cmd.Type)
		}
		return handlers.Delete(*cmd.Delete)
	case TypeGoto:
		if handlers.Goto == nil {
			return Result{}, missingHandler(cmd.Type)
		}
		return handlers.Goto(*cmd.Goto)
	case TypeLogout:
		if handlers.Logout == nil {
			return Result{}, missingHandler(cmd.Type)
		}
		return handlers.Logout()
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}

func missingHandler(t Type) error {
	return &CommandError{Code: ErrCodeHandlerMissing, Message: fmt.Sprintf("%s handler not configured", t)}
}
