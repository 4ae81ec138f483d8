package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/todod/internal/commands"
	"github.com/sandeepkv93/todod/internal/model"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closePalette()
		m.Status = StatusBar{Text: "command palette closed"}
		return m, nil
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand()
	}
	typeInto(&m.commandInput, msg)
	m.Palette.Input = m.commandInput.Value()
	return m, nil
}

func (m *Model) closePalette() {
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
}

// resolveTarget maps "selected" to the task under the cursor. Anything else
// must be the ID of a task in the snapshot.
func (m Model) resolveTarget(target string) (model.Task, error) {
	if strings.EqualFold(target, commands.TargetSelected) {
		if task, ok := m.selectedTask(); ok {
			return task, nil
		}
		return model.Task{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "no task selected"}
	}
	for _, t := range m.Tasks {
		if t.ID == target || strings.HasPrefix(t.ID, target) {
			return t, nil
		}
	}
	return model.Task{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no task %q", target)}
}

func (m Model) executePaletteCommand() (Model, tea.Cmd) {
	raw := strings.TrimSpace(m.Palette.Input)
	m.closePalette()
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}

	var next tea.Cmd
	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			in := model.NewTask{Title: a.Title, Reminder: a.Reminder, Status: model.StatusPending}
			if a.Due != "" {
				due, err := commands.ResolveDate(a.Due, m.Reference)
				if err != nil {
					return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: err.Error()}
				}
				in.DueDate = &due
			}
			next = m.createTaskCmd(in)
			return commands.Result{Message: fmt.Sprintf("adding task: %s", a.Title)}, nil
		},
		Filter: func(f commands.FilterArgs) (commands.Result, error) {
			m.Filter = f.Filter
			m.TaskCursor = 0
			m, next = m.enterView(ViewTasks)
			return commands.Result{Message: fmt.Sprintf("filter: %s", f.Filter)}, nil
		},
		Status: func(s commands.StatusArgs) (commands.Result, error) {
			task, err := m.resolveTarget(s.Target)
			if err != nil {
				return commands.Result{}, err
			}
			next = m.updateStatusCmd(task.ID, s.Status)
			return commands.Result{Message: fmt.Sprintf("setting %s to %s", task.Title, s.Status.Label())}, nil
		},
		Delete: func(d commands.DeleteArgs) (commands.Result, error) {
			task, err := m.resolveTarget(d.Target)
			if err != nil {
				return commands.Result{}, err
			}
			next = m.deleteTaskCmd(task.ID)
			return commands.Result{Message: fmt.Sprintf("deleting %s", task.Title)}, nil
		},
		Goto: func(g commands.GotoArgs) (commands.Result, error) {
			day, err := commands.ResolveDate(g.Date, m.Reference)
			if err != nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: err.Error()}
			}
			m, next = m.enterView(ViewToday)
			m.selectDay(day)
			return commands.Result{Message: fmt.Sprintf("showing %s", day)}, nil
		},
		Logout: func() (commands.Result, error) {
			var err error
			m, next, err = m.logout()
			if err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: "signed out"}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.notify("Command failed", err.Error(), "error")
		return m, nil
	}
	m.Status = StatusBar{Text: res.Message}
	return m, next
}
