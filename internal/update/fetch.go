package update

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/todod/internal/auth"
	"github.com/sandeepkv93/todod/internal/backend"
	"github.com/sandeepkv93/todod/internal/model"
	"github.com/sandeepkv93/todod/internal/scheduler"
)

// Every view entry bumps the fetch generation. Results carry the generation
// they were started under and are dropped once it is stale.

func (m Model) fetchTasksCmd(gen uint64) tea.Cmd {
	b, timeout := m.backend, m.fetchTimeout
	if b == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		tasks, err := b.FetchTasks(ctx)
		return tasksFetchedMsg{Gen: gen, Tasks: tasks, Err: err}
	}
}

func (m Model) fetchRemindersCmd(gen uint64) tea.Cmd {
	b, timeout := m.backend, m.fetchTimeout
	if b == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		reminders, err := b.FetchReminders(ctx)
		return remindersFetchedMsg{Gen: gen, Reminders: reminders, Err: err}
	}
}

// fetchCmds returns the fetches the current view needs under the current
// generation.
func (m Model) fetchCmds() tea.Cmd {
	switch m.CurrentView {
	case ViewTasks, ViewToday:
		return tea.Batch(m.fetchTasksCmd(m.fetchGen), m.fetchRemindersCmd(m.fetchGen))
	case ViewReminders:
		return m.fetchRemindersCmd(m.fetchGen)
	}
	return nil
}

// withBackend runs a save against the current backend. run receives the
// session epoch the save was issued under.
func (m Model) withBackend(run func(context.Context, backend.Backend, uint64) tea.Msg) tea.Cmd {
	b, timeout, epoch := m.backend, m.fetchTimeout, m.sessionEpoch
	if b == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return run(ctx, b, epoch)
	}
}

func (m Model) createTaskCmd(in model.NewTask) tea.Cmd {
	return m.withBackend(func(ctx context.Context, b backend.Backend, epoch uint64) tea.Msg {
		task, err := b.CreateTask(ctx, in)
		return taskChangedMsg{Epoch: epoch, Action: "created", Task: task, Err: err}
	})
}

func (m Model) updateStatusCmd(id string, status model.Status) tea.Cmd {
	return m.withBackend(func(ctx context.Context, b backend.Backend, epoch uint64) tea.Msg {
		task, err := b.UpdateTaskStatus(ctx, id, status)
		return taskChangedMsg{Epoch: epoch, Action: "updated", Task: task, Err: err}
	})
}

func (m Model) setCompletedCmd(id string, done bool) tea.Cmd {
	return m.withBackend(func(ctx context.Context, b backend.Backend, epoch uint64) tea.Msg {
		task, err := b.SetTaskCompleted(ctx, id, done)
		return taskChangedMsg{Epoch: epoch, Action: "updated", Task: task, Err: err}
	})
}

func (m Model) deleteTaskCmd(id string) tea.Cmd {
	return m.withBackend(func(ctx context.Context, b backend.Backend, epoch uint64) tea.Msg {
		err := b.DeleteTask(ctx, id)
		return taskChangedMsg{Epoch: epoch, Action: "deleted", Deleted: id, Err: err}
	})
}

func (m Model) setReminderReadCmd(id string, read bool) tea.Cmd {
	return m.withBackend(func(ctx context.Context, b backend.Backend, epoch uint64) tea.Msg {
		rem, err := b.SetReminderRead(ctx, id, read)
		return reminderChangedMsg{Epoch: epoch, Reminder: rem, Err: err}
	})
}

func (m Model) deleteReminderCmd(id string) tea.Cmd {
	return m.withBackend(func(ctx context.Context, b backend.Backend, epoch uint64) tea.Msg {
		err := b.DeleteReminder(ctx, id)
		return reminderChangedMsg{Epoch: epoch, Deleted: id, Err: err}
	})
}

func (m Model) loginCmd(req auth.LoginRequest) tea.Cmd {
	a, timeout := m.authn, m.fetchTimeout
	return func() tea.Msg {
		if a == nil {
			return authResultMsg{Remember: req.Remember, Err: errNoAuthenticator}
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		grant, err := a.Login(ctx, req)
		return authResultMsg{Grant: grant, Remember: req.Remember, Err: err}
	}
}

// registerCmd signs the new user in for the current process only.
func (m Model) registerCmd(req auth.RegisterRequest) tea.Cmd {
	a, timeout := m.authn, m.fetchTimeout
	return func() tea.Msg {
		if a == nil {
			return authResultMsg{Register: true, Err: errNoAuthenticator}
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		grant, err := a.Register(ctx, req)
		return authResultMsg{Grant: grant, Register: true, Err: err}
	}
}

func waitForReminderCmd(ch <-chan scheduler.ReminderEvent) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return ReminderDueMsg{Event: ev}
	}
}
