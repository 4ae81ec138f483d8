package update

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/todod/internal/auth"
	"github.com/sandeepkv93/todod/internal/backend"
	"github.com/sandeepkv93/todod/internal/scheduler"
	"github.com/sandeepkv93/todod/internal/taskview"
	"github.com/sandeepkv93/todod/internal/views"
)

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.fetchCmds()}
	if m.Loading {
		cmds = append(cmds, m.loadSpinner.Tick)
	}
	if m.Scheduler != nil {
		cmds = append(cmds, waitForReminderCmd(m.Scheduler.C()))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(typed)
	case spinner.TickMsg:
		if m.Loading {
			var cmd tea.Cmd
			m.loadSpinner, cmd = m.loadSpinner.Update(typed)
			return m, cmd
		}
	case SwitchViewMsg:
		if isKnownView(typed.View) {
			return m.enterView(typed.View)
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		m.notify("Status", typed.Text, levelFromError(typed.IsError))
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
			m.notify("Error", typed.Err.Error(), "error")
		}
		return m, nil
	case authResultMsg:
		return m.onAuthResult(typed)
	case tasksFetchedMsg:
		return m.onTasksFetched(typed)
	case remindersFetchedMsg:
		return m.onRemindersFetched(typed)
	case taskChangedMsg:
		return m.onTaskChanged(typed)
	case reminderChangedMsg:
		return m.onReminderChanged(typed)
	case ReminderDueMsg:
		m.onReminderDue(typed.Event)
		if m.Scheduler != nil {
			return m, waitForReminderCmd(m.Scheduler.C())
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.Quitting = true
		return m, tea.Quit
	}
	if m.Palette.Active {
		return m.handlePaletteKey(msg)
	}
	if m.CurrentView.hasForm() {
		return m.handleFormKey(msg)
	}

	switch msg.String() {
	case "/":
		m.Palette.Active = true
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Focus()
		m.Status = StatusBar{Text: "command palette active"}
		return m, nil
	case m.Keys.Tasks:
		return m.enterView(ViewTasks)
	case m.Keys.Today:
		return m.enterView(ViewToday)
	case m.Keys.Reminders:
		return m.enterView(ViewReminders)
	case m.Keys.Create:
		return m.enterView(ViewCreate)
	case m.Keys.Refresh:
		return m.enterView(m.CurrentView)
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
		if m.HelpVisible {
			m.Status = StatusBar{Text: "help shown"}
		} else {
			m.Status = StatusBar{Text: "help hidden"}
		}
		return m, nil
	case m.Keys.Quit:
		m.Quitting = true
		return m, tea.Quit
	}

	switch m.CurrentView {
	case ViewTasks:
		return m.handleTasksKey(msg)
	case ViewToday:
		return m.handleTodayKey(msg)
	case ViewReminders:
		return m.handleRemindersKey(msg)
	}
	return m, nil
}

// enterView switches to v and starts its fetch. Protected views redirect to
// the login view when the session is no longer valid.
func (m Model) enterView(v View) (Model, tea.Cmd) {
	m.fetchGen++
	m.Loading = false
	m.Reference = m.today()
	if v.Protected() && !m.session.IsAuthenticated() {
		if m.session.State() == auth.SessionPopulated || m.backend != nil {
			m.Status = StatusBar{Text: "session ended, please sign in", IsError: true}
		}
		m.resetSnapshots()
		v = ViewLogin
	}
	m.CurrentView = v
	m.focusForm()

	cmd := m.fetchCmds()
	if cmd == nil {
		return m, nil
	}
	m.Loading = true
	return m, tea.Batch(cmd, m.loadSpinner.Tick)
}

func (m *Model) resetSnapshots() {
	m.sessionEpoch++
	m.backend = nil
	m.Tasks = nil
	m.Reminders = nil
	m.TaskCursor, m.DayCursor, m.ReminderCursor = 0, 0, 0
	if m.Scheduler != nil {
		_ = m.Scheduler.Replace(nil)
	}
}

// logout clears the persisted session and returns to the login view.
func (m Model) logout() (Model, tea.Cmd, error) {
	err := m.session.Clear()
	m.resetSnapshots()
	m.log.Info("signed out")
	next, cmd := m.enterView(ViewLogin)
	next.Status = StatusBar{Text: "signed out"}
	return next, cmd, err
}

func (m Model) onTasksFetched(msg tasksFetchedMsg) (Model, tea.Cmd) {
	if msg.Gen != m.fetchGen {
		return m, nil
	}
	m.Loading = false
	if msg.Err != nil {
		return m.onFetchError("tasks", msg.Err)
	}
	m.Tasks = msg.Tasks
	m.clampCursors()
	return m, nil
}

func (m Model) onRemindersFetched(msg remindersFetchedMsg) (Model, tea.Cmd) {
	if msg.Gen != m.fetchGen {
		return m, nil
	}
	m.Loading = false
	if msg.Err != nil {
		return m.onFetchError("reminders", msg.Err)
	}
	m.Reminders = msg.Reminders
	m.clampCursors()
	m.scheduleReminders()
	return m, nil
}

// onFetchError keeps the last snapshot. An unauthorized answer ends the
// session.
func (m Model) onFetchError(what string, err error) (Model, tea.Cmd) {
	m.LastError = err
	m.log.WithError(err).WithField("fetch", what).Warn("fetch failed")
	if errors.Is(err, backend.ErrUnauthorized) {
		next, cmd, _ := m.logout()
		next.Status = StatusBar{Text: "session expired, please sign in", IsError: true}
		return next, cmd
	}
	text := fmt.Sprintf("could not load %s: %v", what, err)
	if backend.IsNetwork(err) {
		text = fmt.Sprintf("could not load %s: server unreachable, showing last data", what)
	}
	m.Status = StatusBar{Text: text, IsError: true}
	m.notify("Fetch failed", text, "error")
	return m, nil
}

func (m Model) onTaskChanged(msg taskChangedMsg) (Model, tea.Cmd) {
	if msg.Epoch != m.sessionEpoch {
		m.log.WithField("action", msg.Action).Debug("dropping task save from an ended session")
		return m, nil
	}
	if msg.Err != nil {
		m.LastError = msg.Err
		text := fmt.Sprintf("could not save task: %v", msg.Err)
		if errors.Is(msg.Err, backend.ErrNotFound) {
			text = "task no longer exists"
			if msg.Deleted != "" {
				m.Tasks, _ = taskview.RemoveTask(m.Tasks, msg.Deleted)
			}
		}
		m.Status = StatusBar{Text: text, IsError: true}
		m.clampCursors()
		return m, nil
	}
	switch msg.Action {
	case "created":
		m.Tasks = append(m.Tasks, msg.Task)
		m.create = newCreateForm()
		next, cmd := m.enterView(ViewTasks)
		next.Status = StatusBar{Text: fmt.Sprintf("task created: %s", msg.Task.Title)}
		return next, cmd
	case "deleted":
		m.Tasks, _ = taskview.RemoveTask(m.Tasks, msg.Deleted)
		m.Status = StatusBar{Text: "task deleted"}
	default:
		var ok bool
		m.Tasks, ok = taskview.ReplaceTask(m.Tasks, msg.Task)
		if !ok {
			m.Tasks = append(m.Tasks, msg.Task)
		}
		m.Status = StatusBar{Text: fmt.Sprintf("%s: %s", msg.Task.Title, msg.Task.Status.Label())}
	}
	m.clampCursors()
	return m, nil
}

func (m *Model) clampCursors() {
	clamp := func(c, n int) int {
		if c >= n {
			c = n - 1
		}
		if c < 0 {
			c = 0
		}
		return c
	}
	m.TaskCursor = clamp(m.TaskCursor, len(m.visibleTasks()))
	m.DayCursor = clamp(m.DayCursor, len(taskview.TasksOn(m.Tasks, m.Selected)))
	m.ReminderCursor = clamp(m.ReminderCursor, len(m.orderedReminders()))
}

func (m *Model) scheduleReminders() {
	if m.Scheduler == nil {
		return
	}
	events := scheduler.EventsFromReminders(m.Reminders, m.loc, m.now())
	if err := m.Scheduler.Replace(events); err != nil {
		m.log.WithError(err).Warn("schedule reminders")
	}
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	leftPane, rightPane := "", ""
	switch m.CurrentView {
	case ViewLogin:
		leftPane = m.renderLoginView()
	case ViewRegister:
		leftPane = m.renderRegisterView()
	case ViewCreate:
		leftPane = m.renderCreateView()
	case ViewTasks:
		leftPane = m.renderTasksView()
		rightPane = m.renderTaskDetailPane()
	case ViewToday:
		leftPane = m.renderTodayView()
		rightPane = m.renderTaskDetailPane()
	case ViewReminders:
		leftPane = m.renderRemindersView()
	}
	rightPane = strings.TrimSpace(strings.Join([]string{rightPane, m.renderCommandPalette(), m.renderHelpIfVisible()}, "\n\n"))

	header := fmt.Sprintf("todod | view: %s", m.CurrentView)
	if m.CurrentView.Protected() {
		header += fmt.Sprintf(" | user: %s | today: %s", m.session.User().DisplayName(), m.Reference)
	}
	footer := "keys: ctrl+c quit"
	if !m.CurrentView.hasForm() {
		footer = fmt.Sprintf("keys: %s tasks | %s today | %s reminders | %s new | %s refresh | / cmd | %s help | %s quit",
			m.Keys.Tasks, m.Keys.Today, m.Keys.Reminders, m.Keys.Create, m.Keys.Refresh, m.Keys.Help, m.Keys.Quit)
	}

	return views.RenderApp(views.AppData{
		Header:       header,
		LeftPane:     leftPane,
		RightPane:    rightPane,
		StatusLine:   status,
		StatusError:  m.Status.IsError,
		Notification: m.renderNotificationsView(),
		Footer:       footer,
	})
}

func isKnownView(v View) bool {
	switch v {
	case ViewLogin, ViewRegister, ViewTasks, ViewToday, ViewReminders, ViewCreate:
		return true
	default:
		return false
	}
}
