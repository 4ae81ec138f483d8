package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/todod/internal/model"
	"github.com/sandeepkv93/todod/internal/scheduler"
	"github.com/sandeepkv93/todod/internal/taskview"
	"github.com/sandeepkv93/todod/internal/views"
)

const reminderLogSize = 20

func (m Model) reminderSummary() taskview.ReminderSummary {
	return taskview.SummarizeReminders(m.Reminders, m.ReminderFilter, m.Reference)
}

// orderedReminders lists the visible reminders in display order.
func (m Model) orderedReminders() []model.Reminder {
	s := m.reminderSummary()
	out := make([]model.Reminder, 0, len(s.Visible))
	for _, g := range s.Groups {
		out = append(out, g.Reminders...)
	}
	return out
}

func (m Model) selectedReminder() (model.Reminder, bool) {
	items := m.orderedReminders()
	if m.ReminderCursor < 0 || m.ReminderCursor >= len(items) {
		return model.Reminder{}, false
	}
	return items[m.ReminderCursor], true
}

func (m Model) handleRemindersKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.ReminderCursor > 0 {
			m.ReminderCursor--
		}
		return m, nil
	case "down", "j":
		if m.ReminderCursor < len(m.orderedReminders())-1 {
			m.ReminderCursor++
		}
		return m, nil
	case "f", "tab":
		m.ReminderFilter = m.ReminderFilter.Next()
		m.ReminderCursor = 0
		m.Status = StatusBar{Text: fmt.Sprintf("reminder type: %s", m.ReminderFilter)}
		return m, nil
	}

	rem, ok := m.selectedReminder()
	if !ok {
		return m, nil
	}
	switch msg.String() {
	case " ", "x", "enter":
		return m, m.setReminderReadCmd(rem.ID, !rem.IsRead)
	case "d", "delete":
		return m, m.deleteReminderCmd(rem.ID)
	}
	return m, nil
}

func (m Model) onReminderChanged(msg reminderChangedMsg) (Model, tea.Cmd) {
	if msg.Epoch != m.sessionEpoch {
		m.log.Debug("dropping reminder save from an ended session")
		return m, nil
	}
	if msg.Err != nil {
		m.LastError = msg.Err
		m.Status = StatusBar{Text: fmt.Sprintf("could not save reminder: %v", msg.Err), IsError: true}
		return m, nil
	}
	if msg.Deleted != "" {
		m.Reminders, _ = taskview.RemoveReminder(m.Reminders, msg.Deleted)
		if m.Scheduler != nil {
			m.Scheduler.Cancel(msg.Deleted)
		}
		m.Status = StatusBar{Text: "reminder deleted"}
	} else {
		m.Reminders, _ = taskview.ReplaceReminder(m.Reminders, msg.Reminder)
		state := "unread"
		if msg.Reminder.IsRead {
			state = "read"
		}
		m.Status = StatusBar{Text: fmt.Sprintf("reminder marked %s: %s", state, msg.Reminder.Title)}
		m.scheduleReminders()
	}
	m.clampCursors()
	return m, nil
}

// onReminderDue records a fired reminder and raises it as a notification.
func (m *Model) onReminderDue(ev scheduler.ReminderEvent) {
	m.ReminderLog = append(m.ReminderLog, ev)
	if len(m.ReminderLog) > reminderLogSize {
		m.ReminderLog = m.ReminderLog[len(m.ReminderLog)-reminderLogSize:]
	}
	text := fmt.Sprintf("%s reminder: %s at %s", ev.Channel.Label(), ev.Title, ev.DueAt.In(m.loc).Format("15:04"))
	m.Status = StatusBar{Text: text}
	m.notify("Reminder", text, "info")
	m.log.WithField("reminder_id", ev.ReminderID).Info("reminder fired")
}

func (m Model) renderRemindersView() string {
	return views.RenderReminders(views.ReminderPanelData{
		Summary: m.reminderSummary(),
		Cursor:  m.ReminderCursor,
		Loading: m.loadingLine(),
	})
}
