package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/todod/internal/model"
	"github.com/sandeepkv93/todod/internal/taskview"
	"github.com/sandeepkv93/todod/internal/views"
)

func (m Model) handleTodayKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "h", "left":
		m.selectDay(m.Selected.AddDays(-1))
	case "l", "right":
		m.selectDay(m.Selected.AddDays(1))
	case "H", "[":
		m.selectDay(taskview.ShiftWeek(m.Selected, -1))
	case "L", "]":
		m.selectDay(taskview.ShiftWeek(m.Selected, 1))
	case "t":
		m.selectDay(m.Reference)
	case "up", "k":
		if m.DayCursor > 0 {
			m.DayCursor--
		}
	case "down", "j":
		if m.DayCursor < len(taskview.TasksOn(m.Tasks, m.Selected))-1 {
			m.DayCursor++
		}
	default:
		return m.handleSelectedTaskKey(msg)
	}
	return m, nil
}

func (m *Model) selectDay(d model.Date) {
	m.Selected = d
	m.DayCursor = 0
	m.Status = StatusBar{Text: fmt.Sprintf("day: %s %s", d.Weekday(), d)}
}

func (m Model) renderTodayView() string {
	day := taskview.Day(m.Tasks, m.Selected)
	return views.RenderWeek(views.WeekData{
		Week:         taskview.WeekOf(m.Tasks, m.Reference, m.Selected),
		Day:          day,
		Groups:       taskview.GroupByDay(m.Tasks, m.Reference),
		Cursor:       m.DayCursor,
		ProgressView: m.progressBar.ViewAs(float64(day.CompletionPercentage) / 100),
		Loading:      m.loadingLine(),
	})
}
