package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/todod/internal/model"
	"github.com/sandeepkv93/todod/internal/taskview"
	"github.com/sandeepkv93/todod/internal/views"
)

func (m Model) summary() taskview.Summary {
	return taskview.Summarize(m.Tasks, m.Filter)
}

func (m Model) visibleTasks() []model.Task {
	return m.summary().Visible
}

// selectedTask is the task under the cursor of the current view.
func (m Model) selectedTask() (model.Task, bool) {
	var items []model.Task
	cursor := 0
	switch m.CurrentView {
	case ViewTasks:
		items, cursor = m.visibleTasks(), m.TaskCursor
	case ViewToday:
		items, cursor = taskview.TasksOn(m.Tasks, m.Selected), m.DayCursor
	default:
		return model.Task{}, false
	}
	if cursor < 0 || cursor >= len(items) {
		return model.Task{}, false
	}
	return items[cursor], true
}

func (m Model) handleTasksKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.TaskCursor > 0 {
			m.TaskCursor--
		}
	case "down", "j":
		if m.TaskCursor < len(m.visibleTasks())-1 {
			m.TaskCursor++
		}
	case "f", "tab":
		m.Filter = m.Filter.Next()
		m.TaskCursor = 0
		m.Status = StatusBar{Text: fmt.Sprintf("filter: %s", m.Filter)}
	default:
		return m.handleSelectedTaskKey(msg)
	}
	return m, nil
}

// handleSelectedTaskKey applies the task actions shared by the list and day
// views.
func (m Model) handleSelectedTaskKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	task, ok := m.selectedTask()
	if !ok {
		return m, nil
	}
	switch msg.String() {
	case "s":
		return m, m.updateStatusCmd(task.ID, nextStatus(task.Status))
	case " ", "x":
		return m, m.setCompletedCmd(task.ID, !task.Completed)
	case "d", "delete":
		return m, m.deleteTaskCmd(task.ID)
	}
	return m, nil
}

// nextStatus cycles pending, in progress, complete.
func nextStatus(s model.Status) model.Status {
	switch s.Normalize() {
	case model.StatusPending:
		return model.StatusInProgress
	case model.StatusInProgress:
		return model.StatusComplete
	default:
		return model.StatusPending
	}
}

func (m Model) renderTasksView() string {
	s := m.summary()
	return views.RenderTaskList(views.TaskListData{
		Summary:      s,
		Reference:    m.Reference,
		Cursor:       m.TaskCursor,
		ProgressView: m.progressBar.ViewAs(float64(s.CompletionPercentage) / 100),
		Loading:      m.loadingLine(),
	})
}

func (m Model) renderTaskDetailPane() string {
	task, _ := m.selectedTask()
	desc := ""
	if task.Description != "" {
		vp := m.descriptionView
		vp.SetContent(m.markdown.Render(task.Description))
		desc = vp.View()
	}
	return views.RenderTaskDetail(views.TaskDetailData{
		Task:            task,
		Reference:       m.Reference,
		DescriptionView: desc,
	})
}

func (m Model) loadingLine() string {
	if !m.Loading {
		return ""
	}
	return m.loadSpinner.View() + " loading"
}
