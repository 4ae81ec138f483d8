package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/sandeepkv93/todod/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return m.renderHelpView()
}

func (m Model) renderHelpView() string {
	bindings := m.helpBindings()
	var plain []string
	for _, kb := range m.viewBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		CurrentView: string(m.CurrentView),
		Bindings:    plain,
		HelpView: m.helpModel.View(helpKeyMap{
			short: bindings,
			full:  [][]key.Binding{bindings},
		}),
	})
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: m.Keys.Tasks, Action: "tasks"},
		{Key: m.Keys.Today, Action: "week"},
		{Key: m.Keys.Reminders, Action: "reminders"},
		{Key: m.Keys.Create, Action: "new task"},
		{Key: "/", Action: "command"},
		{Key: m.Keys.Help, Action: "help"},
		{Key: m.Keys.Quit, Action: "quit"},
	}
}

func (m Model) viewBindings() []KeyBinding {
	switch m.CurrentView {
	case ViewTasks:
		return []KeyBinding{
			{Key: "j/k", Action: "move cursor"},
			{Key: "f", Action: "cycle filter"},
			{Key: "s", Action: "cycle status"},
			{Key: "space", Action: "toggle complete"},
			{Key: "d", Action: "delete task"},
		}
	case ViewToday:
		return []KeyBinding{
			{Key: "h/l", Action: "previous/next day"},
			{Key: "H/L", Action: "previous/next week"},
			{Key: "t", Action: "back to today"},
			{Key: "j/k", Action: "move cursor"},
			{Key: "s/space/d", Action: "status / complete / delete"},
		}
	case ViewReminders:
		return []KeyBinding{
			{Key: "j/k", Action: "move cursor"},
			{Key: "f", Action: "cycle type"},
			{Key: "space", Action: "toggle read"},
			{Key: "d", Action: "delete reminder"},
		}
	default:
		return []KeyBinding{{Key: "tab", Action: "next field"}, {Key: "enter", Action: "submit"}}
	}
}

func (m Model) helpBindings() []key.Binding {
	out := make([]key.Binding, 0, len(m.globalBindings())+len(m.viewBindings()))
	for _, kb := range m.globalBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	for _, kb := range m.viewBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
