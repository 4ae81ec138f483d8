package update

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/todod/internal/auth"
	"github.com/sandeepkv93/todod/internal/commands"
	"github.com/sandeepkv93/todod/internal/model"
	"github.com/sandeepkv93/todod/internal/views"
)

const (
	loginEmail = iota
	loginPassword
	loginRemember
	loginFieldCount
)

type loginForm struct {
	inputs   []textinput.Model
	remember bool
	focus    int
}

func newLoginForm() loginForm {
	return loginForm{inputs: []textinput.Model{
		newInput("you@example.com", false),
		newInput("password", true),
	}}
}

const (
	registerFirstName = iota
	registerLastName
	registerEmail
	registerPassword
	registerConfirm
	registerFieldCount
)

type registerForm struct {
	inputs []textinput.Model
	focus  int
}

func newRegisterForm() registerForm {
	return registerForm{inputs: []textinput.Model{
		newInput("first name", false),
		newInput("last name", false),
		newInput("you@example.com", false),
		newInput("at least 8 characters", true),
		newInput("repeat password", true),
	}}
}

const (
	createTitle = iota
	createDescription
	createDue
	createReminder
	createFieldCount
)

type createForm struct {
	title       textinput.Model
	description textarea.Model
	due         textinput.Model
	reminder    bool
	focus       int
}

func newCreateForm() createForm {
	desc := textarea.New()
	desc.SetWidth(40)
	desc.SetHeight(3)
	desc.ShowLineNumbers = false
	desc.Placeholder = "description (markdown)"
	return createForm{
		title:       newInput("what needs doing", false),
		description: desc,
		due:         newInput("YYYY-MM-DD, today or tomorrow", false),
	}
}

func newInput(placeholder string, secret bool) textinput.Model {
	in := textinput.New()
	in.Prompt = ""
	in.Placeholder = placeholder
	in.CharLimit = 256
	in.Width = 36
	if secret {
		in.EchoMode = textinput.EchoPassword
		in.EchoCharacter = '•'
	}
	return in
}

// typeInto appends runes directly and hands every other key to the input.
func typeInto(in *textinput.Model, msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyRunes:
		in.SetValue(in.Value() + string(msg.Runes))
		return
	case tea.KeySpace:
		in.SetValue(in.Value() + " ")
		return
	}
	next, _ := in.Update(msg)
	*in = next
}

// focusForm moves the cursor of the current view's form to its focused field.
func (m *Model) focusForm() {
	for i := range m.login.inputs {
		if m.CurrentView == ViewLogin && i == m.login.focus {
			m.login.inputs[i].Focus()
		} else {
			m.login.inputs[i].Blur()
		}
	}
	for i := range m.register.inputs {
		if m.CurrentView == ViewRegister && i == m.register.focus {
			m.register.inputs[i].Focus()
		} else {
			m.register.inputs[i].Blur()
		}
	}
	m.create.title.Blur()
	m.create.due.Blur()
	m.create.description.Blur()
	if m.CurrentView != ViewCreate {
		return
	}
	switch m.create.focus {
	case createTitle:
		m.create.title.Focus()
	case createDescription:
		m.create.description.Focus()
	case createDue:
		m.create.due.Focus()
	}
}

func (m Model) handleFormKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		m.moveFormFocus(1)
		return m, nil
	case "shift+tab", "up":
		m.moveFormFocus(-1)
		return m, nil
	case "enter":
		return m.submitForm()
	case "esc":
		switch m.CurrentView {
		case ViewRegister:
			return m.enterView(ViewLogin)
		case ViewCreate:
			m.create = newCreateForm()
			return m.enterView(ViewTasks)
		}
		return m, nil
	case "ctrl+r":
		if m.CurrentView == ViewLogin {
			return m.enterView(ViewRegister)
		}
		if m.CurrentView == ViewRegister {
			return m.enterView(ViewLogin)
		}
		return m, nil
	}

	switch m.CurrentView {
	case ViewLogin:
		if m.login.focus == loginRemember {
			if msg.String() == " " {
				m.login.remember = !m.login.remember
			}
			return m, nil
		}
		typeInto(&m.login.inputs[m.login.focus], msg)
	case ViewRegister:
		typeInto(&m.register.inputs[m.register.focus], msg)
	case ViewCreate:
		switch m.create.focus {
		case createTitle:
			typeInto(&m.create.title, msg)
		case createDue:
			typeInto(&m.create.due, msg)
		case createDescription:
			switch msg.Type {
			case tea.KeyRunes:
				m.create.description.InsertString(string(msg.Runes))
				return m, nil
			case tea.KeySpace:
				m.create.description.InsertString(" ")
				return m, nil
			}
			next, _ := m.create.description.Update(msg)
			m.create.description = next
		case createReminder:
			if msg.String() == " " {
				m.create.reminder = !m.create.reminder
			}
		}
	}
	return m, nil
}

func (m *Model) moveFormFocus(delta int) {
	wrap := func(i, n int) int { return ((i+delta)%n + n) % n }
	switch m.CurrentView {
	case ViewLogin:
		m.login.focus = wrap(m.login.focus, loginFieldCount)
	case ViewRegister:
		m.register.focus = wrap(m.register.focus, registerFieldCount)
	case ViewCreate:
		m.create.focus = wrap(m.create.focus, createFieldCount)
	}
	m.focusForm()
}

func (m Model) submitForm() (Model, tea.Cmd) {
	switch m.CurrentView {
	case ViewLogin:
		req := auth.LoginRequest{
			Email:    strings.TrimSpace(m.login.inputs[loginEmail].Value()),
			Password: m.login.inputs[loginPassword].Value(),
			Remember: m.login.remember,
		}
		if req.Email == "" || req.Password == "" {
			m.Status = StatusBar{Text: "email and password are required", IsError: true}
			return m, nil
		}
		m.Status = StatusBar{Text: "signing in..."}
		return m, m.loginCmd(req)
	case ViewRegister:
		in := m.register.inputs
		req := auth.RegisterRequest{
			FirstName:       strings.TrimSpace(in[registerFirstName].Value()),
			LastName:        strings.TrimSpace(in[registerLastName].Value()),
			Email:           strings.TrimSpace(in[registerEmail].Value()),
			Password:        in[registerPassword].Value(),
			ConfirmPassword: in[registerConfirm].Value(),
		}
		if err := req.Validate(); err != nil {
			m.Status = StatusBar{Text: err.Error(), IsError: true}
			return m, nil
		}
		m.Status = StatusBar{Text: "creating account..."}
		return m, m.registerCmd(req)
	case ViewCreate:
		in := model.NewTask{
			Title:       strings.TrimSpace(m.create.title.Value()),
			Description: strings.TrimSpace(m.create.description.Value()),
			Reminder:    m.create.reminder,
			Status:      model.StatusPending,
		}
		if raw := strings.TrimSpace(m.create.due.Value()); raw != "" {
			due, err := commands.ResolveDate(raw, m.Reference)
			if err != nil {
				m.Status = StatusBar{Text: fmt.Sprintf("invalid due date %q", raw), IsError: true}
				return m, nil
			}
			in.DueDate = &due
		}
		if err := in.Validate(); err != nil {
			m.Status = StatusBar{Text: err.Error(), IsError: true}
			return m, nil
		}
		m.Status = StatusBar{Text: "saving task..."}
		return m, m.createTaskCmd(in)
	}
	return m, nil
}

func (m Model) onAuthResult(msg authResultMsg) (Model, tea.Cmd) {
	if msg.Err != nil {
		m.LastError = msg.Err
		m.Status = StatusBar{Text: authErrorText(msg.Err), IsError: true}
		m.log.WithError(msg.Err).Warn("sign in failed")
		return m, nil
	}
	if err := m.session.Populate(msg.Grant, msg.Remember); err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}
	m.resetSnapshots()
	m.backend = m.backendFor(msg.Grant.User)
	m.login = newLoginForm()
	m.register = newRegisterForm()
	m.log.WithField("user_id", msg.Grant.User.ID).Info("signed in")
	next, cmd := m.enterView(ViewTasks)
	next.Status = StatusBar{Text: "welcome, " + msg.Grant.User.DisplayName()}
	return next, cmd
}

func authErrorText(err error) string {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return "invalid email or password"
	case errors.Is(err, auth.ErrEmailTaken):
		return "email already registered"
	case errors.Is(err, auth.ErrPasswordMismatch):
		return "passwords do not match"
	default:
		return err.Error()
	}
}

func (m Model) renderLoginView() string {
	fields := []views.FormField{
		{Label: "email", View: m.login.inputs[loginEmail].View(), Focused: m.login.focus == loginEmail},
		{Label: "password", View: m.login.inputs[loginPassword].View(), Focused: m.login.focus == loginPassword},
	}
	return views.RenderForm(views.FormData{
		Title:    "Sign in",
		Fields:   fields,
		Toggle:   "remember me",
		ToggleOn: m.login.remember,
		Focused:  m.login.focus == loginRemember,
		Hint:     "[tab] next field [space] toggle [enter] sign in [ctrl+r] register",
	})
}

func (m Model) renderRegisterView() string {
	labels := []string{"first name", "last name", "email", "password", "confirm"}
	fields := make([]views.FormField, 0, len(labels))
	for i, label := range labels {
		fields = append(fields, views.FormField{Label: label, View: m.register.inputs[i].View(), Focused: m.register.focus == i})
	}
	return views.RenderForm(views.FormData{
		Title:  "Register",
		Fields: fields,
		Hint:   "[tab] next field [enter] create account [esc] back to sign in",
	})
}

func (m Model) renderCreateView() string {
	return views.RenderForm(views.FormData{
		Title: "New task",
		Fields: []views.FormField{
			{Label: "title", View: m.create.title.View(), Focused: m.create.focus == createTitle},
			{Label: "notes", View: m.create.description.View(), Focused: m.create.focus == createDescription},
			{Label: "due", View: m.create.due.View(), Focused: m.create.focus == createDue},
		},
		Toggle:   "remind me on the due date",
		ToggleOn: m.create.reminder,
		Focused:  m.create.focus == createReminder,
		Hint:     "[tab] next field [space] toggle [enter] save [esc] cancel",
	})
}
