package update

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/sandeepkv93/todod/internal/auth"
	"github.com/sandeepkv93/todod/internal/backend"
	"github.com/sandeepkv93/todod/internal/logging"
	"github.com/sandeepkv93/todod/internal/model"
	"github.com/sandeepkv93/todod/internal/scheduler"
	"github.com/sandeepkv93/todod/internal/taskview"
	"github.com/sandeepkv93/todod/internal/views"
	"github.com/sirupsen/logrus"
)

type View string

const (
	ViewLogin     View = "Login"
	ViewRegister  View = "Register"
	ViewTasks     View = "Tasks"
	ViewToday     View = "Today"
	ViewReminders View = "Reminders"
	ViewCreate    View = "Create"
)

// Protected reports whether the view needs a signed-in session.
func (v View) Protected() bool {
	return v != ViewLogin && v != ViewRegister
}

func (v View) hasForm() bool {
	return v == ViewLogin || v == ViewRegister || v == ViewCreate
}

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Tasks     string
	Today     string
	Reminders string
	Create    string
	Refresh   string
	Help      string
	Quit      string
}

// Authenticator signs users in. auth.Service does it against the local
// database and client.Client against a remote server.
type Authenticator interface {
	Register(ctx context.Context, req auth.RegisterRequest) (auth.Grant, error)
	Login(ctx context.Context, req auth.LoginRequest) (auth.Grant, error)
}

// BackendFactory returns the task store for a signed-in user.
type BackendFactory func(user model.User) backend.Backend

type Deps struct {
	Session              *auth.Session
	Auth                 Authenticator
	Backend              BackendFactory
	Scheduler            *scheduler.Engine
	Notifier             DesktopNotifier
	DesktopNotifications bool
	Log                  *logrus.Logger
	Now                  func() time.Time
	Location             *time.Location
	FetchTimeout         time.Duration
}

type Notification struct {
	Title string
	Body  string
	Level string
	At    time.Time
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Model struct {
	CurrentView View
	Keys        GlobalKeyMap
	Status      StatusBar
	HelpVisible bool
	Palette     CommandPaletteState
	Quitting    bool
	LastError   error

	// Snapshots of the collaborator's data. A failed fetch keeps them.
	Tasks          []model.Task
	Reminders      []model.Reminder
	Filter         taskview.Filter
	ReminderFilter taskview.ReminderFilter
	TaskCursor     int
	DayCursor      int
	ReminderCursor int
	Reference      model.Date
	Selected       model.Date
	Loading        bool

	Notifications []Notification
	ReminderLog   []scheduler.ReminderEvent

	session      *auth.Session
	authn        Authenticator
	newBackend   BackendFactory
	backend      backend.Backend
	Scheduler    *scheduler.Engine
	notifier     DesktopNotifier
	desktop      bool
	log          *logrus.Logger
	now          func() time.Time
	loc          *time.Location
	fetchTimeout time.Duration
	fetchGen     uint64
	// sessionEpoch changes whenever the signed-in user does. Save results
	// issued under an older epoch are dropped.
	sessionEpoch uint64

	login    loginForm
	register registerForm
	create   createForm

	commandInput    textinput.Model
	loadSpinner     spinner.Model
	helpModel       help.Model
	progressBar     progress.Model
	descriptionView viewport.Model
	markdown        *views.MarkdownRenderer
}

func NewModel(deps Deps) Model {
	m := Model{
		CurrentView:    ViewLogin,
		Filter:         taskview.FilterAll,
		ReminderFilter: taskview.ReminderFilterAll,
		Keys: GlobalKeyMap{
			Tasks:     "1",
			Today:     "2",
			Reminders: "3",
			Create:    "n",
			Refresh:   "r",
			Help:      "?",
			Quit:      "q",
		},
		session:      deps.Session,
		authn:        deps.Auth,
		newBackend:   deps.Backend,
		Scheduler:    deps.Scheduler,
		notifier:     deps.Notifier,
		desktop:      deps.DesktopNotifications,
		log:          deps.Log,
		now:          deps.Now,
		loc:          deps.Location,
		fetchTimeout: deps.FetchTimeout,
	}
	if m.session == nil {
		m.session = auth.NewSession(nil)
	}
	if m.notifier == nil {
		m.notifier = NoopDesktopNotifier{}
	}
	if m.log == nil {
		m.log = logging.Discard()
	}
	if m.now == nil {
		m.now = time.Now
	}
	if m.loc == nil {
		m.loc = time.Local
	}
	if m.fetchTimeout <= 0 {
		m.fetchTimeout = 10 * time.Second
	}
	m.Reference = model.DateOf(m.now().In(m.loc))
	m.Selected = m.Reference
	m.initBubbleComponents()

	if m.session.IsAuthenticated() {
		m.backend = m.backendFor(m.session.User())
		m.CurrentView = ViewTasks
		m.fetchGen = 1
		m.Loading = m.backend != nil
	}
	m.focusForm()
	return m
}

func (m *Model) initBubbleComponents() {
	m.login = newLoginForm()
	m.register = newRegisterForm()
	m.create = newCreateForm()

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.loadSpinner = spinner.New()
	m.loadSpinner.Spinner = spinner.Dot

	m.helpModel = help.New()
	m.progressBar = progress.New(progress.WithDefaultGradient(), progress.WithWidth(24), progress.WithoutPercentage())
	m.descriptionView = viewport.New(44, 8)
	m.markdown = views.NewMarkdownRenderer(40)
}

func (m Model) backendFor(user model.User) backend.Backend {
	if m.newBackend == nil || user.ID == "" {
		return nil
	}
	return m.newBackend(user)
}

// Session returns the session the model signs in and out of.
func (m Model) Session() *auth.Session {
	return m.session
}

func (m Model) today() model.Date {
	return model.DateOf(m.now().In(m.loc))
}

type SwitchViewMsg struct {
	View View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

type ReminderDueMsg struct {
	Event scheduler.ReminderEvent
}

type tasksFetchedMsg struct {
	Gen   uint64
	Tasks []model.Task
	Err   error
}

type remindersFetchedMsg struct {
	Gen       uint64
	Reminders []model.Reminder
	Err       error
}

type taskChangedMsg struct {
	Epoch   uint64
	Action  string
	Task    model.Task
	Deleted string
	Err     error
}

type reminderChangedMsg struct {
	Epoch    uint64
	Reminder model.Reminder
	Deleted  string
	Err      error
}

type authResultMsg struct {
	Grant    auth.Grant
	Remember bool
	Register bool
	Err      error
}
