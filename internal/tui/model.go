// Package tui implements the full-screen terminal front end on top of
// bubbletea. It drives the same service layer as the line-oriented CLI;
// all state transitions go through messages produced by service calls
// running as tea commands.
package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"todokeeper/internal/common"
	"todokeeper/internal/models"
	"todokeeper/internal/services"
	"todokeeper/internal/session"
)

type mode int

const (
	modeLogin mode = iota
	modeTasks
	modeAdd
)

type Model struct {
	ctx context.Context

	auth       *services.AuthService
	tasks      *services.TaskService
	categories *services.CategoryService
	session    *session.Session

	mode  mode
	login loginForm
	list  taskList
	add   addForm

	status string
	errMsg string

	width  int
	height int
}

func New(ctx context.Context, auth *services.AuthService, tasks *services.TaskService,
	categories *services.CategoryService) Model {

	return Model{
		ctx:        ctx,
		auth:       auth,
		tasks:      tasks,
		categories: categories,
		session:    session.New(),
		mode:       modeLogin,
		login:      newLoginForm(),
	}
}

// Run blocks until the user quits the program.
func Run(ctx context.Context, auth *services.AuthService, tasks *services.TaskService,
	categories *services.CategoryService) error {

	p := tea.NewProgram(New(ctx, auth, tasks, categories), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return m.login.Init()
}

// Messages flowing back from service commands.
type (
	loggedInMsg    struct{ identity *models.Identity }
	registeredMsg  struct{}
	tasksLoadedMsg struct{ tasks []*models.Task }
	taskMutatedMsg struct{}
	serviceErrMsg  struct{ err error }
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}

	case loggedInMsg:
		m.session.Set(msg.identity)
		m.mode = modeTasks
		m.errMsg = ""
		m.status = ""
		return m, m.loadTasks()

	case registeredMsg:
		m.status = "Account created, you can login now."
		m.errMsg = ""
		return m, nil

	case tasksLoadedMsg:
		m.list.setTasks(msg.tasks)
		return m, nil

	case taskMutatedMsg:
		m.status = ""
		return m, m.loadTasks()

	case serviceErrMsg:
		m.errMsg = errText(msg.err)
		return m, nil
	}

	switch m.mode {
	case modeLogin:
		return m.updateLogin(msg)
	case modeTasks:
		return m.updateTasks(msg)
	case modeAdd:
		return m.updateAdd(msg)
	}
	return m, nil
}

func (m Model) View() string {
	switch m.mode {
	case modeLogin:
		return m.viewLogin()
	case modeTasks:
		return m.viewTasks()
	case modeAdd:
		return m.viewAdd()
	}
	return ""
}

// actor panics when called without a session; mode transitions
// guarantee the task views are only reachable after loggedInMsg.
func (m Model) actor() models.Identity {
	identity := m.session.Get()
	if identity == nil {
		panic("tui: no active session")
	}
	return *identity
}

func (m Model) loadTasks() tea.Cmd {
	actor := m.actor()
	return func() tea.Msg {
		tasks, err := m.tasks.List(m.ctx, actor)
		if err != nil {
			return serviceErrMsg{err}
		}
		return tasksLoadedMsg{tasks}
	}
}

// errText maps service sentinels to short messages fitting one line.
func errText(err error) string {
	var wrongPw *common.WrongPasswordError

	switch {
	case errors.As(err, &wrongPw):
		return fmt.Sprintf("wrong password, attempts left: %d", wrongPw.Remaining)
	case errors.Is(err, common.ErrWrongPassword):
		return "wrong password"
	case errors.Is(err, common.ErrAccountLockedNow):
		return "wrong password, the account is now locked"
	case errors.Is(err, common.ErrAccountLocked):
		return "account locked, contact an administrator"
	case errors.Is(err, common.ErrUnknownAlias):
		return "unknown alias"
	case errors.Is(err, common.ErrAliasTaken):
		return "alias already taken"
	case errors.Is(err, common.ErrEmptyAlias):
		return "alias must not be empty"
	case errors.Is(err, common.ErrEmptyPassword):
		return "password must not be empty"
	case errors.Is(err, common.ErrEmptyTitle):
		return "title must not be empty"
	case errors.Is(err, common.ErrInvalidDate):
		return "invalid date, expected " + models.DateFormat
	case errors.Is(err, common.ErrNotOwner):
		return "permission denied"
	case errors.Is(err, common.ErrNotFound):
		return "not found"
	default:
		return err.Error()
	}
}
