// Package cli implements the interactive text front end. It is a thin
// layer over the service packages: every command resolves the active
// identity from the app session and passes it to the service call.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"todokeeper/internal/common"
	"todokeeper/internal/models"
	"todokeeper/internal/services"
	"todokeeper/internal/session"
)

type App struct {
	auth       *services.AuthService
	accounts   *services.AccountService
	tasks      *services.TaskService
	categories *services.CategoryService

	session *session.Session
	reader  *bufio.Reader
	out     io.Writer
}

func NewApp(auth *services.AuthService, accounts *services.AccountService,
	tasks *services.TaskService, categories *services.CategoryService) *App {

	return &App{
		auth:       auth,
		accounts:   accounts,
		tasks:      tasks,
		categories: categories,
		session:    session.New(),
		reader:     bufio.NewReader(os.Stdin),
		out:        os.Stdout,
	}
}

func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "todokeeper (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)
}

// status renders the prompt fragment shown before each command.
func (a *App) status() string {
	identity := a.session.Get()
	if identity == nil {
		return "guest"
	}
	if identity.IsAdmin {
		return identity.Alias + "*"
	}
	return identity.Alias
}

func (a *App) isLoggedIn() bool {
	return a.session.Active()
}

func (a *App) isAdmin() bool {
	identity := a.session.Get()
	return identity != nil && identity.IsAdmin
}

// actor returns the identity every service call must carry. Commands
// reachable only when logged in may still race a logout, so the check
// stays here rather than in the REPL.
func (a *App) actor() (models.Identity, error) {
	identity := a.session.Get()
	if identity == nil {
		return models.Identity{}, errors.New("not logged in")
	}
	return *identity, nil
}

// reportErr translates service sentinels into user-facing messages.
func (a *App) reportErr(err error) {
	var wrongPw *common.WrongPasswordError

	switch {
	case errors.As(err, &wrongPw):
		fmt.Fprintf(a.out, "Wrong password, attempts left: %d\n", wrongPw.Remaining)
	case errors.Is(err, common.ErrWrongPassword):
		fmt.Fprintln(a.out, "Wrong password.")
	case errors.Is(err, common.ErrAccountLockedNow):
		fmt.Fprintln(a.out, "Wrong password. The account is now locked, contact an administrator.")
	case errors.Is(err, common.ErrAccountLocked):
		fmt.Fprintln(a.out, "This account is locked, contact an administrator.")
	case errors.Is(err, common.ErrUnknownAlias):
		fmt.Fprintln(a.out, "Unknown alias.")
	case errors.Is(err, common.ErrAliasTaken):
		fmt.Fprintln(a.out, "This alias is already taken.")
	case errors.Is(err, common.ErrEmptyAlias):
		fmt.Fprintln(a.out, "Alias must not be empty.")
	case errors.Is(err, common.ErrEmptyPassword):
		fmt.Fprintln(a.out, "Password must not be empty.")
	case errors.Is(err, common.ErrEmptyTitle):
		fmt.Fprintln(a.out, "Title must not be empty.")
	case errors.Is(err, common.ErrEmptyName):
		fmt.Fprintln(a.out, "Name must not be empty.")
	case errors.Is(err, common.ErrNameTaken):
		fmt.Fprintln(a.out, "A category with this name already exists.")
	case errors.Is(err, common.ErrInvalidDate):
		fmt.Fprintf(a.out, "Invalid date, expected %s.\n", models.DateFormat)
	case errors.Is(err, common.ErrNotOwner):
		fmt.Fprintln(a.out, "Permission denied.")
	case errors.Is(err, common.ErrNotFound):
		fmt.Fprintln(a.out, "Not found.")
	default:
		fmt.Fprintf(a.out, "Error: %s\n", err.Error())
	}
}
