package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	isAdmin() bool

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error

	ListTasks(ctx context.Context) error
	AddTask(ctx context.Context) error
	CompleteTask(ctx context.Context) error
	EditTask(ctx context.Context) error
	DeleteTask(ctx context.Context) error

	ListCategories(ctx context.Context) error
	AddCategory(ctx context.Context) error
	DeleteCategory(ctx context.Context) error

	Users(ctx context.Context) error
	UnlockUser(ctx context.Context) error
	ResetUserPassword(ctx context.Context) error
	SetAdmin(ctx context.Context) error
	DeleteUser(ctx context.Context) error

	ChangePassword(ctx context.Context) error
	Rename(ctx context.Context) error
	DeleteAccount(ctx context.Context) error
}

// runREPL starts a read–eval–print loop over the command surface.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Commands requiring a login are rejected up front so handlers can assume
// an active session. Any errors returned by command handlers are ignored
// here; handlers print their own messages.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("tk> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			printHelp(a)

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return
		}

		if isKnown(cmd) && !a.isLoggedIn() {
			printlnFn("Please login first.")
			continue
		}

		switch cmd {
		case "l", "list":
			_ = a.ListTasks(ctx)

		case "add":
			_ = a.AddTask(ctx)

		case "done":
			_ = a.CompleteTask(ctx)

		case "edit":
			_ = a.EditTask(ctx)

		case "del":
			_ = a.DeleteTask(ctx)

		case "cats":
			_ = a.ListCategories(ctx)

		case "addcat":
			_ = a.AddCategory(ctx)

		case "delcat":
			_ = a.DeleteCategory(ctx)

		case "users":
			_ = a.Users(ctx)

		case "unlock":
			_ = a.UnlockUser(ctx)

		case "resetpw":
			_ = a.ResetUserPassword(ctx)

		case "mkadmin":
			_ = a.SetAdmin(ctx)

		case "deluser":
			_ = a.DeleteUser(ctx)

		case "passwd":
			_ = a.ChangePassword(ctx)

		case "rename":
			_ = a.Rename(ctx)

		case "deleteme":
			_ = a.DeleteAccount(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "help", "register", "login":
			// handled above

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

var loggedInCommands = map[string]bool{
	"l": true, "list": true, "add": true, "done": true, "edit": true, "del": true,
	"cats": true, "addcat": true, "delcat": true,
	"users": true, "unlock": true, "resetpw": true, "mkadmin": true, "deluser": true,
	"passwd": true, "rename": true, "deleteme": true, "logout": true,
}

func isKnown(cmd string) bool {
	return loggedInCommands[cmd]
}

func printHelp(a execIface) {
	if !a.isLoggedIn() {
		printlnFn("Available commands: register, login, exit")
		return
	}
	printlnFn("Tasks:      (l)ist, add, done, edit, del")
	printlnFn("Categories: cats, addcat, delcat")
	printlnFn("Profile:    passwd, rename, deleteme, logout, exit")
	if a.isAdmin() {
		printlnFn("Admin:      users, unlock, resetpw, mkadmin, deluser")
	}
}
