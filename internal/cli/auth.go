package cli

import (
	"context"
	"fmt"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getOptionalText = GetOptionalText
var getPassword = GetPassword

// Register prompts for an alias and password and creates a new account.
// The new account is not logged in automatically.
func (a *App) Register(ctx context.Context) error {
	alias, err := getSimpleText(a.reader, "Choose an alias", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out, "Choose a password")
	if err != nil {
		return err
	}

	if _, err := a.auth.Register(ctx, alias, password); err != nil {
		a.reportErr(err)
		return err
	}

	fmt.Fprintln(a.out, "Account created, you can login now.")
	return nil
}

// Login prompts for credentials and opens a session on success. Failed
// attempts print the remaining count; the third failure reports that
// the account has just been locked.
func (a *App) Login(ctx context.Context) error {
	alias, err := getSimpleText(a.reader, "Enter alias", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		return err
	}

	identity, err := a.auth.Login(ctx, alias, password)
	if err != nil {
		a.reportErr(err)
		return err
	}

	a.session.Set(identity)
	fmt.Fprintf(a.out, "Welcome, %s!\n", identity.Alias)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.session.Clear()
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}
