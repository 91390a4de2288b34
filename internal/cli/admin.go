package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Users lists every account with its admin and lock state. The service
// refuses the call for non-admin identities.
func (a *App) Users(ctx context.Context) error {
	actor, err := a.actor()
	if err != nil {
		return err
	}

	accounts, err := a.accounts.List(ctx, actor)
	if err != nil {
		a.reportErr(err)
		return err
	}

	for _, acc := range accounts {
		var flags []string
		if acc.IsAdmin {
			flags = append(flags, "admin")
		}
		if acc.Locked {
			flags = append(flags, fmt.Sprintf("locked(%d)", acc.FailedAttempts))
		}
		fmt.Fprintf(a.out, "%s  %-20s %s\n", acc.ID, acc.Alias, strings.Join(flags, " "))
	}
	return nil
}

func (a *App) UnlockUser(ctx context.Context) error {
	actor, err := a.actor()
	if err != nil {
		return err
	}

	id, err := getSimpleText(a.reader, "Account id to unlock", a.out)
	if err != nil {
		return err
	}

	if err := a.accounts.Unlock(ctx, actor, id); err != nil {
		a.reportErr(err)
		return err
	}

	fmt.Fprintln(a.out, "Unlocked.")
	return nil
}

func (a *App) ResetUserPassword(ctx context.Context) error {
	actor, err := a.actor()
	if err != nil {
		return err
	}

	id, err := getSimpleText(a.reader, "Account id", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out, "New password")
	if err != nil {
		return err
	}

	if err := a.accounts.ResetPassword(ctx, actor, id, password); err != nil {
		a.reportErr(err)
		return err
	}

	fmt.Fprintln(a.out, "Password reset.")
	return nil
}

// DeleteUser removes another account; owned tasks go with it through
// the cascade. Deleting another admin stays behind the admin-on-admin
// policy flag like the other administrative operations.
func (a *App) DeleteUser(ctx context.Context) error {
	actor, err := a.actor()
	if err != nil {
		return err
	}

	id, err := getSimpleText(a.reader, "Account id to delete", a.out)
	if err != nil {
		return err
	}

	if err := a.accounts.Delete(ctx, actor, id); err != nil {
		a.reportErr(err)
		return err
	}

	if id == actor.ID {
		a.session.Clear()
	}
	fmt.Fprintln(a.out, "Account deleted.")
	return nil
}

// SetAdmin grants or revokes the admin flag on another account.
func (a *App) SetAdmin(ctx context.Context) error {
	actor, err := a.actor()
	if err != nil {
		return err
	}

	id, err := getSimpleText(a.reader, "Account id", a.out)
	if err != nil {
		return err
	}

	raw, err := getSimpleText(a.reader, "Admin flag (true/false)", a.out)
	if err != nil {
		return err
	}
	isAdmin, err := strconv.ParseBool(raw)
	if err != nil {
		fmt.Fprintln(a.out, "Expected true or false.")
		return err
	}

	if err := a.accounts.SetAdminFlag(ctx, actor, id, isAdmin); err != nil {
		a.reportErr(err)
		return err
	}

	fmt.Fprintln(a.out, "Updated.")
	return nil
}
