package cli

import (
	"context"
	"fmt"
)

// ChangePassword asks for the current password before accepting a new
// one, so a walked-away terminal cannot be used to take the account over.
func (a *App) ChangePassword(ctx context.Context) error {
	actor, err := a.actor()
	if err != nil {
		return err
	}

	current, err := getPassword(a.out, "Current password")
	if err != nil {
		return err
	}

	next, err := getPassword(a.out, "New password")
	if err != nil {
		return err
	}

	if err := a.accounts.ChangePassword(ctx, actor, current, next); err != nil {
		a.reportErr(err)
		return err
	}

	fmt.Fprintln(a.out, "Password changed.")
	return nil
}

// Rename changes the active account's alias and refreshes the session
// so the prompt shows the new name.
func (a *App) Rename(ctx context.Context) error {
	actor, err := a.actor()
	if err != nil {
		return err
	}

	alias, err := getSimpleText(a.reader, "New alias", a.out)
	if err != nil {
		return err
	}

	identity, err := a.accounts.ChangeAlias(ctx, actor, alias)
	if err != nil {
		a.reportErr(err)
		return err
	}

	a.session.Set(identity)
	fmt.Fprintf(a.out, "You are now %s.\n", identity.Alias)
	return nil
}

// DeleteAccount removes the active account after an explicit
// confirmation and ends the session.
func (a *App) DeleteAccount(ctx context.Context) error {
	actor, err := a.actor()
	if err != nil {
		return err
	}

	confirm, err := getSimpleText(a.reader, "Type your alias to confirm deletion", a.out)
	if err != nil {
		return err
	}
	if confirm != actor.Alias {
		fmt.Fprintln(a.out, "Aborted.")
		return nil
	}

	if err := a.accounts.Delete(ctx, actor, actor.ID); err != nil {
		a.reportErr(err)
		return err
	}

	a.session.Clear()
	fmt.Fprintln(a.out, "Account deleted.")
	return nil
}
