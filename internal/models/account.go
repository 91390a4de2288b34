// Package models holds the persistence-level data structures shared by
// repositories and services.
package models

import "time"

// Account is one credential-store record. PasswordHash is opaque to
// everything except the passhash package and is never logged.
type Account struct {
	ID             string
	Alias          string
	PasswordHash   string
	IsAdmin        bool
	Locked         bool
	FailedAttempts int
	CreatedAt      time.Time
}

// Identity is the capability-bearing snapshot produced by a successful
// login. It does not track later changes to the underlying account;
// a re-login is required to pick those up.
type Identity struct {
	ID      string
	Alias   string
	IsAdmin bool
}

// Summary returns the identity snapshot for this account.
func (a *Account) Summary() Identity {
	return Identity{ID: a.ID, Alias: a.Alias, IsAdmin: a.IsAdmin}
}

// AccountSummary is the administrative listing view of an account.
// It never carries the password hash.
type AccountSummary struct {
	ID             string
	Alias          string
	IsAdmin        bool
	Locked         bool
	FailedAttempts int
	CreatedAt      time.Time
}
