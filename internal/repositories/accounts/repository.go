// Package accounts implements the credential store: one record per
// account, keyed by an opaque id, with a case-insensitive uniqueness
// constraint on the alias.
package accounts

import (
	"context"

	"todokeeper/internal/models"
)

type Repository interface {
	Create(ctx context.Context, acc *models.Account) (*models.Account, error)

	// GetByAlias matches the stored alias exactly (case-sensitive).
	GetByAlias(ctx context.Context, alias string) (*models.Account, error)
	GetByID(ctx context.Context, id string) (*models.Account, error)

	// AliasInUse probes the case-insensitive uniqueness constraint.
	// excludeID may name an account whose own alias should not count,
	// for rename checks; pass "" otherwise.
	AliasInUse(ctx context.Context, alias string, excludeID string) (bool, error)

	List(ctx context.Context) ([]*models.Account, error)
	Count(ctx context.Context) (int64, error)

	// CommitLoginState persists the failure counter and lock flag.
	// Every login attempt commits through here before returning.
	CommitLoginState(ctx context.Context, id string, failedAttempts int, locked bool) error

	SetPasswordHash(ctx context.Context, id string, hash string) error
	SetAdmin(ctx context.Context, id string, isAdmin bool) error
	SetAlias(ctx context.Context, id string, alias string) error

	// Unlock clears the lock flag and resets the failure counter.
	Unlock(ctx context.Context, id string) error

	Delete(ctx context.Context, id string) error
}
