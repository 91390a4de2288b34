// Package services contains the business logic. This file implements
// AuthService: registration, the login state machine with failure
// counting and lockout, and the bootstrap-admin rule.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"todokeeper/internal/common"
	"todokeeper/internal/config"
	"todokeeper/internal/dbx"
	"todokeeper/internal/logging"
	"todokeeper/internal/models"
	"todokeeper/internal/passhash"
	"todokeeper/internal/repositories/repomanager"
)

// maxLoginAttempts is the consecutive-failure threshold; reaching it
// locks the account until an administrator unlocks it.
const maxLoginAttempts = 3

// AuthService validates credentials against the credential store,
// applies the lockout policy, and produces identity snapshots.
type AuthService struct {
	db                 *sql.DB
	repomanager        repomanager.RepositoryManager
	logger             logging.Logger
	autoBootstrapAdmin bool
	bootstrapAlias     string
	bootstrapPassword  string
}

// NewAuthService constructs an AuthService using repositories and config.
func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, l logging.Logger) *AuthService {
	return &AuthService{
		db:                 db,
		repomanager:        m,
		logger:             l.With("module", "auth"),
		autoBootstrapAdmin: cfg.AutoBootstrapAdmin,
		bootstrapAlias:     cfg.BootstrapAlias,
		bootstrapPassword:  cfg.BootstrapPassword,
	}
}

// Register creates a new unlocked, non-admin account. The alias is
// trimmed and checked against the case-insensitive uniqueness rule;
// the password is stored only as a bcrypt hash.
func (s *AuthService) Register(ctx context.Context, alias, password string) (string, error) {
	alias = strings.TrimSpace(alias)
	if alias == "" {
		return "", common.ErrEmptyAlias
	}
	if password == "" {
		return "", common.ErrEmptyPassword
	}

	hash, err := passhash.Hash(password)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}

	acc := &models.Account{
		ID:           uuid.NewString(),
		Alias:        alias,
		PasswordHash: hash,
	}

	// Probe and insert run in one transaction. The unique index still
	// maps a concurrent insert from another process to ErrAliasTaken.
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Accounts(tx)

		inUse, err := repo.AliasInUse(ctx, alias, "")
		if err != nil {
			return fmt.Errorf("error checking alias: %w", err)
		}
		if inUse {
			return common.ErrAliasTaken
		}

		_, err = repo.Create(ctx, acc)
		return err
	}); err != nil {
		return "", err
	}

	s.logger.Info(ctx, "account registered", "alias", alias)
	return acc.ID, nil
}

// Login runs one login attempt for (alias, password) and returns an
// identity snapshot on success. The alias lookup matches the stored
// alias exactly. Counter and lock mutations are committed to the store
// before the call returns, whatever the outcome.
func (s *AuthService) Login(ctx context.Context, alias, password string) (*models.Identity, error) {
	repo := s.repomanager.Accounts(s.db)

	acc, err := repo.GetByAlias(ctx, alias)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnknownAlias
		}
		return nil, fmt.Errorf("error looking up account: %w", err)
	}

	// Saturated state: no counter mutation on further attempts.
	if acc.Locked {
		return nil, common.ErrAccountLocked
	}

	if passhash.Verify(password, acc.PasswordHash) {
		if err := repo.CommitLoginState(ctx, acc.ID, 0, false); err != nil {
			return nil, fmt.Errorf("error resetting failure counter: %w", err)
		}
		id := acc.Summary()
		return &id, nil
	}

	failed := acc.FailedAttempts + 1
	if failed >= maxLoginAttempts {
		if err := repo.CommitLoginState(ctx, acc.ID, failed, true); err != nil {
			return nil, fmt.Errorf("error committing lockout: %w", err)
		}
		s.logger.Warn(ctx, "account locked after repeated failures", "alias", acc.Alias)
		return nil, common.ErrAccountLockedNow
	}

	if err := repo.CommitLoginState(ctx, acc.ID, failed, false); err != nil {
		return nil, fmt.Errorf("error committing failure counter: %w", err)
	}
	return nil, &common.WrongPasswordError{Remaining: maxLoginAttempts - failed}
}

// EnsureBootstrapAdmin creates the configured admin account when the
// credential store is empty, so every store has at least one admin
// after first initialization. It reports whether an account was created.
func (s *AuthService) EnsureBootstrapAdmin(ctx context.Context) (bool, error) {
	if !s.autoBootstrapAdmin {
		return false, nil
	}

	repo := s.repomanager.Accounts(s.db)

	n, err := repo.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("error counting accounts: %w", err)
	}
	if n > 0 {
		return false, nil
	}

	hash, err := passhash.Hash(s.bootstrapPassword)
	if err != nil {
		return false, fmt.Errorf("error hashing bootstrap password: %w", err)
	}

	acc := &models.Account{
		ID:           uuid.NewString(),
		Alias:        s.bootstrapAlias,
		PasswordHash: hash,
		IsAdmin:      true,
	}

	if _, err := repo.Create(ctx, acc); err != nil {
		return false, fmt.Errorf("error creating bootstrap admin: %w", err)
	}

	s.logger.Info(ctx, "bootstrap admin created", "alias", s.bootstrapAlias)
	return true, nil
}
