// This file implements AccountService: administrative account
// management (list, unlock, password reset, role toggle, delete) and
// the self-service profile operations. Every operation takes the
// acting identity explicitly and consults the access policy before
// touching the store.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"todokeeper/internal/access"
	"todokeeper/internal/common"
	"todokeeper/internal/dbx"
	"todokeeper/internal/logging"
	"todokeeper/internal/models"
	"todokeeper/internal/passhash"
	"todokeeper/internal/repositories/repomanager"
)

type AccountService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	policy      *access.Policy
	logger      logging.Logger
}

func NewAccountService(db *sql.DB, m repomanager.RepositoryManager, p *access.Policy, l logging.Logger) *AccountService {
	return &AccountService{
		db:          db,
		repomanager: m,
		policy:      p,
		logger:      l.With("module", "accounts"),
	}
}

// List returns summaries of all accounts. Admin only.
func (s *AccountService) List(ctx context.Context, actor models.Identity) ([]models.AccountSummary, error) {
	if !actor.IsAdmin {
		return nil, common.ErrNotOwner
	}

	accs, err := s.repomanager.Accounts(s.db).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing accounts: %w", err)
	}

	result := make([]models.AccountSummary, 0, len(accs))
	for _, a := range accs {
		result = append(result, models.AccountSummary{
			ID:             a.ID,
			Alias:          a.Alias,
			IsAdmin:        a.IsAdmin,
			Locked:         a.Locked,
			FailedAttempts: a.FailedAttempts,
			CreatedAt:      a.CreatedAt,
		})
	}

	return result, nil
}

// loadTarget fetches the target account and checks that actor may
// administer it. Returns ErrNotFound for a missing id and ErrNotOwner
// for a policy refusal.
func (s *AccountService) loadTarget(ctx context.Context, actor models.Identity, accountID string) (*models.Account, error) {
	acc, err := s.repomanager.Accounts(s.db).GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("error looking up account: %w", err)
	}

	if !s.policy.CanAdminister(actor, acc) {
		return nil, common.ErrNotOwner
	}

	return acc, nil
}

// Unlock clears the lock flag and failure counter of an account.
func (s *AccountService) Unlock(ctx context.Context, actor models.Identity, accountID string) error {
	acc, err := s.loadTarget(ctx, actor, accountID)
	if err != nil {
		return err
	}

	if err := s.repomanager.Accounts(s.db).Unlock(ctx, acc.ID); err != nil {
		return fmt.Errorf("error unlocking account: %w", err)
	}

	s.logger.Info(ctx, "account unlocked", "alias", acc.Alias, "by", actor.Alias)
	return nil
}

// ResetPassword replaces an account's password hash.
func (s *AccountService) ResetPassword(ctx context.Context, actor models.Identity, accountID, newPassword string) error {
	if newPassword == "" {
		return common.ErrEmptyPassword
	}

	acc, err := s.loadTarget(ctx, actor, accountID)
	if err != nil {
		return err
	}

	hash, err := passhash.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	if err := s.repomanager.Accounts(s.db).SetPasswordHash(ctx, acc.ID, hash); err != nil {
		return fmt.Errorf("error storing password: %w", err)
	}

	s.logger.Info(ctx, "password reset", "alias", acc.Alias, "by", actor.Alias)
	return nil
}

// SetAdminFlag grants or revokes the admin role.
func (s *AccountService) SetAdminFlag(ctx context.Context, actor models.Identity, accountID string, isAdmin bool) error {
	if !actor.IsAdmin {
		return common.ErrNotOwner
	}

	acc, err := s.loadTarget(ctx, actor, accountID)
	if err != nil {
		return err
	}

	if err := s.repomanager.Accounts(s.db).SetAdmin(ctx, acc.ID, isAdmin); err != nil {
		return fmt.Errorf("error updating role: %w", err)
	}

	s.logger.Info(ctx, "admin flag changed", "alias", acc.Alias, "is_admin", isAdmin, "by", actor.Alias)
	return nil
}

// Delete removes an account; owned tasks go with it (FK cascade).
// Used both for admin deletion and self-deletion.
func (s *AccountService) Delete(ctx context.Context, actor models.Identity, accountID string) error {
	acc, err := s.loadTarget(ctx, actor, accountID)
	if err != nil {
		return err
	}

	if err := s.repomanager.Accounts(s.db).Delete(ctx, acc.ID); err != nil {
		return fmt.Errorf("error deleting account: %w", err)
	}

	s.logger.Info(ctx, "account deleted", "alias", acc.Alias, "by", actor.Alias)
	return nil
}

// ChangeAlias renames the actor's own account and returns the updated
// identity snapshot for the session.
func (s *AccountService) ChangeAlias(ctx context.Context, actor models.Identity, newAlias string) (*models.Identity, error) {
	newAlias = strings.TrimSpace(newAlias)
	if newAlias == "" {
		return nil, common.ErrEmptyAlias
	}

	// Collision probe and rename run in one transaction; the unique
	// index still backstops a concurrent rename from another process.
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Accounts(tx)

		inUse, err := repo.AliasInUse(ctx, newAlias, actor.ID)
		if err != nil {
			return fmt.Errorf("error checking alias: %w", err)
		}
		if inUse {
			return common.ErrAliasTaken
		}

		return repo.SetAlias(ctx, actor.ID, newAlias)
	}); err != nil {
		return nil, err
	}

	return &models.Identity{ID: actor.ID, Alias: newAlias, IsAdmin: actor.IsAdmin}, nil
}

// ChangePassword replaces the actor's own password after re-verifying
// the current one.
func (s *AccountService) ChangePassword(ctx context.Context, actor models.Identity, current, newPassword string) error {
	if newPassword == "" {
		return common.ErrEmptyPassword
	}

	repo := s.repomanager.Accounts(s.db)

	acc, err := repo.GetByID(ctx, actor.ID)
	if err != nil {
		return fmt.Errorf("error looking up account: %w", err)
	}

	if !passhash.Verify(current, acc.PasswordHash) {
		return common.ErrWrongPassword
	}

	hash, err := passhash.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	if err := repo.SetPasswordHash(ctx, acc.ID, hash); err != nil {
		return fmt.Errorf("error storing password: %w", err)
	}

	return nil
}
