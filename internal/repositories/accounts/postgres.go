package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"todokeeper/internal/common"
	"todokeeper/internal/dbx"
	"todokeeper/internal/models"
)

// pgUniqueViolation is the SQLSTATE for unique constraint violations.
const pgUniqueViolation = "23505"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

func (r *PostgresRepository) Create(ctx context.Context, acc *models.Account) (*models.Account, error) {

	query :=
		`INSERT INTO accounts (id, alias, password_hash, is_admin, locked, failed_attempts)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		acc.ID, acc.Alias, acc.PasswordHash, acc.IsAdmin, acc.Locked, acc.FailedAttempts).
		Scan(&acc.CreatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.ErrAliasTaken
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return acc, nil
}

func (r *PostgresRepository) GetByAlias(ctx context.Context, alias string) (*models.Account, error) {
	query :=
		`SELECT id, alias, password_hash, is_admin, locked, failed_attempts, created_at
		 FROM accounts
		 WHERE alias = $1
		 `

	return r.scanOne(r.db.QueryRowContext(ctx, query, alias))
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Account, error) {
	query :=
		`SELECT id, alias, password_hash, is_admin, locked, failed_attempts, created_at
		 FROM accounts
		 WHERE id = $1
		 `

	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) scanOne(row *sql.Row) (*models.Account, error) {
	acc := &models.Account{}
	err := row.Scan(&acc.ID, &acc.Alias, &acc.PasswordHash,
		&acc.IsAdmin, &acc.Locked, &acc.FailedAttempts, &acc.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return acc, nil
}

func (r *PostgresRepository) AliasInUse(ctx context.Context, alias string, excludeID string) (bool, error) {
	// The id is compared as text: an empty excludeID then matches no
	// row, and the empty string never reaches a uuid cast (Postgres
	// does not promise an evaluation order inside WHERE).
	query :=
		`SELECT EXISTS (
		   SELECT 1 FROM accounts
		   WHERE lower(alias) = lower($1) AND id::text <> $2
		 )`

	var inUse bool
	if err := r.db.QueryRowContext(ctx, query, alias, excludeID).Scan(&inUse); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	return inUse, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Account, error) {
	query :=
		`SELECT id, alias, password_hash, is_admin, locked, failed_attempts, created_at
		 FROM accounts
		 ORDER BY created_at, id
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Account
	for rows.Next() {
		acc := &models.Account{}
		if err := rows.Scan(&acc.ID, &acc.Alias, &acc.PasswordHash,
			&acc.IsAdmin, &acc.Locked, &acc.FailedAttempts, &acc.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, acc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM accounts`).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) CommitLoginState(ctx context.Context, id string, failedAttempts int, locked bool) error {
	query :=
		`UPDATE accounts SET failed_attempts = $2, locked = $3
		 WHERE id = $1
		 `

	return r.exec(ctx, query, id, failedAttempts, locked)
}

func (r *PostgresRepository) SetPasswordHash(ctx context.Context, id string, hash string) error {
	query :=
		`UPDATE accounts SET password_hash = $2
		 WHERE id = $1
		 `

	return r.exec(ctx, query, id, hash)
}

func (r *PostgresRepository) SetAdmin(ctx context.Context, id string, isAdmin bool) error {
	query :=
		`UPDATE accounts SET is_admin = $2
		 WHERE id = $1
		 `

	return r.exec(ctx, query, id, isAdmin)
}

func (r *PostgresRepository) SetAlias(ctx context.Context, id string, alias string) error {
	query :=
		`UPDATE accounts SET alias = $2
		 WHERE id = $1
		 `

	err := r.exec(ctx, query, id, alias)
	if err != nil && isUniqueViolation(err) {
		return common.ErrAliasTaken
	}
	return err
}

func (r *PostgresRepository) Unlock(ctx context.Context, id string) error {
	query :=
		`UPDATE accounts SET locked = false, failed_attempts = 0
		 WHERE id = $1
		 `

	return r.exec(ctx, query, id)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	return r.exec(ctx, `DELETE FROM accounts WHERE id = $1`, id)
}

// exec runs a statement that must touch exactly one row; zero rows
// means the account id does not exist.
func (r *PostgresRepository) exec(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return err
		}
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}

	return nil
}
