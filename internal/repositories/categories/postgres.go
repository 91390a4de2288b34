package categories

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

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, cat *models.Category) (*models.Category, error) {

	query :=
		`INSERT INTO categories (id, name)
		 VALUES ($1, $2)
		 `

	_, err := r.db.ExecContext(ctx, query, cat.ID, cat.Name)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, common.ErrNameTaken
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return cat, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Category, error) {
	query :=
		`SELECT id, name FROM categories
		 WHERE id = $1
		 `

	cat := &models.Category{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&cat.ID, &cat.Name)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return cat, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Category, error) {
	query :=
		`SELECT id, name FROM categories
		 ORDER BY name
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Category
	for rows.Next() {
		cat := &models.Category{}
		if err := rows.Scan(&cat.ID, &cat.Name); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, cat)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
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
