package tasks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

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

const selectColumns = `t.id, t.title, t.description, t.created_on, t.completed,
	   t.due_date, t.category_id, COALESCE(c.name, ''), t.owner_id`

func (r *PostgresRepository) Create(ctx context.Context, task *models.Task) (*models.Task, error) {

	query :=
		`INSERT INTO tasks (id, title, description, created_on, completed, due_date, category_id, owner_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 `

	_, err := r.db.ExecContext(ctx, query,
		task.ID, task.Title, task.Description, task.CreatedOn,
		task.Completed, task.DueDate, task.CategoryID, task.OwnerID)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return task, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Task, error) {
	query := `SELECT ` + selectColumns + `
		 FROM tasks t
		 LEFT JOIN categories c ON t.category_id = c.id
		 WHERE t.id = $1
		 `

	task := &models.Task{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&task.ID, &task.Title, &task.Description, &task.CreatedOn,
		&task.Completed, &task.DueDate, &task.CategoryID, &task.CategoryName, &task.OwnerID)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return task, nil
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.Task, error) {
	query := `SELECT ` + selectColumns + `
		 FROM tasks t
		 LEFT JOIN categories c ON t.category_id = c.id
		 WHERE t.owner_id = $1
		 ORDER BY t.completed, t.due_date NULLS LAST, t.id
		 `

	return r.queryList(ctx, query, ownerID)
}

func (r *PostgresRepository) ListAll(ctx context.Context) ([]*models.Task, error) {
	query := `SELECT ` + selectColumns + `
		 FROM tasks t
		 LEFT JOIN categories c ON t.category_id = c.id
		 ORDER BY t.completed, t.due_date NULLS LAST, t.id
		 `

	return r.queryList(ctx, query)
}

func (r *PostgresRepository) queryList(ctx context.Context, query string, args ...any) ([]*models.Task, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Task
	for rows.Next() {
		task := &models.Task{}
		if err := rows.Scan(&task.ID, &task.Title, &task.Description, &task.CreatedOn,
			&task.Completed, &task.DueDate, &task.CategoryID, &task.CategoryName, &task.OwnerID); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

// Update applies only the provided patch fields through one parameterized
// statement; nil parameters leave the column untouched via COALESCE.
func (r *PostgresRepository) Update(ctx context.Context, id string, patch *models.TaskPatch) error {
	if patch.Empty() {
		return nil
	}

	query :=
		`UPDATE tasks SET
		   title       = COALESCE($2, title),
		   description = COALESCE($3, description),
		   due_date    = COALESCE($4, due_date),
		   category_id = COALESCE($5::uuid, category_id)
		 WHERE id = $1
		 `

	return r.exec(ctx, query, id, patch.Title, patch.Description, patch.DueDate, patch.CategoryID)
}

func (r *PostgresRepository) SetCompleted(ctx context.Context, id string, completed bool) error {
	query :=
		`UPDATE tasks SET completed = $2
		 WHERE id = $1
		 `

	return r.exec(ctx, query, id, completed)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	return r.exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
}

func (r *PostgresRepository) exec(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
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
