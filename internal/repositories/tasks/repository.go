// Package tasks implements task storage. Ownership filtering is not done
// here: services check the access policy and then operate on ids, so a
// refused operation is reported instead of silently matching zero rows.
package tasks

import (
	"context"

	"todokeeper/internal/models"
)

type Repository interface {
	Create(ctx context.Context, task *models.Task) (*models.Task, error)
	GetByID(ctx context.Context, id string) (*models.Task, error)

	// ListByOwner returns the owner's tasks, open ones first, then by
	// due date (tasks without one last), then by id.
	ListByOwner(ctx context.Context, ownerID string) ([]*models.Task, error)

	// ListAll returns every task in the same order; admin view.
	ListAll(ctx context.Context) ([]*models.Task, error)

	// Update applies the non-nil fields of patch in a single statement.
	Update(ctx context.Context, id string, patch *models.TaskPatch) error

	SetCompleted(ctx context.Context, id string, completed bool) error
	Delete(ctx context.Context, id string) error
}
