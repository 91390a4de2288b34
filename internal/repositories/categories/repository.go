// Package categories implements storage for the shared task categories.
package categories

import (
	"context"

	"todokeeper/internal/models"
)

type Repository interface {
	Create(ctx context.Context, cat *models.Category) (*models.Category, error)
	GetByID(ctx context.Context, id string) (*models.Category, error)
	List(ctx context.Context) ([]*models.Category, error)
	Delete(ctx context.Context, id string) error
}
