// This file implements CategoryService. Categories are shared labels:
// any signed-in user may create and list them, only admins may delete.
package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"todokeeper/internal/common"
	"todokeeper/internal/models"
	"todokeeper/internal/repositories/repomanager"
)

type CategoryService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewCategoryService(db *sql.DB, m repomanager.RepositoryManager) *CategoryService {
	return &CategoryService{db: db, repomanager: m}
}

// Add creates a category with a unique name.
func (s *CategoryService) Add(ctx context.Context, actor models.Identity, name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, common.ErrEmptyName
	}

	cat := &models.Category{ID: uuid.NewString(), Name: name}

	if _, err := s.repomanager.Categories(s.db).Create(ctx, cat); err != nil {
		return nil, err
	}

	return cat, nil
}

// List returns all categories ordered by name.
func (s *CategoryService) List(ctx context.Context) ([]*models.Category, error) {
	return s.repomanager.Categories(s.db).List(ctx)
}

// Delete removes a category; tasks that used it keep running with the
// category cleared (FK SET NULL). Admin only.
func (s *CategoryService) Delete(ctx context.Context, actor models.Identity, categoryID string) error {
	if !actor.IsAdmin {
		return common.ErrNotOwner
	}

	if err := s.repomanager.Categories(s.db).Delete(ctx, categoryID); err != nil {
		return fmt.Errorf("error deleting category: %w", err)
	}

	return nil
}
