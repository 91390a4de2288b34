// This file implements TaskService. Ownership is enforced through the
// access policy before any row is touched: a refused operation returns
// ErrNotOwner instead of silently matching nothing.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"todokeeper/internal/access"
	"todokeeper/internal/common"
	"todokeeper/internal/models"
	"todokeeper/internal/repositories/repomanager"
)

type TaskService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	policy      *access.Policy
}

func NewTaskService(db *sql.DB, m repomanager.RepositoryManager, p *access.Policy) *TaskService {
	return &TaskService{db: db, repomanager: m, policy: p}
}

// Create adds a task owned by the actor. The title must be non-empty;
// a category, when given, must exist.
func (s *TaskService) Create(ctx context.Context, actor models.Identity, title, description string, dueDate *time.Time, categoryID *string) (*models.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, common.ErrEmptyTitle
	}

	if categoryID != nil {
		if _, err := s.repomanager.Categories(s.db).GetByID(ctx, *categoryID); err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return nil, common.ErrNotFound
			}
			return nil, fmt.Errorf("error looking up category: %w", err)
		}
	}

	task := &models.Task{
		ID:          uuid.NewString(),
		Title:       title,
		Description: strings.TrimSpace(description),
		CreatedOn:   time.Now(),
		DueDate:     dueDate,
		CategoryID:  categoryID,
		OwnerID:     actor.ID,
	}

	if _, err := s.repomanager.Tasks(s.db).Create(ctx, task); err != nil {
		return nil, fmt.Errorf("error creating task: %w", err)
	}

	return task, nil
}

// List returns the actor's tasks; admins see every account's tasks.
func (s *TaskService) List(ctx context.Context, actor models.Identity) ([]*models.Task, error) {
	repo := s.repomanager.Tasks(s.db)

	if actor.IsAdmin {
		return repo.ListAll(ctx)
	}
	return repo.ListByOwner(ctx, actor.ID)
}

// Get returns a single task after an ownership check.
func (s *TaskService) Get(ctx context.Context, actor models.Identity, taskID string) (*models.Task, error) {
	return s.authorize(ctx, actor, taskID, access.OpRead)
}

// Update applies a field patch to a task the actor may modify.
func (s *TaskService) Update(ctx context.Context, actor models.Identity, taskID string, patch *models.TaskPatch) error {
	task, err := s.authorize(ctx, actor, taskID, access.OpUpdate)
	if err != nil {
		return err
	}

	if patch.Empty() {
		return nil
	}

	if patch.Title != nil {
		t := strings.TrimSpace(*patch.Title)
		if t == "" {
			return common.ErrEmptyTitle
		}
		patch.Title = &t
	}

	if patch.CategoryID != nil {
		if _, err := s.repomanager.Categories(s.db).GetByID(ctx, *patch.CategoryID); err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return common.ErrNotFound
			}
			return fmt.Errorf("error looking up category: %w", err)
		}
	}

	if err := s.repomanager.Tasks(s.db).Update(ctx, task.ID, patch); err != nil {
		return fmt.Errorf("error updating task: %w", err)
	}

	return nil
}

// Complete marks a task as done.
func (s *TaskService) Complete(ctx context.Context, actor models.Identity, taskID string) error {
	task, err := s.authorize(ctx, actor, taskID, access.OpUpdate)
	if err != nil {
		return err
	}

	if err := s.repomanager.Tasks(s.db).SetCompleted(ctx, task.ID, true); err != nil {
		return fmt.Errorf("error completing task: %w", err)
	}

	return nil
}

// Delete removes a task.
func (s *TaskService) Delete(ctx context.Context, actor models.Identity, taskID string) error {
	task, err := s.authorize(ctx, actor, taskID, access.OpDelete)
	if err != nil {
		return err
	}

	if err := s.repomanager.Tasks(s.db).Delete(ctx, task.ID); err != nil {
		return fmt.Errorf("error deleting task: %w", err)
	}

	return nil
}

// authorize loads the task and asks the policy whether actor may run op
// on it. Missing tasks report ErrNotFound, refusals ErrNotOwner.
func (s *TaskService) authorize(ctx context.Context, actor models.Identity, taskID string, op access.Operation) (*models.Task, error) {
	task, err := s.repomanager.Tasks(s.db).GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("error looking up task: %w", err)
	}

	if !s.policy.CanAccess(actor, task.OwnerID, op) {
		return nil, common.ErrNotOwner
	}

	return task, nil
}
