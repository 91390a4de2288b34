package services

import (
	"context"
	"database/sql"
	"log/slog"
	"sort"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"todokeeper/internal/common"
	"todokeeper/internal/dbx"
	"todokeeper/internal/logging"
	"todokeeper/internal/models"
	accountsrepo "todokeeper/internal/repositories/accounts"
	categoriesrepo "todokeeper/internal/repositories/categories"
	tasksrepo "todokeeper/internal/repositories/tasks"
)

// --- in-memory fakes backing the service tests ---

type memAccountsRepo struct {
	byID map[string]*models.Account
	err  error // when set, every call fails with it
}

func newMemAccountsRepo() *memAccountsRepo {
	return &memAccountsRepo{byID: make(map[string]*models.Account)}
}

func (m *memAccountsRepo) snapshot(a *models.Account) *models.Account {
	cp := *a
	return &cp
}

func (m *memAccountsRepo) Create(ctx context.Context, acc *models.Account) (*models.Account, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, a := range m.byID {
		if strings.EqualFold(a.Alias, acc.Alias) {
			return nil, common.ErrAliasTaken
		}
	}
	m.byID[acc.ID] = m.snapshot(acc)
	return acc, nil
}

func (m *memAccountsRepo) GetByAlias(ctx context.Context, alias string) (*models.Account, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, a := range m.byID {
		if a.Alias == alias {
			return m.snapshot(a), nil
		}
	}
	return nil, common.ErrNotFound
}

func (m *memAccountsRepo) GetByID(ctx context.Context, id string) (*models.Account, error) {
	if m.err != nil {
		return nil, m.err
	}
	a, ok := m.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return m.snapshot(a), nil
}

func (m *memAccountsRepo) AliasInUse(ctx context.Context, alias string, excludeID string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	for _, a := range m.byID {
		if a.ID != excludeID && strings.EqualFold(a.Alias, alias) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memAccountsRepo) List(ctx context.Context) ([]*models.Account, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []*models.Account
	for _, a := range m.byID {
		result = append(result, m.snapshot(a))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Alias < result[j].Alias })
	return result, nil
}

func (m *memAccountsRepo) Count(ctx context.Context) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	return int64(len(m.byID)), nil
}

func (m *memAccountsRepo) CommitLoginState(ctx context.Context, id string, failedAttempts int, locked bool) error {
	if m.err != nil {
		return m.err
	}
	a, ok := m.byID[id]
	if !ok {
		return common.ErrNotFound
	}
	a.FailedAttempts = failedAttempts
	a.Locked = locked
	return nil
}

func (m *memAccountsRepo) SetPasswordHash(ctx context.Context, id string, hash string) error {
	a, ok := m.byID[id]
	if !ok {
		return common.ErrNotFound
	}
	a.PasswordHash = hash
	return nil
}

func (m *memAccountsRepo) SetAdmin(ctx context.Context, id string, isAdmin bool) error {
	a, ok := m.byID[id]
	if !ok {
		return common.ErrNotFound
	}
	a.IsAdmin = isAdmin
	return nil
}

func (m *memAccountsRepo) SetAlias(ctx context.Context, id string, alias string) error {
	a, ok := m.byID[id]
	if !ok {
		return common.ErrNotFound
	}
	a.Alias = alias
	return nil
}

func (m *memAccountsRepo) Unlock(ctx context.Context, id string) error {
	a, ok := m.byID[id]
	if !ok {
		return common.ErrNotFound
	}
	a.Locked = false
	a.FailedAttempts = 0
	return nil
}

func (m *memAccountsRepo) Delete(ctx context.Context, id string) error {
	if _, ok := m.byID[id]; !ok {
		return common.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

type memTasksRepo struct {
	byID map[string]*models.Task
}

func newMemTasksRepo() *memTasksRepo {
	return &memTasksRepo{byID: make(map[string]*models.Task)}
}

func (m *memTasksRepo) snapshot(t *models.Task) *models.Task {
	cp := *t
	return &cp
}

func (m *memTasksRepo) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	m.byID[task.ID] = m.snapshot(task)
	return task, nil
}

func (m *memTasksRepo) GetByID(ctx context.Context, id string) (*models.Task, error) {
	t, ok := m.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return m.snapshot(t), nil
}

func (m *memTasksRepo) list(filter func(*models.Task) bool) []*models.Task {
	var result []*models.Task
	for _, t := range m.byID {
		if filter(t) {
			result = append(result, m.snapshot(t))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Title < result[j].Title })
	return result
}

func (m *memTasksRepo) ListByOwner(ctx context.Context, ownerID string) ([]*models.Task, error) {
	return m.list(func(t *models.Task) bool { return t.OwnerID == ownerID }), nil
}

func (m *memTasksRepo) ListAll(ctx context.Context) ([]*models.Task, error) {
	return m.list(func(*models.Task) bool { return true }), nil
}

func (m *memTasksRepo) Update(ctx context.Context, id string, patch *models.TaskPatch) error {
	t, ok := m.byID[id]
	if !ok {
		return common.ErrNotFound
	}
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.DueDate != nil {
		t.DueDate = patch.DueDate
	}
	if patch.CategoryID != nil {
		t.CategoryID = patch.CategoryID
	}
	return nil
}

func (m *memTasksRepo) SetCompleted(ctx context.Context, id string, completed bool) error {
	t, ok := m.byID[id]
	if !ok {
		return common.ErrNotFound
	}
	t.Completed = completed
	return nil
}

func (m *memTasksRepo) Delete(ctx context.Context, id string) error {
	if _, ok := m.byID[id]; !ok {
		return common.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

type memCategoriesRepo struct {
	byID map[string]*models.Category
}

func newMemCategoriesRepo() *memCategoriesRepo {
	return &memCategoriesRepo{byID: make(map[string]*models.Category)}
}

func (m *memCategoriesRepo) Create(ctx context.Context, cat *models.Category) (*models.Category, error) {
	for _, c := range m.byID {
		if c.Name == cat.Name {
			return nil, common.ErrNameTaken
		}
	}
	cp := *cat
	m.byID[cat.ID] = &cp
	return cat, nil
}

func (m *memCategoriesRepo) GetByID(ctx context.Context, id string) (*models.Category, error) {
	c, ok := m.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *memCategoriesRepo) List(ctx context.Context) ([]*models.Category, error) {
	var result []*models.Category
	for _, c := range m.byID {
		cp := *c
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *memCategoriesRepo) Delete(ctx context.Context, id string) error {
	if _, ok := m.byID[id]; !ok {
		return common.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

type fakeRepoManager struct {
	accounts   *memAccountsRepo
	tasks      *memTasksRepo
	categories *memCategoriesRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		accounts:   newMemAccountsRepo(),
		tasks:      newMemTasksRepo(),
		categories: newMemCategoriesRepo(),
	}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Accounts(db dbx.DBTX) accountsrepo.Repository {
	return m.accounts
}
func (m *fakeRepoManager) Tasks(db dbx.DBTX) tasksrepo.Repository {
	return m.tasks
}
func (m *fakeRepoManager) Categories(db dbx.DBTX) categoriesrepo.Repository {
	return m.categories
}

// newTxDB returns a sqlmock-backed handle for service paths that open
// transactions; data access still goes through the in-memory fakes,
// so tests only set Begin/Commit/Rollback expectations on it.
func newTxDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func testLogger(t *testing.T) logging.Logger {
	t.Helper()
	return logging.NewSlogLogger(slog.New(slog.DiscardHandler))
}
