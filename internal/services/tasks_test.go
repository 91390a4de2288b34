package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todokeeper/internal/access"
	"todokeeper/internal/common"
	"todokeeper/internal/models"
)

var (
	taskAlice = models.Identity{ID: "u-alice", Alias: "alice"}
	taskBob   = models.Identity{ID: "u-bob", Alias: "bob"}
	taskRoot  = models.Identity{ID: "u-root", Alias: "root", IsAdmin: true}
)

func newTaskService(rm *fakeRepoManager) *TaskService {
	return NewTaskService(nil, rm, access.NewPolicy())
}

func TestTaskCreate_Validation(t *testing.T) {
	s := newTaskService(newFakeRepoManager())
	ctx := context.Background()

	_, err := s.Create(ctx, taskAlice, "   ", "", nil, nil)
	assert.ErrorIs(t, err, common.ErrEmptyTitle)

	missing := "cat-missing"
	_, err = s.Create(ctx, taskAlice, "title", "", nil, &missing)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestTaskCreate_Success(t *testing.T) {
	rm := newFakeRepoManager()
	rm.categories.byID["cat-1"] = &models.Category{ID: "cat-1", Name: "home"}
	s := newTaskService(rm)

	due := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	catID := "cat-1"
	task, err := s.Create(context.Background(), taskAlice, "  buy milk  ", " soon ", &due, &catID)
	require.NoError(t, err)

	assert.Equal(t, "buy milk", task.Title)
	assert.Equal(t, "soon", task.Description)
	assert.Equal(t, taskAlice.ID, task.OwnerID)
	assert.False(t, task.Completed)
	require.NotNil(t, rm.tasks.byID[task.ID])
}

func TestTaskList_OwnerFilterAndAdminView(t *testing.T) {
	rm := newFakeRepoManager()
	s := newTaskService(rm)
	ctx := context.Background()

	_, err := s.Create(ctx, taskAlice, "a1", "", nil, nil)
	require.NoError(t, err)
	_, err = s.Create(ctx, taskBob, "b1", "", nil, nil)
	require.NoError(t, err)

	mine, err := s.List(ctx, taskAlice)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "a1", mine[0].Title)

	all, err := s.List(ctx, taskRoot)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestTaskMutation_NotOwner(t *testing.T) {
	rm := newFakeRepoManager()
	s := newTaskService(rm)
	ctx := context.Background()

	task, err := s.Create(ctx, taskAlice, "a1", "", nil, nil)
	require.NoError(t, err)

	title := "hijack"
	assert.ErrorIs(t, s.Update(ctx, taskBob, task.ID, &models.TaskPatch{Title: &title}), common.ErrNotOwner)
	assert.ErrorIs(t, s.Complete(ctx, taskBob, task.ID), common.ErrNotOwner)
	assert.ErrorIs(t, s.Delete(ctx, taskBob, task.ID), common.ErrNotOwner)
	_, err = s.Get(ctx, taskBob, task.ID)
	assert.ErrorIs(t, err, common.ErrNotOwner)

	// The task is untouched.
	assert.Equal(t, "a1", rm.tasks.byID[task.ID].Title)
	assert.False(t, rm.tasks.byID[task.ID].Completed)
}

func TestTaskUpdate_PatchSemantics(t *testing.T) {
	rm := newFakeRepoManager()
	s := newTaskService(rm)
	ctx := context.Background()

	task, err := s.Create(ctx, taskAlice, "a1", "desc", nil, nil)
	require.NoError(t, err)

	// Only provided fields change.
	title := "renamed"
	require.NoError(t, s.Update(ctx, taskAlice, task.ID, &models.TaskPatch{Title: &title}))
	assert.Equal(t, "renamed", rm.tasks.byID[task.ID].Title)
	assert.Equal(t, "desc", rm.tasks.byID[task.ID].Description)

	empty := "   "
	assert.ErrorIs(t, s.Update(ctx, taskAlice, task.ID, &models.TaskPatch{Title: &empty}), common.ErrEmptyTitle)

	// An empty patch is a no-op, not an error.
	require.NoError(t, s.Update(ctx, taskAlice, task.ID, &models.TaskPatch{}))
}

func TestTaskCompleteAndDelete(t *testing.T) {
	rm := newFakeRepoManager()
	s := newTaskService(rm)
	ctx := context.Background()

	task, err := s.Create(ctx, taskAlice, "a1", "", nil, nil)
	require.NoError(t, err)

	require.NoError(t, s.Complete(ctx, taskAlice, task.ID))
	assert.True(t, rm.tasks.byID[task.ID].Completed)

	// Admins may act on anyone's task.
	require.NoError(t, s.Delete(ctx, taskRoot, task.ID))

	assert.ErrorIs(t, s.Complete(ctx, taskAlice, task.ID), common.ErrNotFound)
}
