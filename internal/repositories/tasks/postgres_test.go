package tasks

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"todokeeper/internal/common"
	"todokeeper/internal/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func taskColumns() []string {
	return []string{"id", "title", "description", "created_on", "completed",
		"due_date", "category_id", "name", "owner_id"}
}

func TestCreate(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	created := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)
	task := &models.Task{
		ID: "t-1", Title: "buy milk", CreatedOn: created, OwnerID: "u-1",
	}

	mock.ExpectExec(`(?s)INSERT\s+INTO\s+tasks\s*\(id,\s*title,\s*description,\s*created_on,\s*completed,\s*due_date,\s*category_id,\s*owner_id\)`).
		WithArgs("t-1", "buy milk", "", created, false, nil, nil, "u-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	got, err := repo.Create(context.Background(), task)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != "t-1" {
		t.Fatalf("unexpected task: %+v", got)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)SELECT\s+t\.id,.*FROM\s+tasks\s+t\s+LEFT\s+JOIN\s+categories`).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "ghost")
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("want common.ErrNotFound, got %v", err)
	}
}

func TestGetByID_JoinsCategoryName(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	catID := "c-1"
	due := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(taskColumns()).
		AddRow("t-1", "buy milk", "2%", time.Now(), false, due, catID, "errands", "u-1")
	mock.ExpectQuery(`(?s)SELECT\s+t\.id,.*COALESCE\(c\.name,\s*''\).*WHERE\s+t\.id\s*=\s*\$1`).
		WithArgs("t-1").
		WillReturnRows(rows)

	got, err := repo.GetByID(context.Background(), "t-1")
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if got.CategoryName != "errands" || got.CategoryID == nil || *got.CategoryID != "c-1" {
		t.Fatalf("unexpected task: %+v", got)
	}
	if got.DueDate == nil || !got.DueDate.Equal(due) {
		t.Fatalf("unexpected due date: %v", got.DueDate)
	}
}

func TestListByOwner_Ordering(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows(taskColumns()).
		AddRow("t-1", "open", "", time.Now(), false, nil, nil, "", "u-1").
		AddRow("t-2", "done", "", time.Now(), true, nil, nil, "", "u-1")
	mock.ExpectQuery(`(?s)WHERE\s+t\.owner_id\s*=\s*\$1\s+ORDER\s+BY\s+t\.completed,\s*t\.due_date\s+NULLS\s+LAST,\s*t\.id`).
		WithArgs("u-1").
		WillReturnRows(rows)

	got, err := repo.ListByOwner(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("ListByOwner error: %v", err)
	}
	if len(got) != 2 || got[0].Completed || !got[1].Completed {
		t.Fatalf("unexpected tasks: %+v", got)
	}
}

func TestListAll(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows(taskColumns()).
		AddRow("t-1", "a", "", time.Now(), false, nil, nil, "", "u-1").
		AddRow("t-2", "b", "", time.Now(), false, nil, nil, "", "u-2")
	mock.ExpectQuery(`(?s)FROM\s+tasks\s+t\s+LEFT\s+JOIN\s+categories\s+c.*ORDER\s+BY`).
		WillReturnRows(rows)

	got, err := repo.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll error: %v", err)
	}
	if len(got) != 2 || got[1].OwnerID != "u-2" {
		t.Fatalf("unexpected tasks: %+v", got)
	}
}

func TestUpdate_PatchesOnlyProvidedFields(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	title := "renamed"
	patch := &models.TaskPatch{Title: &title}

	mock.ExpectExec(`(?s)UPDATE\s+tasks\s+SET\s+title\s*=\s*COALESCE\(\$2,\s*title\),.*category_id\s*=\s*COALESCE\(\$5::uuid,\s*category_id\)`).
		WithArgs("t-1", &title, nil, nil, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Update(context.Background(), "t-1", patch); err != nil {
		t.Fatalf("Update error: %v", err)
	}
}

func TestUpdate_EmptyPatchIsNoop(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	if err := repo.Update(context.Background(), "t-1", &models.TaskPatch{}); err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected db calls: %v", err)
	}
}

func TestSetCompleted_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE\s+tasks\s+SET\s+completed`).
		WithArgs("ghost", true).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SetCompleted(context.Background(), "ghost", true)
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("want common.ErrNotFound, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE\s+FROM\s+tasks\s+WHERE\s+id\s*=\s*\$1`).
		WithArgs("t-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), "t-1"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
}
