package tasks

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/akosarev/taskvault/internal/common"
	"github.com/akosarev/taskvault/internal/server/models"
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
	return []string{"id", "user_id", "text", "completed", "completed_at", "created_at", "updated_at"}
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*INSERT\s+INTO\s+tasks\s*\(id,\s*user_id,\s*text\)`

	now := time.Now()
	mock.ExpectQuery(q).
		WithArgs("t-1", "u-1", "buy milk").
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	task := &models.Task{ID: "t-1", CreatorID: "u-1", Text: "buy milk"}
	if err := repo.Create(context.Background(), task); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if task.CreatedAt.IsZero() {
		t.Fatalf("expected CreatedAt to be populated")
	}
}

func TestGetByID_ScopedToOwner(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*SELECT\s+.*FROM\s+tasks\s+WHERE\s+user_id\s*=\s*\$1\s+AND\s+id\s*=\s*\$2\s*$`

	now := time.Now()
	mock.ExpectQuery(q).
		WithArgs("u-1", "t-1").
		WillReturnRows(sqlmock.NewRows(taskColumns()).
			AddRow("t-1", "u-1", "buy milk", false, nil, now, now))

	got, err := repo.GetByID(context.Background(), "u-1", "t-1")
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if got.ID != "t-1" || got.CreatorID != "u-1" {
		t.Fatalf("unexpected task: %+v", got)
	}

	// same id, different user: repository returns not-found
	mock.ExpectQuery(q).
		WithArgs("u-2", "t-1").
		WillReturnError(sql.ErrNoRows)

	_, err = repo.GetByID(context.Background(), "u-2", "t-1")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected common.ErrorNotFound, got %v", err)
	}
}

func TestListByUser_ReturnsRows(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*SELECT\s+.*FROM\s+tasks\s+WHERE\s+user_id\s*=\s*\$1\s+ORDER\s+BY\s+created_at,\s*id\s*$`

	now := time.Now()
	mock.ExpectQuery(q).
		WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows(taskColumns()).
			AddRow("t-1", "u-1", "one", false, nil, now, now).
			AddRow("t-2", "u-1", "two", true, now, now, now))

	got, err := repo.ListByUser(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("ListByUser error: %v", err)
	}
	if len(got) != 2 || got[0].Text != "one" || !got[1].Completed {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestUpdate_NotOwned(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*UPDATE\s+tasks\s+SET`

	text := "new text"
	mock.ExpectQuery(q).
		WithArgs("u-2", "t-1", text, nil).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Update(context.Background(), "u-2", "t-1", TaskUpdate{Text: &text})
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected common.ErrorNotFound, got %v", err)
	}
}

func TestUpdate_CompletedStampsTimestamp(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*UPDATE\s+tasks\s+SET`

	now := time.Now()
	completed := true
	mock.ExpectQuery(q).
		WithArgs("u-1", "t-1", nil, completed).
		WillReturnRows(sqlmock.NewRows(taskColumns()).
			AddRow("t-1", "u-1", "one", true, now, now, now))

	got, err := repo.Update(context.Background(), "u-1", "t-1", TaskUpdate{Completed: &completed})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if !got.Completed || got.CompletedAt == nil {
		t.Fatalf("expected completed task with timestamp, got %+v", got)
	}
}

func TestDelete_ReturnsRemovedRow(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*DELETE\s+FROM\s+tasks\s+WHERE\s+user_id\s*=\s*\$1\s+AND\s+id\s*=\s*\$2\s+RETURNING`

	now := time.Now()
	mock.ExpectQuery(q).
		WithArgs("u-1", "t-1").
		WillReturnRows(sqlmock.NewRows(taskColumns()).
			AddRow("t-1", "u-1", "one", false, nil, now, now))

	got, err := repo.Delete(context.Background(), "u-1", "t-1")
	if err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if got.ID != "t-1" {
		t.Fatalf("unexpected task: %+v", got)
	}

	mock.ExpectQuery(q).
		WithArgs("u-1", "t-404").
		WillReturnError(sql.ErrNoRows)

	_, err = repo.Delete(context.Background(), "u-1", "t-404")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected common.ErrorNotFound, got %v", err)
	}
}
