package authors

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/smartware/smartware-api/internal/common"
	"github.com/smartware/smartware-api/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestList_WithPostCounts(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{
		"id", "first_name", "last_name", "email", "bio", "avatar_url", "created_at", "updated_at", "post_count",
	}).AddRow("a-1", "Jane", "Doe", "jane@x.com", "", "", time.Now(), nil, 4)

	mock.ExpectQuery(`(?s)SELECT\s+a\.id.*FROM\s+authors\s+a\s+LEFT\s+JOIN\s+posts`).
		WillReturnRows(rows)

	got, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(got) != 1 || got[0].PostCount != 4 || got[0].FullName() != "Jane Doe" {
		t.Fatalf("unexpected authors: %+v", got)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)SELECT\s+id,\s*first_name.*FROM\s+authors`).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected common.ErrorNotFound, got %v", err)
	}
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)INSERT\s+INTO\s+authors.*RETURNING\s+created_at`).
		WithArgs("a-1", "Jane", "Doe", "jane@x.com", "bio", "").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

	a := &models.Author{ID: "a-1", FirstName: "Jane", LastName: "Doe", Email: "jane@x.com", Bio: "bio"}
	got, err := repo.Create(context.Background(), a)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.CreatedAt.IsZero() {
		t.Fatalf("created_at not captured")
	}
}

func TestUpdate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)UPDATE\s+authors\s+SET`).
		WillReturnError(errors.New("db down"))

	err := repo.Update(context.Background(), &models.Author{ID: "a-1"})
	if err == nil {
		t.Fatalf("expected wrapped db error, got nil")
	}
}
