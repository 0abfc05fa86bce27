package posts

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

func postColumns() []string {
	return []string{
		"id", "title", "slug", "content", "summary", "featured_image_url",
		"is_published", "published_at", "view_count", "author_id",
		"created_at", "updated_at",
		"first_name", "last_name", "email", "bio", "avatar_url",
	}
}

func addPostRow(rows *sqlmock.Rows, id, title, slug string) *sqlmock.Rows {
	now := time.Now()
	return rows.AddRow(
		id, title, slug, "content", "summary", "",
		true, now, 3, "a-1",
		now, nil,
		"Jane", "Doe", "jane@x.com", "", "",
	)
}

func tagColumns() []string {
	return []string{"post_id", "id", "name", "slug", "created_at"}
}

func TestListPublished_AttachesAuthorAndTags(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)SELECT\s+p\.id.*FROM\s+posts\s+p\s+JOIN\s+authors\s+a.*WHERE\s+p\.is_published`).
		WillReturnRows(addPostRow(sqlmock.NewRows(postColumns()), "p-1", "Hello", "hello"))

	tagRows := sqlmock.NewRows(tagColumns()).
		AddRow("p-1", "t-1", "Go", "go", time.Now()).
		AddRow("p-1", "t-2", "Web", "web", time.Now())
	mock.ExpectQuery(`(?s)SELECT\s+pt\.post_id.*FROM\s+post_tags\s+pt.*IN\s+\(\$1\)`).
		WithArgs("p-1").
		WillReturnRows(tagRows)

	got, err := repo.ListPublished(context.Background())
	if err != nil {
		t.Fatalf("ListPublished error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 post, got %d", len(got))
	}
	p := got[0]
	if p.Author == nil || p.Author.FirstName != "Jane" || p.Author.ID != "a-1" {
		t.Fatalf("author not attached: %+v", p.Author)
	}
	if len(p.Tags) != 2 || p.Tags[0].Name != "Go" || p.Tags[1].Slug != "web" {
		t.Fatalf("tags not attached: %+v", p.Tags)
	}
}

func TestListPublished_Empty(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)SELECT\s+p\.id.*WHERE\s+p\.is_published`).
		WillReturnRows(sqlmock.NewRows(postColumns()))

	got, err := repo.ListPublished(context.Background())
	if err != nil {
		t.Fatalf("ListPublished error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no posts, got %d", len(got))
	}
	// no tag query is issued for an empty batch
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)SELECT\s+p\.id.*WHERE\s+p\.id\s*=\s*\$1`).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected common.ErrorNotFound, got %v", err)
	}
}

func TestGetPublishedBySlug_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)SELECT\s+p\.id.*WHERE\s+p\.is_published.*AND\s+p\.slug\s*=\s*\$1`).
		WithArgs("hello").
		WillReturnRows(addPostRow(sqlmock.NewRows(postColumns()), "p-1", "Hello", "hello"))
	mock.ExpectQuery(`(?s)SELECT\s+pt\.post_id.*FROM\s+post_tags`).
		WithArgs("p-1").
		WillReturnRows(sqlmock.NewRows(tagColumns()))

	got, err := repo.GetPublishedBySlug(context.Background(), "hello")
	if err != nil {
		t.Fatalf("GetPublishedBySlug error: %v", err)
	}
	if got.Slug != "hello" {
		t.Fatalf("unexpected post: %+v", got)
	}
}

func TestSlugExists(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT\s+EXISTS\s*\(SELECT\s+1\s+FROM\s+posts\s+WHERE\s+slug`).
		WithArgs("taken").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.SlugExists(context.Background(), "taken")
	if err != nil {
		t.Fatalf("SlugExists error: %v", err)
	}
	if !exists {
		t.Fatalf("expected true")
	}
}

func TestReplaceTags_DeletesThenInserts(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE\s+FROM\s+post_tags\s+WHERE\s+post_id\s*=\s*\$1`).
		WithArgs("p-1").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`INSERT\s+INTO\s+post_tags`).
		WithArgs("p-1", "t-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT\s+INTO\s+post_tags`).
		WithArgs("p-1", "t-2").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.ReplaceTags(context.Background(), "p-1", []string{"t-1", "t-2"}); err != nil {
		t.Fatalf("ReplaceTags error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestIncrementViewCount(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE\s+posts\s+SET\s+view_count\s*=\s*view_count\s*\+\s*1`).
		WithArgs("p-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.IncrementViewCount(context.Background(), "p-1"); err != nil {
		t.Fatalf("IncrementViewCount error: %v", err)
	}
}

func TestInsertView(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	viewed := time.Now()
	mock.ExpectExec(`INSERT\s+INTO\s+post_views`).
		WithArgs("v-1", "p-1", viewed, "203.0.113.9", "curl/8").
		WillReturnResult(sqlmock.NewResult(0, 1))

	view := &models.PostView{ID: "v-1", PostID: "p-1", ViewedAt: viewed, IPAddress: "203.0.113.9", UserAgent: "curl/8"}
	if err := repo.InsertView(context.Background(), view); err != nil {
		t.Fatalf("InsertView error: %v", err)
	}
}

func TestSoftDelete(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE\s+posts\s+SET\s+is_deleted\s*=\s*true`).
		WithArgs("p-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.SoftDelete(context.Background(), "p-1"); err != nil {
		t.Fatalf("SoftDelete error: %v", err)
	}
}
