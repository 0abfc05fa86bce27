package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/smartware/smartware-api/internal/dbx"
	"github.com/smartware/smartware-api/internal/server/models"
	authorsrepo "github.com/smartware/smartware-api/internal/server/repositories/authors"
	postsrepo "github.com/smartware/smartware-api/internal/server/repositories/posts"
	tagsrepo "github.com/smartware/smartware-api/internal/server/repositories/tags"
	usersrepo "github.com/smartware/smartware-api/internal/server/repositories/users"
)

// --- helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

// --- fake repositories ---

type fakeUsersRepo struct {
	createOut *models.User
	createErr error

	getOut *models.User
	getErr error

	byTokenOut *models.User
	byTokenErr error

	usernameExists bool
	emailExists    bool
	existsErr      error

	refreshUserID string
	refreshToken  string
	refreshExpiry time.Time
	refreshErr    error

	lastLoginAt *time.Time
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	return u, nil
}

func (f *fakeUsersRepo) GetByUsernameOrEmail(ctx context.Context, login string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeUsersRepo) GetByRefreshToken(ctx context.Context, token string) (*models.User, error) {
	if f.byTokenErr != nil {
		return nil, f.byTokenErr
	}
	return f.byTokenOut, nil
}

func (f *fakeUsersRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	return f.usernameExists, f.existsErr
}

func (f *fakeUsersRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	return f.emailExists, f.existsErr
}

func (f *fakeUsersRepo) UpdateRefreshToken(ctx context.Context, userID, token string, expiresAt time.Time) error {
	if f.refreshErr != nil {
		return f.refreshErr
	}
	f.refreshUserID = userID
	f.refreshToken = token
	f.refreshExpiry = expiresAt
	return nil
}

func (f *fakeUsersRepo) UpdateLastLogin(ctx context.Context, userID string, at time.Time) error {
	f.lastLoginAt = &at
	return nil
}

type fakePostsRepo struct {
	listOut []*models.Post
	listErr error

	getOut *models.Post
	getErr error

	slugExists    bool
	slugExistsErr error

	createErr error
	updateErr error

	replacedPostID string
	replacedTagIDs []string

	incremented []string
	views       []*models.PostView

	deletedID string
}

func (f *fakePostsRepo) ListPublished(ctx context.Context) ([]*models.Post, error) {
	return f.listOut, f.listErr
}
func (f *fakePostsRepo) ListByAuthor(ctx context.Context, authorID string) ([]*models.Post, error) {
	return f.listOut, f.listErr
}
func (f *fakePostsRepo) ListByTagSlug(ctx context.Context, tagSlug string) ([]*models.Post, error) {
	return f.listOut, f.listErr
}
func (f *fakePostsRepo) Search(ctx context.Context, query string) ([]*models.Post, error) {
	return f.listOut, f.listErr
}
func (f *fakePostsRepo) GetByID(ctx context.Context, id string) (*models.Post, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}
func (f *fakePostsRepo) GetPublishedBySlug(ctx context.Context, slug string) (*models.Post, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}
func (f *fakePostsRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	return f.slugExists, f.slugExistsErr
}
func (f *fakePostsRepo) Create(ctx context.Context, post *models.Post) (*models.Post, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.getOut = post
	return post, nil
}
func (f *fakePostsRepo) Update(ctx context.Context, post *models.Post) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.getOut = post
	return nil
}
func (f *fakePostsRepo) ReplaceTags(ctx context.Context, postID string, tagIDs []string) error {
	f.replacedPostID = postID
	f.replacedTagIDs = tagIDs
	return nil
}
func (f *fakePostsRepo) SoftDelete(ctx context.Context, id string) error {
	f.deletedID = id
	return nil
}
func (f *fakePostsRepo) IncrementViewCount(ctx context.Context, id string) error {
	f.incremented = append(f.incremented, id)
	return nil
}
func (f *fakePostsRepo) InsertView(ctx context.Context, view *models.PostView) error {
	f.views = append(f.views, view)
	return nil
}

type fakeTagsRepo struct {
	listOut []*models.Tag
	getOut  *models.Tag
	getErr  error

	slugExists bool

	createOut *models.Tag
	createErr error
	updateErr error

	deletedID string
}

func (f *fakeTagsRepo) List(ctx context.Context) ([]*models.Tag, error) { return f.listOut, nil }
func (f *fakeTagsRepo) GetByID(ctx context.Context, id string) (*models.Tag, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}
func (f *fakeTagsRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	return f.slugExists, nil
}
func (f *fakeTagsRepo) Create(ctx context.Context, tag *models.Tag) (*models.Tag, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	return tag, nil
}
func (f *fakeTagsRepo) Update(ctx context.Context, tag *models.Tag) error { return f.updateErr }
func (f *fakeTagsRepo) SoftDelete(ctx context.Context, id string) error {
	f.deletedID = id
	return nil
}

type fakeAuthorsRepo struct {
	listOut []*models.Author
	getOut  *models.Author
	getErr  error

	emailExists bool

	createOut *models.Author
	createErr error
	updateErr error

	deletedID string
}

func (f *fakeAuthorsRepo) List(ctx context.Context) ([]*models.Author, error) { return f.listOut, nil }
func (f *fakeAuthorsRepo) GetByID(ctx context.Context, id string) (*models.Author, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}
func (f *fakeAuthorsRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	return f.emailExists, nil
}
func (f *fakeAuthorsRepo) Create(ctx context.Context, author *models.Author) (*models.Author, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	return author, nil
}
func (f *fakeAuthorsRepo) Update(ctx context.Context, author *models.Author) error {
	return f.updateErr
}
func (f *fakeAuthorsRepo) SoftDelete(ctx context.Context, id string) error {
	f.deletedID = id
	return nil
}

// fakeRepoManager hands out the same fakes regardless of the DBTX, so
// transactional and plain paths hit identical state.
type fakeRepoManager struct {
	u *fakeUsersRepo
	p *fakePostsRepo
	t *fakeTagsRepo
	a *fakeAuthorsRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository       { return m.u }
func (m *fakeRepoManager) Posts(db dbx.DBTX) postsrepo.Repository       { return m.p }
func (m *fakeRepoManager) Tags(db dbx.DBTX) tagsrepo.Repository         { return m.t }
func (m *fakeRepoManager) Authors(db dbx.DBTX) authorsrepo.Repository   { return m.a }
