package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/smartware/smartware-api/internal/common"
	"github.com/smartware/smartware-api/internal/dbx"
	"github.com/smartware/smartware-api/internal/server/models"
	"github.com/smartware/smartware-api/internal/server/repositories/repomanager"
	"github.com/smartware/smartware-api/internal/slugx"
)

// ViewerInfo identifies the client behind a read, for view accounting.
type ViewerInfo struct {
	IPAddress string
	UserAgent string
}

// PostParams is the input to Create and Update. Slug is optional; when
// blank it is derived from Title. TagIDs fully replaces the post's tag set.
type PostParams struct {
	Title            string
	Slug             string
	Content          string
	Summary          string
	FeaturedImageURL string
	IsPublished      bool
	AuthorID         string
	TagIDs           []string
}

// PostService implements the blog post operations: public reads with view
// accounting, search, and authenticated create/update/delete.
type PostService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewPostService(db *sql.DB, m repomanager.RepositoryManager) *PostService {
	return &PostService{db: db, repomanager: m}
}

func (s *PostService) ListPublished(ctx context.Context) ([]*models.Post, error) {
	return s.repomanager.Posts(s.db).ListPublished(ctx)
}

func (s *PostService) ListByAuthor(ctx context.Context, authorID string) ([]*models.Post, error) {
	return s.repomanager.Posts(s.db).ListByAuthor(ctx, authorID)
}

func (s *PostService) ListByTagSlug(ctx context.Context, tagSlug string) ([]*models.Post, error) {
	return s.repomanager.Posts(s.db).ListByTagSlug(ctx, tagSlug)
}

// Search matches the query against title, content, and summary of
// published posts. A blank query is rejected rather than returning
// everything.
func (s *PostService) Search(ctx context.Context, query string) ([]*models.Post, error) {
	if strings.TrimSpace(query) == "" {
		return nil, common.ErrEmptyQuery
	}
	return s.repomanager.Posts(s.db).Search(ctx, query)
}

// GetByID returns the post (drafts included) and accounts the read.
func (s *PostService) GetByID(ctx context.Context, id string, viewer ViewerInfo) (*models.Post, error) {
	post, err := s.repomanager.Posts(s.db).GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.recordView(ctx, post, viewer); err != nil {
		return nil, err
	}
	return post, nil
}

// GetBySlug returns a published post by slug and accounts the read.
func (s *PostService) GetBySlug(ctx context.Context, slug string, viewer ViewerInfo) (*models.Post, error) {
	post, err := s.repomanager.Posts(s.db).GetPublishedBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if err := s.recordView(ctx, post, viewer); err != nil {
		return nil, err
	}
	return post, nil
}

// recordView bumps the counter and stores a post_views row in one
// transaction, then mirrors the increment on the in-memory post.
func (s *PostService) recordView(ctx context.Context, post *models.Post, viewer ViewerInfo) error {
	view := &models.PostView{
		ID:        uuid.NewString(),
		PostID:    post.ID,
		ViewedAt:  time.Now(),
		IPAddress: viewer.IPAddress,
		UserAgent: viewer.UserAgent,
	}
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repoTx := s.repomanager.Posts(tx)
		if err := repoTx.IncrementViewCount(ctx, post.ID); err != nil {
			return err
		}
		return repoTx.InsertView(ctx, view)
	})
	if err != nil {
		return fmt.Errorf("error recording view: %w", err)
	}
	post.ViewCount++
	return nil
}

// Create stores a new post and its tag links atomically and returns the
// stored post with author and tags attached.
func (s *PostService) Create(ctx context.Context, params PostParams) (*models.Post, error) {
	repo := s.repomanager.Posts(s.db)

	slug := params.Slug
	if strings.TrimSpace(slug) == "" {
		slug = slugx.Make(params.Title)
	}
	exists, err := repo.SlugExists(ctx, slug)
	if err != nil {
		return nil, common.ErrorInternal
	}
	if exists {
		return nil, common.ErrDuplicateSlug
	}

	// reject unknown authors up front, not with a broken FK later
	if _, err := s.repomanager.Authors(s.db).GetByID(ctx, params.AuthorID); err != nil {
		return nil, err
	}

	post := &models.Post{
		ID:               uuid.NewString(),
		Title:            params.Title,
		Slug:             slug,
		Content:          params.Content,
		Summary:          params.Summary,
		FeaturedImageURL: params.FeaturedImageURL,
		IsPublished:      params.IsPublished,
		AuthorID:         params.AuthorID,
	}
	if params.IsPublished {
		now := time.Now()
		post.PublishedAt = &now
	}

	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repoTx := s.repomanager.Posts(tx)
		if _, err := repoTx.Create(ctx, post); err != nil {
			return fmt.Errorf("error creating post: %w", err)
		}
		return repoTx.ReplaceTags(ctx, post.ID, params.TagIDs)
	}); err != nil {
		return nil, err
	}

	return repo.GetByID(ctx, post.ID)
}

// Update overwrites the post's fields and replaces its tag set atomically.
// First publication stamps published_at; unpublishing keeps the old stamp.
func (s *PostService) Update(ctx context.Context, id string, params PostParams) (*models.Post, error) {
	repo := s.repomanager.Posts(s.db)

	post, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	slug := params.Slug
	if strings.TrimSpace(slug) == "" {
		slug = slugx.Make(params.Title)
	}
	if slug != post.Slug {
		exists, err := repo.SlugExists(ctx, slug)
		if err != nil {
			return nil, common.ErrorInternal
		}
		if exists {
			return nil, common.ErrDuplicateSlug
		}
	}

	post.Title = params.Title
	post.Slug = slug
	post.Content = params.Content
	post.Summary = params.Summary
	post.FeaturedImageURL = params.FeaturedImageURL
	if params.AuthorID != "" {
		post.AuthorID = params.AuthorID
	}
	if params.IsPublished && post.PublishedAt == nil {
		now := time.Now()
		post.PublishedAt = &now
	}
	post.IsPublished = params.IsPublished

	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repoTx := s.repomanager.Posts(tx)
		if err := repoTx.Update(ctx, post); err != nil {
			return fmt.Errorf("error updating post: %w", err)
		}
		return repoTx.ReplaceTags(ctx, post.ID, params.TagIDs)
	}); err != nil {
		return nil, err
	}

	return repo.GetByID(ctx, id)
}

func (s *PostService) Delete(ctx context.Context, id string) error {
	return s.repomanager.Posts(s.db).SoftDelete(ctx, id)
}
