package posts

import (
	"context"

	"github.com/smartware/smartware-api/internal/server/models"
)

// Repository is the persistence contract for posts. Returned posts carry
// their author and tags. List operations cover published posts only;
// GetByID also returns drafts. Lookup misses return common.ErrorNotFound.
type Repository interface {
	ListPublished(ctx context.Context) ([]*models.Post, error)
	ListByAuthor(ctx context.Context, authorID string) ([]*models.Post, error)
	ListByTagSlug(ctx context.Context, tagSlug string) ([]*models.Post, error)
	Search(ctx context.Context, query string) ([]*models.Post, error)
	GetByID(ctx context.Context, id string) (*models.Post, error)
	GetPublishedBySlug(ctx context.Context, slug string) (*models.Post, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	Create(ctx context.Context, post *models.Post) (*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	ReplaceTags(ctx context.Context, postID string, tagIDs []string) error
	SoftDelete(ctx context.Context, id string) error
	IncrementViewCount(ctx context.Context, id string) error
	InsertView(ctx context.Context, view *models.PostView) error
}
