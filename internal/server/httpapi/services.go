// Package httpapi exposes the application services over REST for the SPA:
// JSON in, JSON out, bearer-token auth on every mutating route.
package httpapi

import (
	"context"

	"github.com/smartware/smartware-api/internal/server/models"
	"github.com/smartware/smartware-api/internal/server/services"
)

// The handler set depends on these slices of the service layer, so tests
// can swap in fakes without a database.

type AuthService interface {
	Register(ctx context.Context, params services.RegisterParams) (*services.AuthResult, error)
	Login(ctx context.Context, login, password string) (*services.AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (*services.AuthResult, error)
}

type PostService interface {
	ListPublished(ctx context.Context) ([]*models.Post, error)
	ListByAuthor(ctx context.Context, authorID string) ([]*models.Post, error)
	ListByTagSlug(ctx context.Context, tagSlug string) ([]*models.Post, error)
	Search(ctx context.Context, query string) ([]*models.Post, error)
	GetByID(ctx context.Context, id string, viewer services.ViewerInfo) (*models.Post, error)
	GetBySlug(ctx context.Context, slug string, viewer services.ViewerInfo) (*models.Post, error)
	Create(ctx context.Context, params services.PostParams) (*models.Post, error)
	Update(ctx context.Context, id string, params services.PostParams) (*models.Post, error)
	Delete(ctx context.Context, id string) error
}

type TagService interface {
	List(ctx context.Context) ([]*models.Tag, error)
	Get(ctx context.Context, id string) (*services.TagDetail, error)
	Create(ctx context.Context, name string) (*models.Tag, error)
	Update(ctx context.Context, id, name string) (*models.Tag, error)
	Delete(ctx context.Context, id string) error
}

type AuthorService interface {
	List(ctx context.Context) ([]*models.Author, error)
	Get(ctx context.Context, id string) (*services.AuthorDetail, error)
	Create(ctx context.Context, params services.AuthorParams) (*models.Author, error)
	Update(ctx context.Context, id string, params services.AuthorParams) (*models.Author, error)
	Delete(ctx context.Context, id string) error
}
