package tags

import (
	"context"

	"github.com/smartware/smartware-api/internal/server/models"
)

// Repository is the persistence contract for tags. List populates
// PostCount with the number of published posts carrying each tag.
type Repository interface {
	List(ctx context.Context) ([]*models.Tag, error)
	GetByID(ctx context.Context, id string) (*models.Tag, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	Create(ctx context.Context, tag *models.Tag) (*models.Tag, error)
	Update(ctx context.Context, tag *models.Tag) error
	SoftDelete(ctx context.Context, id string) error
}
