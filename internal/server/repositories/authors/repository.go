package authors

import (
	"context"

	"github.com/smartware/smartware-api/internal/server/models"
)

// Repository is the persistence contract for authors. List populates
// PostCount with the number of published posts per author.
type Repository interface {
	List(ctx context.Context) ([]*models.Author, error)
	GetByID(ctx context.Context, id string) (*models.Author, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, author *models.Author) (*models.Author, error)
	Update(ctx context.Context, author *models.Author) error
	SoftDelete(ctx context.Context, id string) error
}
