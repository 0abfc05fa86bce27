package users

import (
	"context"
	"time"

	"github.com/smartware/smartware-api/internal/server/models"
)

// Repository is the persistence contract for user accounts. All reads see
// non-deleted users only. Lookup misses return common.ErrorNotFound.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByUsernameOrEmail(ctx context.Context, login string) (*models.User, error)
	GetByRefreshToken(ctx context.Context, token string) (*models.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UpdateRefreshToken(ctx context.Context, userID, token string, expiresAt time.Time) error
	UpdateLastLogin(ctx context.Context, userID string, at time.Time) error
}
