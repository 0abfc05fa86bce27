// Package users provides the PostgreSQL-backed repository for user
// accounts, including the refresh-token columns the auth flow rotates.
package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/smartware/smartware-api/internal/common"
	"github.com/smartware/smartware-api/internal/dbx"
	"github.com/smartware/smartware-api/internal/server/models"
)

// PostgresRepository implements Repository over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const userColumns = `id, username, email, password_hash, first_name, last_name, avatar_url,
		role, is_active, email_confirmed, last_login_at, refresh_token, refresh_token_expires_at,
		created_at, updated_at`

func scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	var refreshToken sql.NullString
	err := row.Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&user.FirstName, &user.LastName, &user.AvatarURL,
		&user.Role, &user.IsActive, &user.EmailConfirmed,
		&user.LastLoginAt, &refreshToken, &user.RefreshTokenExpiresAt,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	user.RefreshToken = refreshToken.String
	return user, nil
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query := `
		INSERT INTO users (id, username, email, password_hash, first_name, last_name, role, is_active, email_confirmed)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		user.ID, user.Username, user.Email, user.PasswordHash,
		user.FirstName, user.LastName, user.Role, user.IsActive, user.EmailConfirmed,
	).Scan(&user.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}

// GetByUsernameOrEmail returns the user whose username or email equals
// login, matching the single-input login form.
func (r *PostgresRepository) GetByUsernameOrEmail(ctx context.Context, login string) (*models.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE (username = $1 OR email = $1) AND NOT is_deleted
	`
	return scanUser(r.db.QueryRowContext(ctx, query, login))
}

func (r *PostgresRepository) GetByRefreshToken(ctx context.Context, token string) (*models.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE refresh_token = $1 AND NOT is_deleted
	`
	return scanUser(r.db.QueryRowContext(ctx, query, token))
}

func (r *PostgresRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1 AND NOT is_deleted)`, username)
}

func (r *PostgresRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1 AND NOT is_deleted)`, email)
}

func (r *PostgresRepository) exists(ctx context.Context, query string, arg string) (bool, error) {
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, arg).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

// UpdateRefreshToken overwrites the user's stored refresh token and its
// expiry; the previous token becomes invalid by being replaced.
func (r *PostgresRepository) UpdateRefreshToken(ctx context.Context, userID, token string, expiresAt time.Time) error {
	query := `
		UPDATE users
		SET refresh_token = $2, refresh_token_expires_at = $3, updated_at = now()
		WHERE id = $1 AND NOT is_deleted
	`
	if _, err := r.db.ExecContext(ctx, query, userID, token, expiresAt); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) UpdateLastLogin(ctx context.Context, userID string, at time.Time) error {
	query := `
		UPDATE users
		SET last_login_at = $2
		WHERE id = $1 AND NOT is_deleted
	`
	if _, err := r.db.ExecContext(ctx, query, userID, at); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
