// Package authors provides the PostgreSQL-backed repository for blog
// authors.
package authors

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/smartware/smartware-api/internal/common"
	"github.com/smartware/smartware-api/internal/dbx"
	"github.com/smartware/smartware-api/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Author, error) {
	query := `
		SELECT a.id, a.first_name, a.last_name, a.email, a.bio, a.avatar_url, a.created_at, a.updated_at,
		       count(p.id) FILTER (WHERE p.is_published AND NOT p.is_deleted) AS post_count
		FROM authors a
		LEFT JOIN posts p ON p.author_id = a.id
		WHERE NOT a.is_deleted
		GROUP BY a.id
		ORDER BY a.last_name, a.first_name
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Author
	for rows.Next() {
		a := &models.Author{}
		if err := rows.Scan(&a.ID, &a.FirstName, &a.LastName, &a.Email, &a.Bio, &a.AvatarURL,
			&a.CreatedAt, &a.UpdatedAt, &a.PostCount); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Author, error) {
	query := `
		SELECT id, first_name, last_name, email, bio, avatar_url, created_at, updated_at
		FROM authors
		WHERE id = $1 AND NOT is_deleted
	`
	a := &models.Author{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&a.ID, &a.FirstName, &a.LastName, &a.Email, &a.Bio, &a.AvatarURL, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return a, nil
}

func (r *PostgresRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM authors WHERE email = $1 AND NOT is_deleted)`
	if err := r.db.QueryRowContext(ctx, query, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

func (r *PostgresRepository) Create(ctx context.Context, author *models.Author) (*models.Author, error) {
	query := `
		INSERT INTO authors (id, first_name, last_name, email, bio, avatar_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		author.ID, author.FirstName, author.LastName, author.Email, author.Bio, author.AvatarURL,
	).Scan(&author.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return author, nil
}

func (r *PostgresRepository) Update(ctx context.Context, author *models.Author) error {
	query := `
		UPDATE authors
		SET first_name = $2, last_name = $3, email = $4, bio = $5, avatar_url = $6, updated_at = now()
		WHERE id = $1 AND NOT is_deleted
	`
	if _, err := r.db.ExecContext(ctx, query,
		author.ID, author.FirstName, author.LastName, author.Email, author.Bio, author.AvatarURL,
	); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) SoftDelete(ctx context.Context, id string) error {
	query := `
		UPDATE authors
		SET is_deleted = true, updated_at = now()
		WHERE id = $1 AND NOT is_deleted
	`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
