// Package tags provides the PostgreSQL-backed repository for post tags.
package tags

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

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Tag, error) {
	query := `
		SELECT t.id, t.name, t.slug, t.created_at, t.updated_at,
		       count(p.id) FILTER (WHERE p.is_published AND NOT p.is_deleted) AS post_count
		FROM tags t
		LEFT JOIN post_tags pt ON pt.tag_id = t.id
		LEFT JOIN posts p ON p.id = pt.post_id
		WHERE NOT t.is_deleted
		GROUP BY t.id
		ORDER BY t.name
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Tag
	for rows.Next() {
		tag := &models.Tag{}
		if err := rows.Scan(&tag.ID, &tag.Name, &tag.Slug, &tag.CreatedAt, &tag.UpdatedAt, &tag.PostCount); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Tag, error) {
	query := `
		SELECT id, name, slug, created_at, updated_at
		FROM tags
		WHERE id = $1 AND NOT is_deleted
	`
	tag := &models.Tag{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&tag.ID, &tag.Name, &tag.Slug, &tag.CreatedAt, &tag.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return tag, nil
}

func (r *PostgresRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM tags WHERE slug = $1 AND NOT is_deleted)`
	if err := r.db.QueryRowContext(ctx, query, slug).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

func (r *PostgresRepository) Create(ctx context.Context, tag *models.Tag) (*models.Tag, error) {
	query := `
		INSERT INTO tags (id, name, slug)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`
	if err := r.db.QueryRowContext(ctx, query, tag.ID, tag.Name, tag.Slug).Scan(&tag.CreatedAt); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return tag, nil
}

func (r *PostgresRepository) Update(ctx context.Context, tag *models.Tag) error {
	query := `
		UPDATE tags
		SET name = $2, slug = $3, updated_at = now()
		WHERE id = $1 AND NOT is_deleted
	`
	if _, err := r.db.ExecContext(ctx, query, tag.ID, tag.Name, tag.Slug); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) SoftDelete(ctx context.Context, id string) error {
	query := `
		UPDATE tags
		SET is_deleted = true, updated_at = now()
		WHERE id = $1 AND NOT is_deleted
	`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
