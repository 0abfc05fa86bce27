// Package posts provides the PostgreSQL-backed repository for blog posts,
// their tag links, and view records.
package posts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

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

// selectPost joins the author so every returned post is self-contained.
const selectPost = `
	SELECT p.id, p.title, p.slug, p.content, p.summary, p.featured_image_url,
	       p.is_published, p.published_at, p.view_count, p.author_id,
	       p.created_at, p.updated_at,
	       a.first_name, a.last_name, a.email, a.bio, a.avatar_url
	FROM posts p
	JOIN authors a ON a.id = p.author_id
`

func scanPost(scan func(dest ...any) error) (*models.Post, error) {
	p := &models.Post{Author: &models.Author{}}
	err := scan(
		&p.ID, &p.Title, &p.Slug, &p.Content, &p.Summary, &p.FeaturedImageURL,
		&p.IsPublished, &p.PublishedAt, &p.ViewCount, &p.AuthorID,
		&p.CreatedAt, &p.UpdatedAt,
		&p.Author.FirstName, &p.Author.LastName, &p.Author.Email, &p.Author.Bio, &p.Author.AvatarURL,
	)
	if err != nil {
		return nil, err
	}
	p.Author.ID = p.AuthorID
	return p, nil
}

func (r *PostgresRepository) queryPosts(ctx context.Context, query string, args ...any) ([]*models.Post, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Post
	for rows.Next() {
		p, err := scanPost(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	if err := r.loadTags(ctx, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) queryPost(ctx context.Context, query string, args ...any) (*models.Post, error) {
	p, err := scanPost(r.db.QueryRowContext(ctx, query, args...).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	if err := r.loadTags(ctx, []*models.Post{p}); err != nil {
		return nil, err
	}
	return p, nil
}

// loadTags fetches the tags for a batch of posts with one query and
// attaches them in place. Placeholders are expanded per post ID because
// the repository speaks plain database/sql.
func (r *PostgresRepository) loadTags(ctx context.Context, postList []*models.Post) error {
	if len(postList) == 0 {
		return nil
	}

	placeholders := make([]string, len(postList))
	args := make([]any, len(postList))
	byID := make(map[string]*models.Post, len(postList))
	for i, p := range postList {
		placeholders[i] = "$" + strconv.Itoa(i+1)
		args[i] = p.ID
		byID[p.ID] = p
	}

	query := `
		SELECT pt.post_id, t.id, t.name, t.slug, t.created_at
		FROM post_tags pt
		JOIN tags t ON t.id = pt.tag_id
		WHERE NOT t.is_deleted AND pt.post_id IN (` + strings.Join(placeholders, ", ") + `)
		ORDER BY t.name
	`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var postID string
		tag := models.Tag{}
		if err := rows.Scan(&postID, &tag.ID, &tag.Name, &tag.Slug, &tag.CreatedAt); err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		if p, ok := byID[postID]; ok {
			p.Tags = append(p.Tags, tag)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

const publishedFilter = ` WHERE p.is_published AND NOT p.is_deleted AND NOT a.is_deleted `
const newestFirst = ` ORDER BY p.published_at DESC `

func (r *PostgresRepository) ListPublished(ctx context.Context) ([]*models.Post, error) {
	return r.queryPosts(ctx, selectPost+publishedFilter+newestFirst)
}

func (r *PostgresRepository) ListByAuthor(ctx context.Context, authorID string) ([]*models.Post, error) {
	query := selectPost + publishedFilter + ` AND p.author_id = $1 ` + newestFirst
	return r.queryPosts(ctx, query, authorID)
}

func (r *PostgresRepository) ListByTagSlug(ctx context.Context, tagSlug string) ([]*models.Post, error) {
	query := selectPost + publishedFilter + `
		AND EXISTS (
			SELECT 1 FROM post_tags pt
			JOIN tags t ON t.id = pt.tag_id
			WHERE pt.post_id = p.id AND t.slug = $1 AND NOT t.is_deleted
		)
	` + newestFirst
	return r.queryPosts(ctx, query, tagSlug)
}

func (r *PostgresRepository) Search(ctx context.Context, query string) ([]*models.Post, error) {
	q := selectPost + publishedFilter + `
		AND (p.title ILIKE '%' || $1 || '%'
		  OR p.content ILIKE '%' || $1 || '%'
		  OR p.summary ILIKE '%' || $1 || '%')
	` + newestFirst
	return r.queryPosts(ctx, q, query)
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	query := selectPost + ` WHERE p.id = $1 AND NOT p.is_deleted `
	return r.queryPost(ctx, query, id)
}

func (r *PostgresRepository) GetPublishedBySlug(ctx context.Context, slug string) (*models.Post, error) {
	query := selectPost + publishedFilter + ` AND p.slug = $1 `
	return r.queryPost(ctx, query, slug)
}

func (r *PostgresRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM posts WHERE slug = $1 AND NOT is_deleted)`
	if err := r.db.QueryRowContext(ctx, query, slug).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

func (r *PostgresRepository) Create(ctx context.Context, post *models.Post) (*models.Post, error) {
	query := `
		INSERT INTO posts (id, title, slug, content, summary, featured_image_url, is_published, published_at, author_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		post.ID, post.Title, post.Slug, post.Content, post.Summary, post.FeaturedImageURL,
		post.IsPublished, post.PublishedAt, post.AuthorID,
	).Scan(&post.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return post, nil
}

func (r *PostgresRepository) Update(ctx context.Context, post *models.Post) error {
	query := `
		UPDATE posts
		SET title = $2, slug = $3, content = $4, summary = $5, featured_image_url = $6,
		    is_published = $7, published_at = $8, author_id = $9, updated_at = now()
		WHERE id = $1 AND NOT is_deleted
	`
	if _, err := r.db.ExecContext(ctx, query,
		post.ID, post.Title, post.Slug, post.Content, post.Summary, post.FeaturedImageURL,
		post.IsPublished, post.PublishedAt, post.AuthorID,
	); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// ReplaceTags swaps the post's tag set for tagIDs. Run inside a
// transaction together with Create/Update so a failed link insert does
// not leave a half-tagged post.
func (r *PostgresRepository) ReplaceTags(ctx context.Context, postID string, tagIDs []string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM post_tags WHERE post_id = $1`, postID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	for _, tagID := range tagIDs {
		if _, err := r.db.ExecContext(ctx,
			`INSERT INTO post_tags (post_id, tag_id) VALUES ($1, $2)`, postID, tagID); err != nil {
			return fmt.Errorf("db error: %w", err)
		}
	}
	return nil
}

func (r *PostgresRepository) SoftDelete(ctx context.Context, id string) error {
	query := `
		UPDATE posts
		SET is_deleted = true, updated_at = now()
		WHERE id = $1 AND NOT is_deleted
	`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) IncrementViewCount(ctx context.Context, id string) error {
	query := `UPDATE posts SET view_count = view_count + 1 WHERE id = $1 AND NOT is_deleted`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) InsertView(ctx context.Context, view *models.PostView) error {
	query := `
		INSERT INTO post_views (id, post_id, viewed_at, ip_address, user_agent)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := r.db.ExecContext(ctx, query,
		view.ID, view.PostID, view.ViewedAt, view.IPAddress, view.UserAgent); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
