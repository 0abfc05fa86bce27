package services

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/smartware/smartware-api/internal/common"
	"github.com/smartware/smartware-api/internal/server/models"
	"github.com/smartware/smartware-api/internal/server/repositories/repomanager"
	"github.com/smartware/smartware-api/internal/slugx"
)

// TagDetail pairs a tag with the published posts carrying it.
type TagDetail struct {
	Tag   *models.Tag
	Posts []*models.Post
}

// TagService implements tag CRUD with slug generation and uniqueness.
type TagService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewTagService(db *sql.DB, m repomanager.RepositoryManager) *TagService {
	return &TagService{db: db, repomanager: m}
}

func (s *TagService) List(ctx context.Context) ([]*models.Tag, error) {
	return s.repomanager.Tags(s.db).List(ctx)
}

// Get returns the tag together with its published posts.
func (s *TagService) Get(ctx context.Context, id string) (*TagDetail, error) {
	tag, err := s.repomanager.Tags(s.db).GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	posts, err := s.repomanager.Posts(s.db).ListByTagSlug(ctx, tag.Slug)
	if err != nil {
		return nil, err
	}
	return &TagDetail{Tag: tag, Posts: posts}, nil
}

func (s *TagService) Create(ctx context.Context, name string) (*models.Tag, error) {
	repo := s.repomanager.Tags(s.db)

	slug := slugx.Make(name)
	exists, err := repo.SlugExists(ctx, slug)
	if err != nil {
		return nil, common.ErrorInternal
	}
	if exists {
		return nil, common.ErrDuplicateSlug
	}

	return repo.Create(ctx, &models.Tag{ID: uuid.NewString(), Name: name, Slug: slug})
}

// Update renames the tag, regenerating the slug. Renaming to a name whose
// slug is already taken by another tag fails.
func (s *TagService) Update(ctx context.Context, id, name string) (*models.Tag, error) {
	repo := s.repomanager.Tags(s.db)

	tag, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	slug := slugx.Make(name)
	if slug != tag.Slug {
		exists, err := repo.SlugExists(ctx, slug)
		if err != nil {
			return nil, common.ErrorInternal
		}
		if exists {
			return nil, common.ErrDuplicateSlug
		}
	}

	tag.Name = name
	tag.Slug = slug
	if err := repo.Update(ctx, tag); err != nil {
		return nil, err
	}
	return tag, nil
}

func (s *TagService) Delete(ctx context.Context, id string) error {
	return s.repomanager.Tags(s.db).SoftDelete(ctx, id)
}
