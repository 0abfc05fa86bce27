package services

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/smartware/smartware-api/internal/common"
	"github.com/smartware/smartware-api/internal/server/models"
	"github.com/smartware/smartware-api/internal/server/repositories/repomanager"
)

// AuthorDetail pairs an author with their published posts.
type AuthorDetail struct {
	Author *models.Author
	Posts  []*models.Post
}

// AuthorParams is the input to Create and Update.
type AuthorParams struct {
	FirstName string
	LastName  string
	Email     string
	Bio       string
	AvatarURL string
}

// AuthorService implements author CRUD.
type AuthorService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewAuthorService(db *sql.DB, m repomanager.RepositoryManager) *AuthorService {
	return &AuthorService{db: db, repomanager: m}
}

func (s *AuthorService) List(ctx context.Context) ([]*models.Author, error) {
	return s.repomanager.Authors(s.db).List(ctx)
}

// Get returns the author together with their published posts.
func (s *AuthorService) Get(ctx context.Context, id string) (*AuthorDetail, error) {
	author, err := s.repomanager.Authors(s.db).GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	posts, err := s.repomanager.Posts(s.db).ListByAuthor(ctx, id)
	if err != nil {
		return nil, err
	}
	return &AuthorDetail{Author: author, Posts: posts}, nil
}

func (s *AuthorService) Create(ctx context.Context, params AuthorParams) (*models.Author, error) {
	repo := s.repomanager.Authors(s.db)

	exists, err := repo.EmailExists(ctx, params.Email)
	if err != nil {
		return nil, common.ErrorInternal
	}
	if exists {
		return nil, common.ErrDuplicateEmail
	}

	author := &models.Author{
		ID:        uuid.NewString(),
		FirstName: params.FirstName,
		LastName:  params.LastName,
		Email:     params.Email,
		Bio:       params.Bio,
		AvatarURL: params.AvatarURL,
	}
	return repo.Create(ctx, author)
}

func (s *AuthorService) Update(ctx context.Context, id string, params AuthorParams) (*models.Author, error) {
	repo := s.repomanager.Authors(s.db)

	author, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	author.FirstName = params.FirstName
	author.LastName = params.LastName
	author.Email = params.Email
	author.Bio = params.Bio
	author.AvatarURL = params.AvatarURL
	if err := repo.Update(ctx, author); err != nil {
		return nil, err
	}
	return author, nil
}

func (s *AuthorService) Delete(ctx context.Context, id string) error {
	return s.repomanager.Authors(s.db).SoftDelete(ctx, id)
}
