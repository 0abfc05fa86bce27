package httpapi

import (
	"time"

	"github.com/smartware/smartware-api/internal/server/models"
	"github.com/smartware/smartware-api/internal/server/services"
)

// Request bodies. Field names match what the Angular client sends.

type registerRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type loginRequest struct {
	UsernameOrEmail string `json:"usernameOrEmail"`
	Password        string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type postRequest struct {
	Title            string   `json:"title"`
	Slug             string   `json:"slug"`
	Content          string   `json:"content"`
	Summary          string   `json:"summary"`
	FeaturedImageURL string   `json:"featuredImageUrl"`
	IsPublished      bool     `json:"isPublished"`
	AuthorID         string   `json:"authorId"`
	TagIDs           []string `json:"tagIds"`
}

type tagRequest struct {
	Name string `json:"name"`
}

type authorRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Bio       string `json:"bio"`
	AvatarURL string `json:"avatarUrl"`
}

// Response bodies.

type userResponse struct {
	ID             string     `json:"id"`
	Username       string     `json:"username"`
	Email          string     `json:"email"`
	FirstName      string     `json:"firstName"`
	LastName       string     `json:"lastName"`
	AvatarURL      string     `json:"avatarUrl"`
	Role           string     `json:"role"`
	IsActive       bool       `json:"isActive"`
	EmailConfirmed bool       `json:"emailConfirmed"`
	LastLoginAt    *time.Time `json:"lastLoginAt"`
	CreatedAt      time.Time  `json:"createdAt"`
}

type authResponse struct {
	AccessToken     string       `json:"accessToken"`
	RefreshToken    string       `json:"refreshToken"`
	TokenExpiration time.Time    `json:"tokenExpiration"`
	User            userResponse `json:"user"`
}

type tagResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	PostCount int       `json:"postCount"`
	CreatedAt time.Time `json:"createdAt"`
}

type tagDetailResponse struct {
	tagResponse
	Posts []postResponse `json:"posts"`
}

type authorResponse struct {
	ID        string    `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	Bio       string    `json:"bio"`
	AvatarURL string    `json:"avatarUrl"`
	PostCount int       `json:"postCount"`
	CreatedAt time.Time `json:"createdAt"`
}

type authorDetailResponse struct {
	authorResponse
	Posts []postResponse `json:"posts"`
}

type postResponse struct {
	ID               string        `json:"id"`
	Title            string        `json:"title"`
	Slug             string        `json:"slug"`
	Content          string        `json:"content"`
	Summary          string        `json:"summary"`
	FeaturedImageURL string        `json:"featuredImageUrl"`
	IsPublished      bool          `json:"isPublished"`
	PublishedAt      *time.Time    `json:"publishedAt"`
	ViewCount        int           `json:"viewCount"`
	AuthorID         string        `json:"authorId"`
	AuthorName       string        `json:"authorName"`
	Tags             []tagResponse `json:"tags"`
	CreatedAt        time.Time     `json:"createdAt"`
	UpdatedAt        *time.Time    `json:"updatedAt"`
}

// Mappers.

func toAuthResponse(r *services.AuthResult) authResponse {
	return authResponse{
		AccessToken:     r.AccessToken,
		RefreshToken:    r.RefreshToken,
		TokenExpiration: r.TokenExpiration,
		User:            toUserResponse(r.User),
	}
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{
		ID:             u.ID,
		Username:       u.Username,
		Email:          u.Email,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		AvatarURL:      u.AvatarURL,
		Role:           u.Role,
		IsActive:       u.IsActive,
		EmailConfirmed: u.EmailConfirmed,
		LastLoginAt:    u.LastLoginAt,
		CreatedAt:      u.CreatedAt,
	}
}

func toTagResponse(t *models.Tag) tagResponse {
	return tagResponse{
		ID:        t.ID,
		Name:      t.Name,
		Slug:      t.Slug,
		PostCount: t.PostCount,
		CreatedAt: t.CreatedAt,
	}
}

func toAuthorResponse(a *models.Author) authorResponse {
	return authorResponse{
		ID:        a.ID,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		FullName:  a.FullName(),
		Email:     a.Email,
		Bio:       a.Bio,
		AvatarURL: a.AvatarURL,
		PostCount: a.PostCount,
		CreatedAt: a.CreatedAt,
	}
}

func toPostResponse(p *models.Post) postResponse {
	resp := postResponse{
		ID:               p.ID,
		Title:            p.Title,
		Slug:             p.Slug,
		Content:          p.Content,
		Summary:          p.Summary,
		FeaturedImageURL: p.FeaturedImageURL,
		IsPublished:      p.IsPublished,
		PublishedAt:      p.PublishedAt,
		ViewCount:        p.ViewCount,
		AuthorID:         p.AuthorID,
		Tags:             []tagResponse{},
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
	if p.Author != nil {
		resp.AuthorName = p.Author.FullName()
	}
	for i := range p.Tags {
		resp.Tags = append(resp.Tags, toTagResponse(&p.Tags[i]))
	}
	return resp
}

func toPostResponses(posts []*models.Post) []postResponse {
	result := make([]postResponse, 0, len(posts))
	for _, p := range posts {
		result = append(result, toPostResponse(p))
	}
	return result
}
