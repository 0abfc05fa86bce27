package models

import "time"

type Post struct {
	ID               string
	Title            string
	Slug             string
	Content          string
	Summary          string
	FeaturedImageURL string
	IsPublished      bool
	PublishedAt      *time.Time
	ViewCount        int
	AuthorID         string
	Author           *Author
	Tags             []Tag
	CreatedAt        time.Time
	UpdatedAt        *time.Time
}
