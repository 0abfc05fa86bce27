package models

import "time"

// Tag labels posts through the post_tags join table. PostCount counts
// published posts and is populated by list queries only.
type Tag struct {
	ID        string
	Name      string
	Slug      string
	PostCount int
	CreatedAt time.Time
	UpdatedAt *time.Time
}
