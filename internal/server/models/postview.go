package models

import "time"

// PostView records a single read of a post.
type PostView struct {
	ID        string
	PostID    string
	ViewedAt  time.Time
	IPAddress string
	UserAgent string
}
