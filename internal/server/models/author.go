package models

import "time"

// Author writes posts. PostCount is populated by list queries only.
type Author struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
	Bio       string
	AvatarURL string
	PostCount int
	CreatedAt time.Time
	UpdatedAt *time.Time
}

func (a *Author) FullName() string {
	return a.FirstName + " " + a.LastName
}
