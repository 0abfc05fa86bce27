package models

import "time"

// Role values assigned to users. New registrations default to RoleReader.
const (
	RoleAdmin  = "Admin"
	RoleAuthor = "Author"
	RoleReader = "Reader"
)

// User is a registered account. PasswordHash never leaves the server;
// outward-facing representations are built by the HTTP layer from the
// remaining fields. RefreshToken holds the single outstanding refresh
// token: issuing a new one always overwrites it.
type User struct {
	ID                    string
	Username              string
	Email                 string
	PasswordHash          string
	FirstName             string
	LastName              string
	AvatarURL             string
	Role                  string
	IsActive              bool
	EmailConfirmed        bool
	LastLoginAt           *time.Time
	RefreshToken          string
	RefreshTokenExpiresAt *time.Time
	CreatedAt             time.Time
	UpdatedAt             *time.Time
}
