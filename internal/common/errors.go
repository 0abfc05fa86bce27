// Package common defines shared constants and sentinel errors used across
// the SmartWare API layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Registration validation errors.
	ErrDuplicateUsername = errors.New("username already exists")
	ErrDuplicateEmail    = errors.New("email already exists")

	// Login errors. ErrInvalidCredentials covers both "no such user" and
	// "wrong password" so callers cannot tell the two apart.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDeactivated = errors.New("account is deactivated")

	// Token lifecycle errors.
	ErrInvalidToken        = errors.New("invalid token")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrRefreshTokenExpired = errors.New("refresh token expired")

	// Blog validation errors.
	ErrDuplicateSlug = errors.New("slug already exists")
	ErrEmptyQuery    = errors.New("search query cannot be empty")
)
