// Package services contains server-side business logic. This file implements
// AuthService, which handles registration, login, and issuing/refreshing JWTs
// plus server-stored refresh tokens.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/smartware/smartware-api/internal/common"
	"github.com/smartware/smartware-api/internal/dbx"
	"github.com/smartware/smartware-api/internal/server/auth"
	"github.com/smartware/smartware-api/internal/server/models"
	"github.com/smartware/smartware-api/internal/server/repositories/repomanager"
)

// AuthResult bundles the minted tokens with the authenticated user.
// User never carries the password hash into responses; the HTTP layer
// builds the outward view from the remaining fields.
type AuthResult struct {
	AccessToken     string
	RefreshToken    string
	TokenExpiration time.Time
	User            *models.User
}

// RegisterParams is the input to Register. Username, Email, and Password
// are required; the rest is optional profile data.
type RegisterParams struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// AuthService provides authentication-related operations:
// - Register: create users and mint their first token pair
// - Login: verify credentials and mint tokens
// - Refresh: rotate refresh tokens and mint new access tokens
type AuthService struct {
	db                           *sql.DB
	repomanager                  repomanager.RepositoryManager
	tokens                       *auth.TokenIssuer
	refreshTokenValidityDuration time.Duration
}

// NewAuthService constructs an AuthService sharing the token issuer with
// the HTTP middleware.
func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, tokens *auth.TokenIssuer, refreshTokenValidity time.Duration) *AuthService {
	return &AuthService{
		db:                           db,
		repomanager:                  m,
		tokens:                       tokens,
		refreshTokenValidityDuration: refreshTokenValidity,
	}
}

// Register creates a new account and logs it in. Duplicate checks look at
// non-deleted users only, matching what the unique indexes enforce.
func (s *AuthService) Register(ctx context.Context, params RegisterParams) (*AuthResult, error) {
	repo := s.repomanager.Users(s.db)

	exists, err := repo.UsernameExists(ctx, params.Username)
	if err != nil {
		return nil, common.ErrorInternal
	}
	if exists {
		return nil, common.ErrDuplicateUsername
	}
	exists, err = repo.EmailExists(ctx, params.Email)
	if err != nil {
		return nil, common.ErrorInternal
	}
	if exists {
		return nil, common.ErrDuplicateEmail
	}

	hash, err := auth.HashPassword(params.Password)
	if err != nil {
		return nil, common.ErrorInternal
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Username:     params.Username,
		Email:        params.Email,
		PasswordHash: hash,
		FirstName:    params.FirstName,
		LastName:     params.LastName,
		Role:         models.RoleReader,
		IsActive:     true,
	}

	var result *AuthResult
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repoTx := s.repomanager.Users(tx)
		created, err := repoTx.Create(ctx, user)
		if err != nil {
			return fmt.Errorf("error creating user: %w", err)
		}
		result, err = s.issueTokens(ctx, repoTx, created)
		return err
	}); err != nil {
		return nil, err
	}
	return result, nil
}

// Login verifies credentials and rotates the user's refresh token. Unknown
// logins and wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, login, password string) (*AuthResult, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByUsernameOrEmail(ctx, login)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, common.ErrorInternal
	}
	if !auth.VerifyPassword(password, user.PasswordHash) {
		return nil, common.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, common.ErrAccountDeactivated
	}

	var result *AuthResult
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repoTx := s.repomanager.Users(tx)
		now := time.Now()
		if err := repoTx.UpdateLastLogin(ctx, user.ID, now); err != nil {
			return fmt.Errorf("error updating last login: %w", err)
		}
		user.LastLoginAt = &now
		result, err = s.issueTokens(ctx, repoTx, user)
		return err
	}); err != nil {
		return nil, err
	}
	return result, nil
}

// Refresh exchanges a stored refresh token for a fresh pair. The token is
// an opaque lookup key; no access token is required. Rotation is
// last-writer-wins: a concurrent refresh simply overwrites the stored
// token, and the loser surfaces as ErrInvalidRefreshToken on its next use.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidRefreshToken
		}
		return nil, common.ErrorInternal
	}
	if user.RefreshTokenExpiresAt == nil || !user.RefreshTokenExpiresAt.After(time.Now()) {
		return nil, common.ErrRefreshTokenExpired
	}

	var result *AuthResult
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		result, err = s.issueTokens(ctx, s.repomanager.Users(tx), user)
		return err
	}); err != nil {
		return nil, err
	}
	return result, nil
}

// issueTokens mints an access token and a fresh refresh token, persists
// the refresh token on the user row, and returns the full result.
func (s *AuthService) issueTokens(ctx context.Context, repo userTokenStore, user *models.User) (*AuthResult, error) {
	access, expiresAt, err := s.tokens.IssueAccessToken(user)
	if err != nil {
		return nil, common.ErrorInternal
	}
	refresh := auth.NewRefreshToken()
	refreshExpiry := time.Now().Add(s.refreshTokenValidityDuration)
	if err := repo.UpdateRefreshToken(ctx, user.ID, refresh, refreshExpiry); err != nil {
		return nil, common.ErrorInternal
	}
	user.RefreshToken = refresh
	user.RefreshTokenExpiresAt = &refreshExpiry
	return &AuthResult{
		AccessToken:     access,
		RefreshToken:    refresh,
		TokenExpiration: expiresAt,
		User:            user,
	}, nil
}

// userTokenStore is the slice of users.Repository that issueTokens needs.
type userTokenStore interface {
	UpdateRefreshToken(ctx context.Context, userID, token string, expiresAt time.Time) error
}
