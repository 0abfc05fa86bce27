// Package auth implements the token and password primitives behind the
// authentication flow: HS256 access tokens, opaque refresh tokens, and
// bcrypt password hashing.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/smartware/smartware-api/internal/common"
	"github.com/smartware/smartware-api/internal/server/models"
)

// Claims carries the identity attributes embedded in an access token.
// Field names on the wire match what the Angular client decodes.
type Claims struct {
	jwt.RegisteredClaims
	Name      string `json:"unique_name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// TokenIssuer mints and verifies HS256 access tokens. All parameters are
// fixed at construction; the issuer holds no mutable state.
type TokenIssuer struct {
	secretKey []byte
	issuer    string
	audience  string
	validity  time.Duration
}

func NewTokenIssuer(secretKey []byte, issuer, audience string, validity time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secretKey: secretKey,
		issuer:    issuer,
		audience:  audience,
		validity:  validity,
	}
}

// IssueAccessToken builds a signed token for the user with an absolute
// expiry of now+validity, and returns the token with its expiry time.
// The token is self-contained; nothing is persisted for it server-side.
func (i *TokenIssuer) IssueAccessToken(user *models.User) (string, time.Time, error) {
	expiresAt := time.Now().Add(i.validity)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			Issuer:    i.issuer,
			Audience:  jwt.ClaimStrings{i.audience},
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Name:      user.Username,
		Email:     user.Email,
		Role:      user.Role,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	})

	tokenString, err := token.SignedString(i.secretKey)
	if err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expiresAt, nil
}

// ParseAccessToken verifies signature, signing method, issuer, audience,
// and lifetime, and returns the embedded claims. Any failure maps to
// common.ErrInvalidToken.
func (i *TokenIssuer) ParseAccessToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, i.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(i.issuer),
		jwt.WithAudience(i.audience),
	)
	if err != nil || !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}

// ParseExpiredToken extracts claims from a token whose lifetime may have
// elapsed, for the refresh exchange. Signature, signing method, issuer,
// and audience are still enforced; only the expiry check is skipped. A
// token signed with any method other than HS256 is rejected, guarding
// against algorithm substitution.
func (i *TokenIssuer) ParseExpiredToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, i.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil || !token.Valid {
		return nil, common.ErrInvalidToken
	}

	// WithoutClaimsValidation skips issuer/audience too; re-check by hand.
	if claims.Issuer != i.issuer {
		return nil, common.ErrInvalidToken
	}
	audienceOK := false
	for _, a := range claims.Audience {
		if a == i.audience {
			audienceOK = true
			break
		}
	}
	if !audienceOK {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}

func (i *TokenIssuer) keyFunc(t *jwt.Token) (interface{}, error) {
	if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, common.ErrInvalidToken
	}
	return i.secretKey, nil
}
