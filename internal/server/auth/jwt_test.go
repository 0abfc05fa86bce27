package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/smartware/smartware-api/internal/server/models"
)

func testUser() *models.User {
	return &models.User{
		ID:        "user-123",
		Username:  "alice",
		Email:     "alice@x.com",
		Role:      models.RoleReader,
		FirstName: "Alice",
		LastName:  "A",
	}
}

func newIssuer(validity time.Duration) *TokenIssuer {
	return NewTokenIssuer([]byte("super-secret"), "SmartWareAPI", "SmartWareClient", validity)
}

func TestIssueAndParse_Success(t *testing.T) {
	t.Parallel()

	i := newIssuer(time.Hour)
	tok, expiresAt, err := i.IssueAccessToken(testUser())
	if err != nil {
		t.Fatalf("IssueAccessToken error: %v", err)
	}
	if time.Until(expiresAt) > time.Hour || time.Until(expiresAt) < 59*time.Minute {
		t.Fatalf("unexpected expiry: %v", expiresAt)
	}

	claims, err := i.ParseAccessToken(tok)
	if err != nil {
		t.Fatalf("ParseAccessToken error: %v", err)
	}
	if claims.Subject != "user-123" || claims.Name != "alice" {
		t.Fatalf("claims mismatch: %+v", claims)
	}
	if claims.Email != "alice@x.com" || claims.Role != models.RoleReader {
		t.Fatalf("claims mismatch: %+v", claims)
	}
	if claims.FirstName != "Alice" || claims.LastName != "A" {
		t.Fatalf("claims mismatch: %+v", claims)
	}
}

func TestParseAccessToken_Expired(t *testing.T) {
	t.Parallel()

	i := newIssuer(-1 * time.Second)
	tok, _, err := i.IssueAccessToken(testUser())
	if err != nil {
		t.Fatalf("IssueAccessToken error: %v", err)
	}

	if _, err := i.ParseAccessToken(tok); err == nil {
		t.Fatalf("expected error for expired token, got nil")
	}
}

func TestParseExpiredToken_RoundTripsClaims(t *testing.T) {
	t.Parallel()

	i := newIssuer(-1 * time.Second)
	tok, _, err := i.IssueAccessToken(testUser())
	if err != nil {
		t.Fatalf("IssueAccessToken error: %v", err)
	}

	claims, err := i.ParseExpiredToken(tok)
	if err != nil {
		t.Fatalf("ParseExpiredToken error: %v", err)
	}
	if claims.Subject != "user-123" || claims.Name != "alice" ||
		claims.Email != "alice@x.com" || claims.Role != models.RoleReader {
		t.Fatalf("claims changed through expiry: %+v", claims)
	}
}

func TestParseExpiredToken_WrongSecret(t *testing.T) {
	t.Parallel()

	i := newIssuer(time.Hour)
	tok, _, err := i.IssueAccessToken(testUser())
	if err != nil {
		t.Fatalf("IssueAccessToken error: %v", err)
	}

	other := NewTokenIssuer([]byte("wrong-secret"), "SmartWareAPI", "SmartWareClient", time.Hour)
	if _, err := other.ParseExpiredToken(tok); err == nil {
		t.Fatalf("expected error for invalid signature, got nil")
	}
}

func TestParseExpiredToken_WrongIssuerOrAudience(t *testing.T) {
	t.Parallel()

	i := newIssuer(time.Hour)
	tok, _, err := i.IssueAccessToken(testUser())
	if err != nil {
		t.Fatalf("IssueAccessToken error: %v", err)
	}

	badIssuer := NewTokenIssuer([]byte("super-secret"), "SomeoneElse", "SmartWareClient", time.Hour)
	if _, err := badIssuer.ParseExpiredToken(tok); err == nil {
		t.Fatalf("expected error for issuer mismatch, got nil")
	}

	badAudience := NewTokenIssuer([]byte("super-secret"), "SmartWareAPI", "OtherClient", time.Hour)
	if _, err := badAudience.ParseExpiredToken(tok); err == nil {
		t.Fatalf("expected error for audience mismatch, got nil")
	}
}

func TestParseExpiredToken_RejectsForeignAlgorithm(t *testing.T) {
	t.Parallel()

	i := newIssuer(time.Hour)

	// Same secret, same claims, but signed with HS512 instead of HS256.
	token := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  "user-123",
			Issuer:   "SmartWareAPI",
			Audience: jwt.ClaimStrings{"SmartWareClient"},
		},
		Name: "alice",
	})
	signed, err := token.SignedString([]byte("super-secret"))
	if err != nil {
		t.Fatalf("sign error: %v", err)
	}

	if _, err := i.ParseExpiredToken(signed); err == nil {
		t.Fatalf("expected rejection of HS512-signed token, got nil")
	}
}

func TestParseExpiredToken_RejectsUnsigned(t *testing.T) {
	t.Parallel()

	i := newIssuer(time.Hour)

	token := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: "user-123",
			Issuer:  "SmartWareAPI",
		},
	})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign error: %v", err)
	}

	if _, err := i.ParseExpiredToken(signed); err == nil {
		t.Fatalf("expected rejection of unsigned token, got nil")
	}
}

func TestParseAccessToken_MalformedString(t *testing.T) {
	t.Parallel()

	i := newIssuer(time.Hour)
	if _, err := i.ParseAccessToken("not.a.jwt"); err == nil {
		t.Fatalf("expected error for malformed token, got nil")
	}
}
