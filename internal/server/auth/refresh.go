package auth

import "github.com/smartware/smartware-api/internal/common"

// refreshTokenBytes is the entropy of a refresh token before encoding.
const refreshTokenBytes = 32

// NewRefreshToken returns an opaque high-entropy bearer string. It carries
// no claims; the caller persists it against the user record with an expiry
// and overwrites any previous value.
func NewRefreshToken() string {
	return common.MakeRandBase64String(refreshTokenBytes)
}
