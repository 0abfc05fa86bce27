package common

import (
	"crypto/rand"
	"encoding/base64"
)

// GenerateRandByteArray returns size cryptographically random bytes.
// It panics only if the platform's random source is broken.
func GenerateRandByteArray(size int) []byte {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return b
}

// MakeRandBase64String generates size random bytes and encodes them with
// standard base64. Used for opaque bearer secrets such as refresh tokens.
func MakeRandBase64String(size int) string {
	return base64.StdEncoding.EncodeToString(GenerateRandByteArray(size))
}
