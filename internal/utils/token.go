package utils // package utils provides small helpers shared across handlers and services

import (
	"crypto/rand"
	"encoding/hex"
)

// NewSessionID returns a cryptographically random session identifier
// for callers that do not supply their own.  32 random bytes give a
// 64-character hex token, comfortably unique for the session table's
// unique key.
func NewSessionID() (string, error) {
	return randomHex(32)
}

// randomHex returns a hex-encoded string generated from n bytes of
// cryptographically secure random data.
func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
