package security

import (
	"encoding/base64"
	"errors"
	"strings"
)

// MinSigningKeyBytes is the minimum decoded signing-key length for HS512.
// Anything shorter than 512 bits weakens the HMAC and is rejected at startup.
const MinSigningKeyBytes = 64

var (
	// ErrInvalidKey is returned when the signing key is empty or not valid base64.
	ErrInvalidKey = errors.New("invalid signing key")
	// ErrWeakKey is returned when the decoded signing key is shorter than MinSigningKeyBytes.
	ErrWeakKey = errors.New("signing key shorter than 512 bits")
)

// DecodeSigningKey decodes the base64-encoded symmetric signing key and enforces
// the HS512 minimum length. A failure here is a configuration fault; callers must
// refuse to serve traffic rather than fall back to a weaker key.
func DecodeSigningKey(encoded string) ([]byte, error) {
	encoded = strings.TrimSpace(encoded)
	if encoded == "" {
		return nil, ErrInvalidKey
	}
	key, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, ErrInvalidKey
	}
	if len(key) < MinSigningKeyBytes {
		return nil, ErrWeakKey
	}
	return key, nil
}
