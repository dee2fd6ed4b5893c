package security

import "time"

// Base64 of a fixed 64-byte HS512 key. For unit tests only.
const testSigningKeyB64 = "aXNzdWVodWItdGVzdC1zaWduaW5nLWtleS0wMTIzNDU2Nzg5YWJjZGVmMDEyMzQ1Njc4OWFiY2RlZjAxMjM0NQ=="

// NewTestTokenProvider returns a TokenProvider using the embedded test key and
// a 24h access TTL. For unit tests only; callers must not use in production.
func NewTestTokenProvider() (*TokenProvider, error) {
	return NewTestTokenProviderTTL(24 * time.Hour)
}

// NewTestTokenProviderTTL is NewTestTokenProvider with a custom access TTL,
// for tests that need already-expired tokens.
func NewTestTokenProviderTTL(accessTTL time.Duration) (*TokenProvider, error) {
	key, err := DecodeSigningKey(testSigningKeyB64)
	if err != nil {
		return nil, err
	}
	return NewTokenProvider(key, accessTTL)
}
