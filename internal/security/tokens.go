package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken is returned when a token fails verification: malformed,
	// wrong signature, or expired. Callers branch on it; it is never escalated.
	ErrInvalidToken = errors.New("invalid token")
	// ErrMalformedToken is returned by the claim accessors when the token is not
	// even structurally a JWT. Accessors do not verify signatures.
	ErrMalformedToken = errors.New("malformed token")
)

// AccessClaims holds the JWT claims of an access token. The subject is the
// user's email; fullName and role mirror the user record at issue time.
type AccessClaims struct {
	jwt.RegisteredClaims
	FullName string `json:"fullName"`
	Role     string `json:"role"`
}

// Identity is the verified claim set of an access token.
type Identity struct {
	Email     string
	FullName  string
	Role      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenProvider issues and verifies self-contained HS512 access tokens.
// Verification is stateless: validity is purely a function of the signature and
// the exp claim, so no storage lookup happens on the request path. The signing
// key is immutable after construction.
type TokenProvider struct {
	key       []byte
	accessTTL time.Duration
}

// NewTokenProvider returns a TokenProvider signing with the given symmetric key.
// The key must be at least MinSigningKeyBytes long; a shorter key is a startup
// configuration error (ErrWeakKey), never a runtime one.
func NewTokenProvider(key []byte, accessTTL time.Duration) (*TokenProvider, error) {
	if len(key) < MinSigningKeyBytes {
		return nil, ErrWeakKey
	}
	return &TokenProvider{key: key, accessTTL: accessTTL}, nil
}

// Issue signs an access token for the given user claims.
// Returns the compact token string and its expiration time.
func (p *TokenProvider) Issue(email, fullName, role string) (token string, expiresAt time.Time, err error) {
	now := time.Now().UTC()
	expiresAt = now.Add(p.accessTTL)
	claims := AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		FullName: fullName,
		Role:     role,
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	token, err = t.SignedString(p.key)
	return token, expiresAt, err
}

// Verify checks the token's signature and expiry and returns its identity claims.
// All failure modes collapse to ErrInvalidToken: claims must never be trusted
// without a successful signature check, and there is no partial-trust mode.
// The exp claim is exclusive; a token presented at exactly exp is expired.
func (p *TokenProvider) Verify(tokenString string) (*Identity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AccessClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return p.key, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*AccessClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	ident := &Identity{
		Email:    claims.Subject,
		FullName: claims.FullName,
		Role:     claims.Role,
	}
	if claims.IssuedAt != nil {
		ident.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		ident.ExpiresAt = claims.ExpiresAt.Time
	}
	return ident, nil
}

// ExtractEmail reads the subject claim without verifying the signature.
// Callers are expected to have called Verify first; on input that is not
// structurally a JWT it returns ErrMalformedToken instead of panicking.
func (p *TokenProvider) ExtractEmail(tokenString string) (string, error) {
	claims, err := p.parseUnverified(tokenString)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// ExtractFullName reads the fullName claim without verifying the signature.
func (p *TokenProvider) ExtractFullName(tokenString string) (string, error) {
	claims, err := p.parseUnverified(tokenString)
	if err != nil {
		return "", err
	}
	return claims.FullName, nil
}

// ExtractRole reads the role claim without verifying the signature.
func (p *TokenProvider) ExtractRole(tokenString string) (string, error) {
	claims, err := p.parseUnverified(tokenString)
	if err != nil {
		return "", err
	}
	return claims.Role, nil
}

func (p *TokenProvider) parseUnverified(tokenString string) (*AccessClaims, error) {
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, &AccessClaims{})
	if err != nil {
		return nil, ErrMalformedToken
	}
	claims, ok := token.Claims.(*AccessClaims)
	if !ok {
		return nil, ErrMalformedToken
	}
	return claims, nil
}
