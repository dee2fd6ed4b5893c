package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"issuehub/internal/session/domain"
	"issuehub/internal/session/repository"
)

// Sentinel errors for refresh-token verification; callers branch on them.
var (
	ErrTokenNotFound = errors.New("refresh token not found")
	ErrTokenExpired  = errors.New("refresh token expired")
)

// RefreshTokenService owns the refresh-token lifecycle: issue at login,
// lookup and expiry check at refresh, revoke at logout. No other component
// mutates the refresh-token table.
type RefreshTokenService struct {
	repo       repository.Repository
	refreshTTL time.Duration
}

// NewRefreshTokenService returns a RefreshTokenService issuing tokens with the
// given lifetime.
func NewRefreshTokenService(repo repository.Repository, refreshTTL time.Duration) *RefreshTokenService {
	return &RefreshTokenService{repo: repo, refreshTTL: refreshTTL}
}

// Issue creates a new opaque refresh token for the user, atomically replacing
// any existing one, and returns it. The invariant afterward: at most one live
// token for this user.
func (s *RefreshTokenService) Issue(ctx context.Context, userID string) (*domain.RefreshToken, error) {
	now := time.Now().UTC()
	t := &domain.RefreshToken{
		ID:        uuid.New().String(),
		UserID:    userID,
		Token:     uuid.New().String(),
		ExpiresAt: now.Add(s.refreshTTL),
		CreatedAt: now,
	}
	if err := s.repo.Replace(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Find returns the refresh token with the given opaque string, or
// ErrTokenNotFound when no row matches.
func (s *RefreshTokenService) Find(ctx context.Context, token string) (*domain.RefreshToken, error) {
	t, err := s.repo.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrTokenNotFound
	}
	return t, nil
}

// VerifyNotExpired returns the token unchanged when still live. An expired
// token is deleted as a side effect and ErrTokenExpired is returned; the
// caller must treat that as "session ended, re-authenticate".
func (s *RefreshTokenService) VerifyNotExpired(ctx context.Context, t *domain.RefreshToken) (*domain.RefreshToken, error) {
	if t.Expired(time.Now().UTC()) {
		if err := s.repo.Delete(ctx, t.Token); err != nil {
			return nil, err
		}
		return nil, ErrTokenExpired
	}
	return t, nil
}

// Revoke deletes the user's refresh token. Idempotent: revoking a user with no
// active token is not an error.
func (s *RefreshTokenService) Revoke(ctx context.Context, userID string) error {
	return s.repo.DeleteByUser(ctx, userID)
}

// SweepExpired removes all expired tokens and returns the number removed.
// Expired tokens are already rejected at refresh; the sweep only keeps the
// table from accumulating rows for users who never come back.
func (s *RefreshTokenService) SweepExpired(ctx context.Context) (int64, error) {
	return s.repo.DeleteExpired(ctx, time.Now().UTC())
}
