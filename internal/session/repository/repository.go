package repository

import (
	"context"
	"time"

	"issuehub/internal/session/domain"
)

// Repository defines persistence for refresh tokens. The table holds at most
// one row per user; Replace is the only write path that creates rows.
type Repository interface {
	// GetByToken returns the refresh token with the given opaque string, or nil
	// if not found. Errors are database failures only.
	GetByToken(ctx context.Context, token string) (*domain.RefreshToken, error)
	// Replace atomically stores t as the sole token owned by t.UserID,
	// overwriting any existing one. Two concurrent calls for the same user
	// both succeed; exactly one row survives (last writer wins).
	Replace(ctx context.Context, t *domain.RefreshToken) error
	// Delete removes the row with the given opaque token string, if present.
	Delete(ctx context.Context, token string) error
	// DeleteByUser removes the user's token, if present. A no-op when absent.
	DeleteByUser(ctx context.Context, userID string) error
	// DeleteExpired removes every token whose expiry is at or before now and
	// returns the number of rows removed. Used by the sweeper.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
