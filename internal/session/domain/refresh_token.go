package domain

import "time"

// RefreshToken is the long-lived opaque credential persisted server-side and
// exchanged for new access tokens. At most one live token exists per user;
// issuing a new one replaces any prior token for that user.
type RefreshToken struct {
	ID        string
	UserID    string
	Token     string // opaque random string, unique across all rows
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the token has expired at the given instant.
// Expiry is exclusive: a token checked at exactly ExpiresAt is expired.
func (t *RefreshToken) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}
