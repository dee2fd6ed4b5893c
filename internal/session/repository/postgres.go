package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"issuehub/internal/session/domain"
)

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns a refresh-token repository that uses the given
// db for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// GetByToken returns the refresh token for the given opaque string, or nil if
// not found. It returns an error only for database failures, not missing rows.
func (r *PostgresRepository) GetByToken(ctx context.Context, token string) (*domain.RefreshToken, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, token, expires_at, created_at
		 FROM refresh_tokens WHERE token = $1`, token)
	var t domain.RefreshToken
	err := row.Scan(&t.ID, &t.UserID, &t.Token, &t.ExpiresAt, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

// replaceQuery upserts on the user_id unique constraint. A delete-then-insert
// transaction is not equivalent: under READ COMMITTED a concurrent replacement
// can miss the other's uncommitted row in its DELETE scan and then hit a
// unique violation on INSERT. The upsert serializes on the conflicting row
// instead, so concurrent logins for the same user both succeed and the last
// writer's token survives.
const replaceQuery = `INSERT INTO refresh_tokens (id, user_id, token, expires_at, created_at)
	 VALUES ($1, $2, $3, $4, $5)
	 ON CONFLICT (user_id) DO UPDATE
	 SET id = EXCLUDED.id, token = EXCLUDED.token,
	     expires_at = EXCLUDED.expires_at, created_at = EXCLUDED.created_at`

// Replace stores t as the user's only refresh token, overwriting any existing
// one in a single statement.
func (r *PostgresRepository) Replace(ctx context.Context, t *domain.RefreshToken) error {
	_, err := r.db.ExecContext(ctx, replaceQuery,
		t.ID, t.UserID, t.Token, t.ExpiresAt, t.CreatedAt)
	return err
}

// Delete removes the row with the given token string. Deleting an absent token
// is not an error.
func (r *PostgresRepository) Delete(ctx context.Context, token string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM refresh_tokens WHERE token = $1`, token)
	return err
}

// DeleteByUser removes the user's token. Deleting when none exists is not an error.
func (r *PostgresRepository) DeleteByUser(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM refresh_tokens WHERE user_id = $1`, userID)
	return err
}

// DeleteExpired removes every token already expired at now and returns the row count.
func (r *PostgresRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM refresh_tokens WHERE expires_at <= $1`, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
