package repository

import (
	"context"

	"issuehub/internal/user/domain"
)

// Repository defines persistence for user credential records.
type Repository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	// GetByEmail matches the stored email exactly; lookups are case-sensitive.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, u *domain.User) error
}
