package rbac

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"issuehub/internal/server/interceptors"
)

// RequireAuthenticated ensures the caller carried a valid access token.
// Returns (email, role, nil) on success; returns Unauthenticated when the auth
// interceptor attached no identity.
func RequireAuthenticated(ctx context.Context) (email, role string, err error) {
	email, okEmail := interceptors.GetEmail(ctx)
	if !okEmail || email == "" {
		return "", "", status.Error(codes.Unauthenticated, "authentication required")
	}
	role, _ = interceptors.GetRole(ctx)
	return email, role, nil
}
