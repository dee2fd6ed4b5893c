package rbac

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// RequireAdmin ensures the caller is authenticated and holds the ADMIN role in the
// store. Returns (email, nil) on success; returns a gRPC error (Unauthenticated or
// PermissionDenied) on failure.
func RequireAdmin(ctx context.Context, eval *Evaluator) (email string, err error) {
	email, _, err = RequireAuthenticated(ctx)
	if err != nil {
		return "", err
	}
	isAdmin, err := eval.IsAdminByEmail(ctx, email)
	if err == ErrUserNotFound {
		return "", status.Error(codes.PermissionDenied, "administrator role required")
	}
	if err != nil {
		return "", status.Error(codes.Internal, "failed to resolve role")
	}
	if !isAdmin {
		return "", status.Error(codes.PermissionDenied, "administrator role required")
	}
	return email, nil
}
