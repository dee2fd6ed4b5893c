package rbac

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"issuehub/internal/policy/engine"
)

// RequireAccess ensures the caller is authenticated and allowed to act on the
// resource (admin, owner, assignee, or member). Returns (email, nil) on success;
// returns a gRPC error (Unauthenticated or PermissionDenied) on failure.
func RequireAccess(ctx context.Context, eval *Evaluator, resource engine.Resource) (email string, err error) {
	email, role, err := RequireAuthenticated(ctx)
	if err != nil {
		return "", err
	}
	allowed, err := eval.Authorize(ctx, engine.Subject{Email: email, Role: role}, resource)
	if err != nil {
		return "", status.Error(codes.Internal, "failed to evaluate access")
	}
	if !allowed {
		return "", status.Error(codes.PermissionDenied, "access to this resource denied")
	}
	return email, nil
}
