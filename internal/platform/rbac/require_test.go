package rbac

import (
	"context"
	"testing"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"issuehub/internal/policy/engine"
	"issuehub/internal/server/interceptors"
	userdomain "issuehub/internal/user/domain"
)

func wantStatusCode(t *testing.T, err error, want codes.Code) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error")
	}
	st, ok := status.FromError(err)
	if !ok {
		t.Fatalf("error is not a gRPC status: %v", err)
	}
	if st.Code() != want {
		t.Errorf("status code = %v, want %v", st.Code(), want)
	}
}

func TestRequireAuthenticated_Success(t *testing.T) {
	ctx := interceptors.WithIdentity(context.Background(), "alice@example.com", "Alice Smith", "USER")

	email, role, err := RequireAuthenticated(ctx)
	if err != nil {
		t.Fatalf("RequireAuthenticated: %v", err)
	}
	if email != "alice@example.com" {
		t.Errorf("email = %q, want %q", email, "alice@example.com")
	}
	if role != "USER" {
		t.Errorf("role = %q, want %q", role, "USER")
	}
}

func TestRequireAuthenticated_NoIdentity(t *testing.T) {
	_, _, err := RequireAuthenticated(context.Background())
	wantStatusCode(t, err, codes.Unauthenticated)
}

func TestRequireAdmin_Success(t *testing.T) {
	users := &mockUserGetter{users: map[string]*userdomain.User{
		"admin@example.com": {ID: "u1", Email: "admin@example.com", Role: userdomain.RoleAdmin},
	}}
	eval := newTestEvaluator(t, users)
	ctx := interceptors.WithIdentity(context.Background(), "admin@example.com", "Ada Admin", "ADMIN")

	email, err := RequireAdmin(ctx, eval)
	if err != nil {
		t.Fatalf("RequireAdmin: %v", err)
	}
	if email != "admin@example.com" {
		t.Errorf("email = %q, want %q", email, "admin@example.com")
	}
}

func TestRequireAdmin_NonAdmin(t *testing.T) {
	users := &mockUserGetter{users: map[string]*userdomain.User{
		"alice@example.com": {ID: "u2", Email: "alice@example.com", Role: userdomain.RoleUser},
	}}
	eval := newTestEvaluator(t, users)
	ctx := interceptors.WithIdentity(context.Background(), "alice@example.com", "Alice Smith", "USER")

	_, err := RequireAdmin(ctx, eval)
	wantStatusCode(t, err, codes.PermissionDenied)
}

func TestRequireAdmin_RoleFromStoreNotToken(t *testing.T) {
	// Token says ADMIN but the store says USER: the store wins.
	users := &mockUserGetter{users: map[string]*userdomain.User{
		"alice@example.com": {ID: "u2", Email: "alice@example.com", Role: userdomain.RoleUser},
	}}
	eval := newTestEvaluator(t, users)
	ctx := interceptors.WithIdentity(context.Background(), "alice@example.com", "Alice Smith", "ADMIN")

	_, err := RequireAdmin(ctx, eval)
	wantStatusCode(t, err, codes.PermissionDenied)
}

func TestRequireAdmin_UserDeleted(t *testing.T) {
	eval := newTestEvaluator(t, &mockUserGetter{users: map[string]*userdomain.User{}})
	ctx := interceptors.WithIdentity(context.Background(), "ghost@example.com", "Ghost", "ADMIN")

	_, err := RequireAdmin(ctx, eval)
	wantStatusCode(t, err, codes.PermissionDenied)
}

func TestRequireAdmin_Unauthenticated(t *testing.T) {
	eval := newTestEvaluator(t, &mockUserGetter{})

	_, err := RequireAdmin(context.Background(), eval)
	wantStatusCode(t, err, codes.Unauthenticated)
}

func TestRequireAccess_Owner(t *testing.T) {
	eval := newTestEvaluator(t, &mockUserGetter{})
	ctx := interceptors.WithIdentity(context.Background(), "alice@example.com", "Alice Smith", "USER")

	email, err := RequireAccess(ctx, eval, engine.Resource{Type: "project", Owner: "alice@example.com"})
	if err != nil {
		t.Fatalf("RequireAccess: %v", err)
	}
	if email != "alice@example.com" {
		t.Errorf("email = %q, want %q", email, "alice@example.com")
	}
}

func TestRequireAccess_AdminOverride(t *testing.T) {
	eval := newTestEvaluator(t, &mockUserGetter{})
	ctx := interceptors.WithIdentity(context.Background(), "admin@example.com", "Ada Admin", "ADMIN")

	_, err := RequireAccess(ctx, eval, engine.Resource{Type: "project", Owner: "alice@example.com"})
	if err != nil {
		t.Fatalf("RequireAccess: %v", err)
	}
}

func TestRequireAccess_Denied(t *testing.T) {
	eval := newTestEvaluator(t, &mockUserGetter{})
	ctx := interceptors.WithIdentity(context.Background(), "mallory@example.com", "Mallory", "USER")

	_, err := RequireAccess(ctx, eval, engine.Resource{Type: "project", Owner: "alice@example.com"})
	wantStatusCode(t, err, codes.PermissionDenied)
}

func TestRequireAccess_Unauthenticated(t *testing.T) {
	eval := newTestEvaluator(t, &mockUserGetter{})

	_, err := RequireAccess(context.Background(), eval, engine.Resource{Type: "project", Owner: "alice@example.com"})
	wantStatusCode(t, err, codes.Unauthenticated)
}
