package interceptors

import "context"

type contextKey struct{ name string }

var (
	emailKey    = contextKey{"email"}
	fullNameKey = contextKey{"full_name"}
	roleKey     = contextKey{"role"}
)

// WithIdentity returns a context with email, full_name, and role set.
// Handlers and the rbac guards can read these via GetEmail, GetFullName, GetRole.
func WithIdentity(ctx context.Context, email, fullName, role string) context.Context {
	ctx = context.WithValue(ctx, emailKey, email)
	ctx = context.WithValue(ctx, fullNameKey, fullName)
	ctx = context.WithValue(ctx, roleKey, role)
	return ctx
}

// GetEmail returns the email from context and true if set; otherwise "", false.
func GetEmail(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(emailKey).(string)
	return v, ok
}

// GetFullName returns the full_name from context and true if set; otherwise "", false.
func GetFullName(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(fullNameKey).(string)
	return v, ok
}

// GetRole returns the role from context and true if set; otherwise "", false.
func GetRole(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(roleKey).(string)
	return v, ok
}
