package interceptors

import (
	"context"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"

	"issuehub/internal/security"
)

const bearerPrefix = "bearer "

// AuthUnary returns a unary server interceptor that validates the Bearer (access) token
// from gRPC metadata and sets email, full_name, role in context for downstream handlers.
// publicMethods is the set of full method names that never carry a token
// (e.g. IdentityService Signup, Signin, Refresh; HealthService Check): those skip
// extraction entirely. For everything else the interceptor attaches identity when the
// token verifies and attaches nothing otherwise; rejecting unauthenticated calls is
// the job of the rbac guards, not the gate.
func AuthUnary(tokens *security.TokenProvider, publicMethods map[string]bool) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		if publicMethods[info.FullMethod] {
			return handler(ctx, req)
		}

		token := extractBearer(ctx)
		if token == "" {
			return handler(ctx, req)
		}

		identity, err := tokens.Verify(token)
		if err != nil {
			return handler(ctx, req)
		}

		ctx = WithIdentity(ctx, identity.Email, identity.FullName, identity.Role)
		return handler(ctx, req)
	}
}

// extractBearer returns the Bearer token from ctx metadata, or "" if missing or malformed.
func extractBearer(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	vals := md.Get("authorization")
	if len(vals) == 0 {
		return ""
	}
	v := strings.TrimSpace(vals[0])
	if len(v) < len(bearerPrefix) {
		return ""
	}
	if !strings.EqualFold(v[:len(bearerPrefix)], bearerPrefix) {
		return ""
	}
	return strings.TrimSpace(v[len(bearerPrefix):])
}
