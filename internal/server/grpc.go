// Package server builds the gRPC server: interceptor chain, telemetry stats
// handler, and the standard health service.
package server

import (
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"

	auditrepo "issuehub/internal/audit/repository"
	"issuehub/internal/security"
	"issuehub/internal/server/interceptors"
)

// Deps holds the dependencies the server interceptors need.
type Deps struct {
	// Tokens verifies Bearer access tokens for the auth interceptor.
	Tokens *security.TokenProvider
	// AuditRepo is the audit log repository for the audit interceptor. If nil, no RPCs are audited.
	AuditRepo auditrepo.Repository
	// PublicMethods overrides DefaultPublicMethods when non-nil.
	PublicMethods map[string]bool
	// AuditSkipMethods overrides DefaultAuditSkipMethods when non-nil.
	AuditSkipMethods map[string]bool
}

// DefaultPublicMethods returns the full method names that never carry a Bearer token:
// the identity RPCs that establish a session, the assistant passthrough, and health checks.
func DefaultPublicMethods() map[string]bool {
	return map[string]bool{
		"/issuehub.IdentityService/Signup":    true,
		"/issuehub.IdentityService/Signin":    true,
		"/issuehub.IdentityService/Refresh":   true,
		"/issuehub.AssistantService/Generate": true,
		"/grpc.health.v1.Health/Check":        true,
		"/grpc.health.v1.Health/Watch":        true,
	}
}

// DefaultAuditSkipMethods returns the full method names excluded from audit logging.
func DefaultAuditSkipMethods() map[string]bool {
	return map[string]bool{
		"/grpc.health.v1.Health/Check": true,
		"/grpc.health.v1.Health/Watch": true,
	}
}

// New builds a *grpc.Server with the auth and audit interceptors and an otelgrpc
// stats handler, and registers the standard health service. The returned health
// server starts in SERVING state; callers flip it on shutdown.
func New(deps Deps) (*grpc.Server, *health.Server) {
	publicMethods := deps.PublicMethods
	if publicMethods == nil {
		publicMethods = DefaultPublicMethods()
	}
	auditSkip := deps.AuditSkipMethods
	if auditSkip == nil {
		auditSkip = DefaultAuditSkipMethods()
	}

	chain := []grpc.UnaryServerInterceptor{
		interceptors.AuthUnary(deps.Tokens, publicMethods),
	}
	if deps.AuditRepo != nil {
		chain = append(chain, interceptors.AuditUnary(deps.AuditRepo, auditSkip))
	}

	s := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(chain...),
	)

	h := health.NewServer()
	h.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	grpc_health_v1.RegisterHealthServer(s, h)

	return s, h
}
