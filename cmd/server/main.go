// Server runs the issuehub gRPC server: auth gate, audit trail, health service,
// and OTLP telemetry. Requires JWT_SIGNING_KEY; DATABASE_URL enables audit logging.
package main

import (
	"context"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"google.golang.org/grpc/health/grpc_health_v1"

	auditrepo "issuehub/internal/audit/repository"
	"issuehub/internal/config"
	"issuehub/internal/db"
	"issuehub/internal/policy/engine"
	"issuehub/internal/security"
	"issuehub/internal/server"
	"issuehub/internal/telemetry/otel"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// A weak or malformed signing key must stop the server before it accepts traffic.
	key, err := security.DecodeSigningKey(cfg.JWTSigningKey)
	if err != nil {
		log.Fatalf("signing key: %v", err)
	}
	tokens, err := security.NewTokenProvider(key, cfg.AccessTTL())
	if err != nil {
		log.Fatalf("token provider: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	providers, err := otel.NewProviders(ctx, cfg.OTLPEndpoint, "issuehub")
	if err != nil {
		log.Fatalf("telemetry: %v", err)
	}
	providers.SetGlobal()
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		_ = providers.Shutdown(shutdownCtx)
	}()

	policyEngine := engine.NewOPAEvaluator()
	if err := policyEngine.HealthCheck(ctx); err != nil {
		log.Fatalf("policy engine: %v", err)
	}

	var deps server.Deps
	deps.Tokens = tokens

	var pool interface {
		Ping() error
		Close() error
	}
	if cfg.DatabaseURL != "" {
		conn, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("db: %v", err)
		}
		defer conn.Close()
		pool = conn
		deps.AuditRepo = auditrepo.NewPostgresRepository(conn)
	} else {
		log.Println("DATABASE_URL not set; audit logging disabled")
	}

	s, h := server.New(deps)

	// Readiness: flip the health service when the DB or policy engine degrades.
	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				status := grpc_health_v1.HealthCheckResponse_SERVING
				if pool != nil && pool.Ping() != nil {
					status = grpc_health_v1.HealthCheckResponse_NOT_SERVING
				}
				if policyEngine.HealthCheck(ctx) != nil {
					status = grpc_health_v1.HealthCheckResponse_NOT_SERVING
				}
				h.SetServingStatus("", status)
			}
		}
	}()

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		log.Fatalf("listen: %v", err)
	}
	defer lis.Close()

	go func() {
		log.Printf("gRPC server listening on %s", cfg.GRPCAddr)
		if err := s.Serve(lis); err != nil {
			log.Fatalf("serve: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("shutting down gRPC server...")
	h.Shutdown()
	s.GracefulStop()
	log.Println("gRPC server stopped")
}
