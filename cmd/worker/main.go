// Worker sweeps expired refresh tokens from the database on an interval.
// Expired tokens are already rejected at refresh time; the sweep keeps the
// table from accumulating rows for users who never return. GRPC_ADDR is
// required by config but unused (e.g. set to :0).
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"issuehub/internal/config"
	"issuehub/internal/db"
	sessionrepo "issuehub/internal/session/repository"
	sessionservice "issuehub/internal/session/service"
)

func main() {
	interval := flag.Duration("interval", time.Hour, "Time between sweeps")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("worker: DATABASE_URL is required")
	}

	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("worker: db: %v", err)
	}
	defer conn.Close()

	sessions := sessionservice.NewRefreshTokenService(
		sessionrepo.NewPostgresRepository(conn), cfg.RefreshTTL())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Println("worker: shutting down...")
		cancel()
	}()

	log.Printf("worker: sweeping expired refresh tokens every %s", *interval)

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()
	for {
		sweepCtx, sweepCancel := context.WithTimeout(ctx, 30*time.Second)
		n, err := sessions.SweepExpired(sweepCtx)
		sweepCancel()
		if err != nil {
			log.Printf("worker: sweep failed: %v", err)
		} else if n > 0 {
			log.Printf("worker: removed %d expired refresh tokens", n)
		}

		select {
		case <-ctx.Done():
			log.Println("worker: stopped")
			return
		case <-ticker.C:
		}
	}
}
