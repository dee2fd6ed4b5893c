// seed inserts development sample accounts for local testing.
// Idempotent: skips inserts if the dev admin (admin@example.com) already exists.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"issuehub/internal/config"
	"issuehub/internal/db"
	"issuehub/internal/security"
	userdomain "issuehub/internal/user/domain"
	userrepo "issuehub/internal/user/repository"
)

const (
	devAdminEmail = "admin@example.com"
	devUserEmail  = "dev@example.com"
	devPassword   = "password123"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set; create a .env from .env.example or set DATABASE_URL")
	}

	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer conn.Close()

	users := userrepo.NewPostgresRepository(conn)
	ctx := context.Background()

	exists, err := users.ExistsByEmail(ctx, devAdminEmail)
	if err != nil {
		log.Fatalf("seed check: %v", err)
	}
	if exists {
		log.Println("Seed already applied (admin@example.com exists). Skipping.")
		os.Exit(0)
	}

	hasher := security.NewHasher(cfg.BcryptCost)
	passwordHash, err := hasher.Hash([]byte(devPassword))
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	now := time.Now().UTC()
	accounts := []*userdomain.User{
		{
			ID:           uuid.New().String(),
			Email:        devAdminEmail,
			FullName:     "Dev Admin",
			PasswordHash: passwordHash,
			Role:         userdomain.RoleAdmin,
			CreatedAt:    now,
			UpdatedAt:    now,
		},
		{
			ID:           uuid.New().String(),
			Email:        devUserEmail,
			FullName:     "Dev User",
			PasswordHash: passwordHash,
			Role:         userdomain.RoleUser,
			CreatedAt:    now,
			UpdatedAt:    now,
		},
	}
	for _, u := range accounts {
		if err := users.Create(ctx, u); err != nil {
			log.Fatalf("create %s: %v", u.Email, err)
		}
		log.Printf("seeded %s (%s)", u.Email, u.Role)
	}
}
