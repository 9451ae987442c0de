// Command seed-admin creates the first admin profile for the console.
//
//	go run ./cmd/seed-admin -email admin@example.com -name "Site Admin" -password '…'
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"tourbook/config"
	"tourbook/database"
	"tourbook/logger"
	"tourbook/models"
	"tourbook/repository"
)

var errProfileExists = errors.New("a profile with this email already exists")

type profileStore interface {
	FindByEmail(ctx context.Context, email string) (*models.Profile, error)
	Create(ctx context.Context, p models.Profile) (*models.Profile, error)
}

func main() {
	email := flag.String("email", "", "admin `email` (required)")
	name := flag.String("name", "", "admin full `name`")
	password := flag.String("password", os.Getenv("ADMIN_PASSWORD"), "admin `password`, defaults to $ADMIN_PASSWORD")
	migrate := flag.Bool("migrate", false, "create missing tables before seeding")
	flag.Parse()

	cfg, err := config.Load()
	if cfg == nil || cfg.DatabaseURL == "" {
		log.Fatalf("DATABASE_URL is not set: %v", err)
	}

	zlog, err := logger.New(cfg.Environment)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zlog.Sync() //nolint:errcheck

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		zlog.Fatal("Database unavailable", zap.Error(err))
	}
	defer pool.Close()

	if *migrate {
		if err := database.Migrate(ctx, pool); err != nil {
			zlog.Fatal("Migration failed", zap.Error(err))
		}
		zlog.Info("Schema is up to date")
	}

	profile, err := seedAdmin(ctx, repository.NewProfiles(pool), *email, *name, *password)
	if err != nil {
		zlog.Fatal("Admin not created", zap.String("email", *email), zap.Error(err))
	}
	zlog.Info("Admin created", zap.String("id", profile.ID), zap.String("email", profile.Email))
}

// seedAdmin validates the input, hashes the password and inserts an admin
// profile unless the email is already taken.
func seedAdmin(ctx context.Context, store profileStore, email, name, password string) (*models.Profile, error) {
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("invalid email %q", email)
	}
	if len(password) < 8 {
		return nil, errors.New("password must be at least 8 characters")
	}

	_, err := store.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, errProfileExists
	case !errors.Is(err, repository.ErrNotFound):
		return nil, fmt.Errorf("check existing profile: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	profile := models.Profile{
		Email:        email,
		Role:         models.RoleAdmin,
		PasswordHash: string(hash),
	}
	if name = strings.TrimSpace(name); name != "" {
		profile.FullName = &name
	}
	return store.Create(ctx, profile)
}
