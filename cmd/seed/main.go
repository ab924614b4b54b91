// Package main seeds a fresh database with an admin user and the
// baseline product type and quality options.
package main

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"

	"gyh/internal/config"
	"gyh/internal/core/apperror"
	"gyh/internal/domain/auth"
	"gyh/internal/domain/catalogs/option"
	"gyh/internal/infrastructure/storage/postgres"
	"gyh/internal/infrastructure/storage/postgres/auth_repo"
	"gyh/internal/infrastructure/storage/postgres/catalog_repo"
	"gyh/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{Level: cfg.LogLevel, Development: cfg.Development})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(cfg.DatabaseURL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	txManager := postgres.NewTxManager(pool)

	if err := seedAdmin(ctx, auth_repo.NewUserRepo(txManager)); err != nil {
		log.Fatalw("failed to seed admin user", "error", err)
	}
	if err := seedOptions(ctx, catalog_repo.NewOptionRepo(txManager)); err != nil {
		log.Fatalw("failed to seed options", "error", err)
	}

	log.Info("seed complete")
}

func seedAdmin(ctx context.Context, users *auth_repo.UserRepo) error {
	username := envOr("SEED_ADMIN_USERNAME", "admin")
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		return fmt.Errorf("required environment variable SEED_ADMIN_PASSWORD not set")
	}

	if _, err := users.GetByUsername(ctx, username); err == nil {
		logger.Info(ctx, "admin user already exists", "username", username)
		return nil
	} else if !apperror.IsNotFound(err) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	u := auth.NewUser(username, string(hash), "ADMIN")
	if err := users.Create(ctx, u); err != nil {
		return err
	}
	logger.Info(ctx, "admin user created", "username", username)
	return nil
}

func seedOptions(ctx context.Context, options *catalog_repo.OptionRepo) error {
	baseline := map[option.Kind][]string{
		option.KindProductType:    {"Papa", "Cebolla", "Zanahoria"},
		option.KindProductQuality: {"Primera", "Segunda", "Tercera"},
	}

	for kind, names := range baseline {
		for _, name := range names {
			if _, err := options.FindByName(ctx, kind, name); err == nil {
				continue
			} else if !apperror.IsNotFound(err) {
				return err
			}
			if err := options.Create(ctx, option.New(kind, name)); err != nil {
				return err
			}
			logger.Info(ctx, "option created", "kind", string(kind), "name", name)
		}
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
