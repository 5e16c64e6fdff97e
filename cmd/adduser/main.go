// Command adduser creates an author account that can sign in to the API.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/portfolio-api/internal/auth"
	"github.com/portfolio-api/internal/config"
	"github.com/portfolio-api/internal/database"
	"github.com/portfolio-api/internal/models"
	"github.com/portfolio-api/internal/repository"
	"github.com/portfolio-api/internal/secrets"
	"github.com/portfolio-api/internal/validation"
	"github.com/portfolio-api/pkg/logger"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var username, email, password, dsn string

	flagSet := pflag.NewFlagSet("adduser", pflag.ContinueOnError)
	flagSet.StringVarP(&username, "username", "u", "", "display name shown on articles")
	flagSet.StringVarP(&email, "email", "e", "", "sign in email")
	flagSet.StringVarP(&password, "password", "p", "", "sign in password (default: $ADDUSER_PASSWORD)")
	flagSet.StringVar(&dsn, "dsn", "", "postgres connection string (default: resolved from the secret store)")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	if password == "" {
		password = os.Getenv("ADDUSER_PASSWORD")
	}
	username = strings.TrimSpace(username)
	if username == "" {
		return errors.New("--username is required")
	}
	if errs := validation.ValidateLogin(&models.LoginRequest{Email: email, Password: password}); len(errs) > 0 {
		return errs
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Format)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if dsn == "" {
		provider, err := secrets.New(ctx, cfg.Secrets.Backend, cfg.Secrets.ProjectID, log)
		if err != nil {
			return err
		}
		defer provider.Close()

		if dsn, err = provider.GetSecret(ctx, cfg.Secrets.Names.DatabaseDSN); err != nil {
			return fmt.Errorf("failed to resolve database connection string: %w", err)
		}
	}
	cfg.Database.DSN = strings.TrimSpace(dsn)

	db, err := database.New(&cfg.Database, log)
	if err != nil {
		return err
	}
	defer db.Close()

	users := repository.NewUserRepo(db)

	existing, err := users.GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to look up email: %w", err)
	}
	if existing != nil {
		return fmt.Errorf("a user with email %s already exists", email)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := users.Create(ctx, user); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	log.Info().Str("user_id", user.ID).Str("username", user.Username).Msg("User created")
	return nil
}
