package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/portfolio-api/internal/api"
	"github.com/portfolio-api/internal/auth"
	"github.com/portfolio-api/internal/config"
	"github.com/portfolio-api/internal/database"
	"github.com/portfolio-api/internal/repository"
	"github.com/portfolio-api/internal/secrets"
	"github.com/portfolio-api/internal/service"
	"github.com/portfolio-api/internal/storage"
	"github.com/portfolio-api/pkg/logger"
)

func main() {
	// Local development reads a .env file; deployments use real environment variables
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		panic(err)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	log.Info().Msg("Starting portfolio API server...")

	// Resolve secrets
	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStartup()

	provider, err := secrets.New(startupCtx, cfg.Secrets.Backend, cfg.Secrets.ProjectID, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create secret provider")
	}
	if err := cfg.ResolveSecrets(startupCtx, provider); err != nil {
		log.Fatal().Err(err).Str("backend", cfg.Secrets.Backend).Msg("Failed to resolve secrets")
	}
	provider.Close()

	// Initialize database
	db, err := database.New(&cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	// Run migrations
	if cfg.Server.RunMigrations {
		if err := db.RunMigrations(cfg.Server.MigrationsPath); err != nil {
			log.Fatal().Err(err).Msg("Failed to run database migrations")
		}
	}

	// Initialize object storage
	gateway, err := storage.NewGCSGateway(context.Background(), cfg.Storage.Bucket, cfg.Storage.CredentialsJSON, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize object storage")
	}
	defer gateway.Close()

	tokens := auth.NewTokenManager(auth.TokenConfig{
		Secret:   cfg.Auth.Secret,
		Issuer:   cfg.Auth.Issuer,
		Audience: cfg.Auth.Audience,
		TTL:      cfg.Auth.TokenTTL,
	})

	// Initialize repositories
	repos := repository.New(db)

	// Initialize services
	services := service.NewServices(repos, gateway, tokens, db, cfg, log)

	// Initialize router
	router := api.NewRouter(services, cfg, log)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited gracefully")
}
