package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
// It is built once at startup and treated as read-only afterwards.
type Config struct {
	// Server configuration
	Server ServerConfig

	// Database configuration
	Database DatabaseConfig

	// JWT bearer token configuration
	Auth AuthConfig

	// Object storage configuration
	Storage StorageConfig

	// Secret store configuration
	Secrets SecretsConfig

	// Logging configuration
	Log LogConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	AllowedOrigins  []string
	MigrationsPath  string
	RunMigrations   bool
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	DSN          string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
}

// AuthConfig holds token signing and validation settings
type AuthConfig struct {
	Secret   string
	Issuer   string
	Audience string
	TokenTTL time.Duration
}

// StorageConfig holds object storage settings
type StorageConfig struct {
	Bucket          string
	CredentialsJSON string
	MaxUploadSize   int64 // in bytes
	PreviewURLTTL   time.Duration
	EmbeddedURLTTL  time.Duration
}

// SecretsConfig selects the secret backend and the names of each secret
type SecretsConfig struct {
	Backend   string // "gcp" or "env"
	ProjectID string
	Names     SecretNames
}

// SecretNames are the names under which each value is kept in the secret store
type SecretNames struct {
	DatabaseDSN        string
	JWTSecret          string
	JWTIssuer          string
	JWTAudience        string
	StorageBucket      string
	StorageCredentials string
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string
	Format string // "json" or "pretty"
}

// DefaultAllowedOrigins are the browser origins allowed to call the API
var DefaultAllowedOrigins = []string{
	"http://localhost:5173",
	"https://www.incana.studio",
	"https://incana.studio",
}

// SecretSource resolves a named secret
type SecretSource interface {
	GetSecret(ctx context.Context, name string) (string, error)
}

// Load reads configuration from environment variables.
// Secret-backed fields stay empty until ResolveSecrets is called.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
			AllowedOrigins:  getListEnv("CORS_ALLOWED_ORIGINS", DefaultAllowedOrigins),
			MigrationsPath:  getEnv("MIGRATIONS_PATH", "./migrations"),
			RunMigrations:   getBoolEnv("RUN_MIGRATIONS", true),
		},
		Database: DatabaseConfig{
			MaxOpenConns: getIntEnv("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getIntEnv("DB_MAX_IDLE_CONNS", 5),
			MaxLifetime:  getDurationEnv("DB_MAX_LIFETIME", 5*time.Minute),
		},
		Auth: AuthConfig{
			TokenTTL: getDurationEnv("JWT_TOKEN_TTL", 3*time.Hour),
		},
		Storage: StorageConfig{
			MaxUploadSize:  getInt64Env("MAX_UPLOAD_SIZE", 100*1024*1024), // 100MB
			PreviewURLTTL:  getDurationEnv("STORAGE_PREVIEW_URL_TTL", 10*time.Minute),
			EmbeddedURLTTL: getDurationEnv("STORAGE_EMBEDDED_URL_TTL", 2*time.Hour),
		},
		Secrets: SecretsConfig{
			Backend:   getEnv("SECRETS_BACKEND", "gcp"),
			ProjectID: getEnv("GCP_PROJECT_ID", "incanaportfolio"),
			Names: SecretNames{
				DatabaseDSN:        getEnv("SECRET_NAME_DB", "PostgreSqlConnection"),
				JWTSecret:          getEnv("SECRET_NAME_JWT_SECRET", "JWTSecret"),
				JWTIssuer:          getEnv("SECRET_NAME_JWT_ISSUER", "ValidIssuer"),
				JWTAudience:        getEnv("SECRET_NAME_JWT_AUDIENCE", "ValidAudience"),
				StorageBucket:      getEnv("SECRET_NAME_BUCKET", "incana-portfolio-media"),
				StorageCredentials: getEnv("SECRET_NAME_SERVICE_ACCOUNT", "incana-portfolio-serv-acc"),
			},
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	if cfg.Secrets.Backend != "gcp" && cfg.Secrets.Backend != "env" {
		return nil, fmt.Errorf("SECRETS_BACKEND must be one of: gcp, env")
	}

	return cfg, nil
}

// ResolveSecrets fills the secret-backed fields from src, one lookup per secret
func (c *Config) ResolveSecrets(ctx context.Context, src SecretSource) error {
	targets := []struct {
		name string
		dst  *string
	}{
		{c.Secrets.Names.DatabaseDSN, &c.Database.DSN},
		{c.Secrets.Names.JWTSecret, &c.Auth.Secret},
		{c.Secrets.Names.JWTIssuer, &c.Auth.Issuer},
		{c.Secrets.Names.JWTAudience, &c.Auth.Audience},
		{c.Secrets.Names.StorageBucket, &c.Storage.Bucket},
		{c.Secrets.Names.StorageCredentials, &c.Storage.CredentialsJSON},
	}

	for _, t := range targets {
		value, err := src.GetSecret(ctx, t.name)
		if err != nil {
			return fmt.Errorf("failed to resolve secret %s: %w", t.name, err)
		}
		*t.dst = strings.TrimSpace(value)
	}

	return c.Validate()
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Database.DSN == "" {
		return fmt.Errorf("database connection string is required")
	}
	if c.Auth.Secret == "" {
		return fmt.Errorf("JWT signing secret is required")
	}
	if c.Auth.Issuer == "" || c.Auth.Audience == "" {
		return fmt.Errorf("JWT issuer and audience are required")
	}
	if c.Storage.Bucket == "" {
		return fmt.Errorf("storage bucket name is required")
	}
	if c.Storage.CredentialsJSON == "" {
		return fmt.Errorf("storage service account credentials are required")
	}
	return nil
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getInt64Env(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

// getListEnv splits a comma separated value, dropping empty entries
func getListEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
