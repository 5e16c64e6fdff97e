package config

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

type mapSource map[string]string

func (m mapSource) GetSecret(_ context.Context, name string) (string, error) {
	v, ok := m[name]
	if !ok {
		return "", errors.New("no such secret")
	}
	return v, nil
}

func fullSource() mapSource {
	return mapSource{
		"PostgreSqlConnection":      "postgres://u:p@localhost/portfolio?sslmode=disable\n",
		"JWTSecret":                 "signing-secret",
		"ValidIssuer":               "portfolio-api",
		"ValidAudience":             "portfolio-web",
		"incana-portfolio-media":    "media-bucket",
		"incana-portfolio-serv-acc": `{"type":"service_account"}`,
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("SECRETS_BACKEND", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	t.Setenv("RUN_MIGRATIONS", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("Expected port 8080, got %s", cfg.Server.Port)
	}
	if cfg.Auth.TokenTTL != 3*time.Hour {
		t.Errorf("Expected 3h token TTL, got %s", cfg.Auth.TokenTTL)
	}
	if cfg.Storage.PreviewURLTTL != 10*time.Minute {
		t.Errorf("Expected 10m preview TTL, got %s", cfg.Storage.PreviewURLTTL)
	}
	if cfg.Storage.EmbeddedURLTTL != 2*time.Hour {
		t.Errorf("Expected 2h embedded URL TTL, got %s", cfg.Storage.EmbeddedURLTTL)
	}
	if len(cfg.Server.AllowedOrigins) != len(DefaultAllowedOrigins) {
		t.Errorf("Expected default origins, got %v", cfg.Server.AllowedOrigins)
	}
	if !cfg.Server.RunMigrations {
		t.Error("Expected migrations to run by default")
	}
	if cfg.Secrets.Backend != "gcp" {
		t.Errorf("Expected gcp backend, got %s", cfg.Secrets.Backend)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SECRETS_BACKEND", "env")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("JWT_TOKEN_TTL", "90m")
	t.Setenv("DB_MAX_OPEN_CONNS", "not-a-number")
	t.Setenv("RUN_MIGRATIONS", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("Expected port 9090, got %s", cfg.Server.Port)
	}
	if got := strings.Join(cfg.Server.AllowedOrigins, "|"); got != "https://a.example|https://b.example" {
		t.Errorf("Unexpected origins: %s", got)
	}
	if cfg.Auth.TokenTTL != 90*time.Minute {
		t.Errorf("Expected 90m, got %s", cfg.Auth.TokenTTL)
	}
	if cfg.Server.RunMigrations {
		t.Error("Expected RUN_MIGRATIONS=false to disable migrations")
	}
	if cfg.Database.MaxOpenConns != 25 {
		t.Errorf("Expected fallback 25 on bad int, got %d", cfg.Database.MaxOpenConns)
	}
}

func TestLoad_InvalidBackend(t *testing.T) {
	t.Setenv("SECRETS_BACKEND", "vault")

	if _, err := Load(); err == nil {
		t.Error("Expected error for unknown secrets backend")
	}
}

func TestResolveSecrets(t *testing.T) {
	t.Setenv("SECRETS_BACKEND", "")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if err := cfg.ResolveSecrets(context.Background(), fullSource()); err != nil {
		t.Fatalf("ResolveSecrets failed: %v", err)
	}

	if cfg.Database.DSN != "postgres://u:p@localhost/portfolio?sslmode=disable" {
		t.Errorf("DSN not trimmed/resolved: %q", cfg.Database.DSN)
	}
	if cfg.Auth.Secret != "signing-secret" || cfg.Auth.Issuer != "portfolio-api" || cfg.Auth.Audience != "portfolio-web" {
		t.Errorf("Auth secrets not resolved: %+v", cfg.Auth)
	}
	if cfg.Storage.Bucket != "media-bucket" {
		t.Errorf("Expected media-bucket, got %s", cfg.Storage.Bucket)
	}
}

func TestResolveSecrets_Missing(t *testing.T) {
	t.Setenv("SECRETS_BACKEND", "")
	cfg, _ := Load()

	src := fullSource()
	delete(src, "JWTSecret")

	err := cfg.ResolveSecrets(context.Background(), src)
	if err == nil {
		t.Fatal("Expected error for missing secret")
	}
	if !strings.Contains(err.Error(), "JWTSecret") {
		t.Errorf("Expected error to name the secret, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{}
	if err := cfg.Validate(); err == nil {
		t.Error("Expected validation error for empty config")
	}
}
