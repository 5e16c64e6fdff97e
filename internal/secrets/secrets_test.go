package secrets

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
)

func TestEnvKey(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"PostgreSqlConnection", "SECRET_POSTGRESQLCONNECTION"},
		{"incana-portfolio-media", "SECRET_INCANA_PORTFOLIO_MEDIA"},
		{"JWTSecret", "SECRET_JWTSECRET"},
		{"a.b c", "SECRET_A_B_C"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EnvKey(tt.name); got != tt.want {
				t.Errorf("EnvKey(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestEnvProvider_GetSecret(t *testing.T) {
	env := map[string]string{
		"SECRET_JWTSECRET":        "super-secret",
		"SECRET_EMPTY_VALUE_HERE": "",
	}
	p := NewEnvProvider(func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	})
	ctx := context.Background()

	value, err := p.GetSecret(ctx, "JWTSecret")
	if err != nil {
		t.Fatalf("GetSecret failed: %v", err)
	}
	if value != "super-secret" {
		t.Errorf("Expected super-secret, got %q", value)
	}

	if _, err := p.GetSecret(ctx, "missing"); !errors.Is(err, ErrSecretNotFound) {
		t.Errorf("Expected ErrSecretNotFound, got %v", err)
	}

	if _, err := p.GetSecret(ctx, "empty-value-here"); !errors.Is(err, ErrSecretNotFound) {
		t.Errorf("Expected ErrSecretNotFound for empty value, got %v", err)
	}
}

func TestNew_UnknownBackend(t *testing.T) {
	if _, err := New(context.Background(), "vault", "", zerolog.Nop()); err == nil {
		t.Error("Expected error for unknown backend")
	}
}

func TestNew_EnvBackend(t *testing.T) {
	p, err := New(context.Background(), BackendEnv, "", zerolog.Nop())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if _, ok := p.(*EnvProvider); !ok {
		t.Errorf("Expected *EnvProvider, got %T", p)
	}
}
