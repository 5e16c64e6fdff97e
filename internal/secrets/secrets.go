package secrets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/rs/zerolog"
)

// Supported secret backends
const (
	BackendGCP = "gcp"
	BackendEnv = "env"
)

// ErrSecretNotFound is returned when a named secret has no value
var ErrSecretNotFound = errors.New("secret not found")

// Provider resolves named secrets from an external store
type Provider interface {
	GetSecret(ctx context.Context, name string) (string, error)
	Close() error
}

// New creates the provider for the given backend
func New(ctx context.Context, backend, projectID string, log zerolog.Logger) (Provider, error) {
	switch backend {
	case BackendGCP:
		return NewGCPProvider(ctx, projectID, log)
	case BackendEnv:
		return NewEnvProvider(nil), nil
	default:
		return nil, fmt.Errorf("unknown secrets backend %q", backend)
	}
}

// GCPProvider reads the latest version of secrets from Google Secret Manager
type GCPProvider struct {
	client    *secretmanager.Client
	projectID string
	log       zerolog.Logger
}

// NewGCPProvider creates a Secret Manager client using application default credentials
func NewGCPProvider(ctx context.Context, projectID string, log zerolog.Logger) (*GCPProvider, error) {
	if projectID == "" {
		return nil, fmt.Errorf("GCP project id is required for the %s secrets backend", BackendGCP)
	}

	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create secret manager client: %w", err)
	}

	return &GCPProvider{
		client:    client,
		projectID: projectID,
		log:       log.With().Str("component", "secrets").Logger(),
	}, nil
}

// GetSecret accesses projects/<project>/secrets/<name>/versions/latest
func (p *GCPProvider) GetSecret(ctx context.Context, name string) (string, error) {
	versionName := fmt.Sprintf("projects/%s/secrets/%s/versions/latest", p.projectID, name)

	resp, err := p.client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: versionName,
	})
	if err != nil {
		return "", fmt.Errorf("failed to access secret %s: %w", name, err)
	}

	data := resp.GetPayload().GetData()
	if len(data) == 0 {
		return "", fmt.Errorf("%w: %s", ErrSecretNotFound, name)
	}

	p.log.Debug().Str("secret", name).Msg("Secret resolved")
	return string(data), nil
}

// Close releases the underlying gRPC connection
func (p *GCPProvider) Close() error {
	return p.client.Close()
}

// EnvProvider reads secrets from environment variables, for local development.
// A secret named "incana-portfolio-media" is read from SECRET_INCANA_PORTFOLIO_MEDIA.
type EnvProvider struct {
	lookup func(string) (string, bool)
}

// NewEnvProvider creates an EnvProvider; a nil lookup uses os.LookupEnv
func NewEnvProvider(lookup func(string) (string, bool)) *EnvProvider {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	return &EnvProvider{lookup: lookup}
}

// GetSecret returns the value of the environment variable mapped from name
func (p *EnvProvider) GetSecret(_ context.Context, name string) (string, error) {
	value, ok := p.lookup(EnvKey(name))
	if !ok || value == "" {
		return "", fmt.Errorf("%w: %s (set %s)", ErrSecretNotFound, name, EnvKey(name))
	}
	return value, nil
}

// Close is a no-op
func (p *EnvProvider) Close() error {
	return nil
}

// EnvKey maps a secret name to its environment variable name
func EnvKey(name string) string {
	var b strings.Builder
	b.WriteString("SECRET_")
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToUpper(r))
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}
