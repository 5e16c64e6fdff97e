package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	gcs "cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
)

// URLSigner produces time-limited read URLs for stored objects
type URLSigner interface {
	SignedURL(objectName string, ttl time.Duration) (string, error)
}

// Gateway uploads blobs and signs read URLs for them
type Gateway interface {
	URLSigner
	Upload(ctx context.Context, filename, contentType string, r io.Reader) (string, error)
	Close() error
}

// GCSGateway stores objects in a Google Cloud Storage bucket
type GCSGateway struct {
	client     *gcs.Client
	bucket     string
	accessID   string
	privateKey []byte
	log        zerolog.Logger
}

// NewGCSGateway creates a storage client from service account JSON credentials.
// The same credentials are used to sign URLs.
func NewGCSGateway(ctx context.Context, bucket, credentialsJSON string, log zerolog.Logger) (*GCSGateway, error) {
	jwtCfg, err := google.JWTConfigFromJSON([]byte(credentialsJSON), gcs.ScopeReadWrite)
	if err != nil {
		return nil, fmt.Errorf("failed to parse storage service account credentials: %w", err)
	}

	client, err := gcs.NewClient(ctx, option.WithCredentialsJSON([]byte(credentialsJSON)))
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return &GCSGateway{
		client:     client,
		bucket:     bucket,
		accessID:   jwtCfg.Email,
		privateKey: jwtCfg.PrivateKey,
		log:        log.With().Str("component", "storage").Str("bucket", bucket).Logger(),
	}, nil
}

// Upload writes r under a new unique object name and returns that name
func (g *GCSGateway) Upload(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	objectName := ObjectName(filename)

	w := g.client.Bucket(g.bucket).Object(objectName).NewWriter(ctx)
	w.ContentType = contentType

	written, err := io.Copy(w, r)
	if err != nil {
		w.Close()
		return "", fmt.Errorf("failed to upload %s: %w", objectName, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize upload of %s: %w", objectName, err)
	}

	g.log.Info().
		Str("object", objectName).
		Str("content_type", contentType).
		Int64("size_bytes", written).
		Msg("Object uploaded")

	return objectName, nil
}

// SignedURL returns a V4 signed GET URL for objectName valid for ttl
func (g *GCSGateway) SignedURL(objectName string, ttl time.Duration) (string, error) {
	url, err := g.client.Bucket(g.bucket).SignedURL(objectName, &gcs.SignedURLOptions{
		GoogleAccessID: g.accessID,
		PrivateKey:     g.privateKey,
		Method:         http.MethodGet,
		Expires:        time.Now().Add(ttl),
		Scheme:         gcs.SigningSchemeV4,
	})
	if err != nil {
		return "", fmt.Errorf("failed to sign URL for %s: %w", objectName, err)
	}
	return url, nil
}

// Close releases the storage client
func (g *GCSGateway) Close() error {
	return g.client.Close()
}

// ObjectName builds "<uuid>-<base filename>" for an uploaded file
func ObjectName(filename string) string {
	base := path.Base(strings.ReplaceAll(filename, `\`, "/"))
	if base == "." || base == "/" {
		base = "upload"
	}
	return fmt.Sprintf("%s-%s", uuid.New().String(), base)
}
