package mocks

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/portfolio-api/internal/storage"
)

// SignedURLCall records one SignedURL request
type SignedURLCall struct {
	ObjectName string
	TTL        time.Duration
}

// MockGateway is an in-memory storage gateway
type MockGateway struct {
	mu sync.Mutex

	Objects     map[string][]byte
	ContentType map[string]string
	SignCalls   []SignedURLCall
	UploadErr   error
	SignErr     error
}

// Verify interface compliance
var _ storage.Gateway = (*MockGateway)(nil)

func NewMockGateway() *MockGateway {
	return &MockGateway{
		Objects:     make(map[string][]byte),
		ContentType: make(map[string]string),
	}
}

func (m *MockGateway) Upload(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	if m.UploadErr != nil {
		return "", m.UploadErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	name := storage.ObjectName(filename)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.Objects[name] = data
	m.ContentType[name] = contentType
	return name, nil
}

func (m *MockGateway) SignedURL(objectName string, ttl time.Duration) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SignCalls = append(m.SignCalls, SignedURLCall{ObjectName: objectName, TTL: ttl})
	if m.SignErr != nil {
		return "", m.SignErr
	}
	return SignedURLFor(objectName, ttl), nil
}

func (m *MockGateway) Close() error {
	return nil
}

// SignedURLFor is the URL MockGateway returns for an object
func SignedURLFor(objectName string, ttl time.Duration) string {
	return fmt.Sprintf("https://storage.test/media/%s?expires=%d", objectName, int64(ttl.Seconds()))
}
