package mocks

import (
	"context"
	"io"

	"github.com/portfolio-api/internal/auth"
	"github.com/portfolio-api/internal/models"
	"github.com/portfolio-api/internal/service"
)

// MockStatsService is a mock implementation of StatsService
type MockStatsService struct {
	Counts map[string]int
}

// Verify interface compliance
var _ service.StatsService = (*MockStatsService)(nil)

func NewMockStatsService() *MockStatsService {
	return &MockStatsService{Counts: make(map[string]int)}
}

func (m *MockStatsService) GetCount(ctx context.Context, resource string) (int, error) {
	return m.Counts[resource], nil
}

// MockFileService is a mock implementation of FileService
type MockFileService struct {
	UploadFunc func(ctx context.Context, filename, contentType string, size int64, r io.Reader) (*models.UploadResponse, error)
	Uploaded   []string
}

// Verify interface compliance
var _ service.FileService = (*MockFileService)(nil)

func (m *MockFileService) Upload(ctx context.Context, filename, contentType string, size int64, r io.Reader) (*models.UploadResponse, error) {
	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, filename, contentType, size, r)
	}
	m.Uploaded = append(m.Uploaded, filename)
	return &models.UploadResponse{PreviewURL: "https://storage.test/preview/" + filename, ObjectName: "obj-" + filename}, nil
}

// MockAuthService is a mock implementation of AuthService that accepts tokens listed in Tokens
type MockAuthService struct {
	Tokens    map[string]auth.Principal
	LoginFunc func(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
}

// Verify interface compliance
var _ service.AuthService = (*MockAuthService)(nil)

func NewMockAuthService() *MockAuthService {
	return &MockAuthService{Tokens: make(map[string]auth.Principal)}
}

func (m *MockAuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, req)
	}
	return nil, service.ErrInvalidCredentials
}

func (m *MockAuthService) Authenticate(token string) (auth.Principal, error) {
	if p, ok := m.Tokens[token]; ok {
		return p, nil
	}
	return auth.Principal{}, &service.Error{Kind: service.ErrUnauthorized, Message: "invalid or expired token"}
}

// MockHealthChecker is a mock implementation of HealthChecker
type MockHealthChecker struct {
	Err error
}

// Verify interface compliance
var _ service.HealthChecker = (*MockHealthChecker)(nil)

func (m *MockHealthChecker) HealthCheck(ctx context.Context) error {
	return m.Err
}
