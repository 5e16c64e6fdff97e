package service

import (
	"context"
	"fmt"
	"io"

	"github.com/portfolio-api/internal/config"
	"github.com/portfolio-api/internal/models"
	"github.com/portfolio-api/internal/storage"
	"github.com/rs/zerolog"
)

// fileService is the concrete implementation of FileService
type fileService struct {
	gateway storage.Gateway
	cfg     config.StorageConfig
	log     zerolog.Logger
}

func newFileService(gateway storage.Gateway, cfg config.StorageConfig, log zerolog.Logger) *fileService {
	return &fileService{
		gateway: gateway,
		cfg:     cfg,
		log:     log.With().Str("service", "file").Logger(),
	}
}

// Upload stores the file and returns its object name and a short-lived preview URL
func (s *fileService) Upload(ctx context.Context, filename, contentType string, size int64, r io.Reader) (*models.UploadResponse, error) {
	if r == nil || size <= 0 {
		return nil, badRequest("No file uploaded.")
	}
	if s.cfg.MaxUploadSize > 0 && size > s.cfg.MaxUploadSize {
		return nil, badRequest(fmt.Sprintf("file too large, max size is %d MB", s.cfg.MaxUploadSize/(1024*1024)))
	}

	objectName, err := s.gateway.Upload(ctx, filename, contentType, r)
	if err != nil {
		return nil, fmt.Errorf("failed to upload file: %w", err)
	}

	previewURL, err := s.gateway.SignedURL(objectName, s.cfg.PreviewURLTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to sign preview URL: %w", err)
	}

	s.log.Info().
		Str("object", objectName).
		Int64("size_bytes", size).
		Msg("File uploaded")

	return &models.UploadResponse{PreviewURL: previewURL, ObjectName: objectName}, nil
}
