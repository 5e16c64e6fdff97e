package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/portfolio-api/internal/config"
	"github.com/portfolio-api/internal/service"
	"github.com/rs/zerolog"
)

// FileHandler handles media uploads
type FileHandler struct {
	services *service.Services
	cfg      *config.Config
	log      zerolog.Logger
}

// NewFileHandler creates a new FileHandler
func NewFileHandler(services *service.Services, cfg *config.Config, log zerolog.Logger) *FileHandler {
	return &FileHandler{
		services: services,
		cfg:      cfg,
		log:      log.With().Str("handler", "file").Logger(),
	}
}

// Upload handles POST /api/files/upload with a multipart "file" field
func (h *FileHandler) Upload(c *gin.Context) {
	// Limit request size; the service rejects the individual file by its declared size
	if h.cfg.Storage.MaxUploadSize > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.cfg.Storage.MaxUploadSize+1<<20)
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file too large"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded."})
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	resp, err := h.services.File.Upload(c.Request.Context(), header.Filename, contentType, header.Size, file)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
