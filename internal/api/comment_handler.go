package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/portfolio-api/internal/models"
	"github.com/portfolio-api/internal/service"
	"github.com/rs/zerolog"
)

// CommentHandler handles the comment endpoints nested under an article
type CommentHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(services *service.Services, log zerolog.Logger) *CommentHandler {
	return &CommentHandler{
		services: services,
		log:      log.With().Str("handler", "comment").Logger(),
	}
}

// ListComments handles GET /api/articles/:id/comments
func (h *CommentHandler) ListComments(c *gin.Context) {
	articleID, ok := parseID(c, "id")
	if !ok {
		return
	}

	comments, err := h.services.Comment.ListByArticle(c.Request.Context(), articleID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

// CreateComment handles POST /api/articles/:id/comments
func (h *CommentHandler) CreateComment(c *gin.Context) {
	articleID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req models.CommentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	comment, err := h.services.Comment.Create(c.Request.Context(), articleID, &req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.Header("Location", fmt.Sprintf("/api/articles/%d/comments", articleID))
	c.JSON(http.StatusCreated, comment)
}
