package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/portfolio-api/internal/models"
	"github.com/portfolio-api/internal/service"
	"github.com/rs/zerolog"
)

// ChatHandler handles chat endpoints
type ChatHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewChatHandler creates a new ChatHandler
func NewChatHandler(services *service.Services, log zerolog.Logger) *ChatHandler {
	return &ChatHandler{
		services: services,
		log:      log.With().Str("handler", "chat").Logger(),
	}
}

// ListMessages handles GET /api/chat
func (h *ChatHandler) ListMessages(c *gin.Context) {
	messages, err := h.services.Chat.List(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, messages)
}

// SendMessage handles POST /api/chat
func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req models.ChatMessageCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if _, err := h.services.Chat.Create(c.Request.Context(), &req); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "message sent :)"})
}

// MarkAsRead handles PUT /api/chat/:id/read
func (h *ChatHandler) MarkAsRead(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.services.Chat.MarkAsRead(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
