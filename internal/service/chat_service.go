package service

import (
	"context"
	"fmt"
	"time"

	"github.com/portfolio-api/internal/models"
	"github.com/portfolio-api/internal/repository"
	"github.com/portfolio-api/internal/validation"
	"github.com/rs/zerolog"
)

// chatService is the concrete implementation of ChatService
type chatService struct {
	messages repository.ChatMessageRepository
	log      zerolog.Logger
	now      func() time.Time
}

func newChatService(messages repository.ChatMessageRepository, log zerolog.Logger) *chatService {
	return &chatService{
		messages: messages,
		log:      log.With().Str("service", "chat").Logger(),
		now:      time.Now,
	}
}

// List returns every message, oldest first
func (s *chatService) List(ctx context.Context) ([]*models.ChatMessage, error) {
	messages, err := s.messages.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list chat messages: %w", err)
	}
	return messages, nil
}

// Create stores an unread message
func (s *chatService) Create(ctx context.Context, req *models.ChatMessageCreateRequest) (*models.ChatMessage, error) {
	if errs := validation.ValidateChatMessage(req); len(errs) > 0 {
		return nil, &Error{Kind: ErrBadRequest, Message: errs.Error(), Err: errs}
	}

	message := &models.ChatMessage{
		SenderName:     req.SenderName,
		MessageContent: req.MessageContent,
		Timestamp:      s.now().UTC(),
		IsRead:         false,
	}
	if err := s.messages.Create(ctx, message); err != nil {
		return nil, fmt.Errorf("failed to create chat message: %w", err)
	}

	s.log.Info().Int64("message_id", message.ID).Msg("Chat message received")
	return message, nil
}

// MarkAsRead flags a message as read
func (s *chatService) MarkAsRead(ctx context.Context, id int64) error {
	found, err := s.messages.MarkAsRead(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to mark chat message %d as read: %w", id, err)
	}
	if !found {
		return notFound("chat message not found")
	}
	return nil
}
