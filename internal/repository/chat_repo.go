package repository

import (
	"context"

	"github.com/portfolio-api/internal/database"
	"github.com/portfolio-api/internal/models"
)

// chatMessageRepo is the concrete implementation of ChatMessageRepository
type chatMessageRepo struct {
	db *database.DB
}

// NewChatMessageRepo creates a new chat message repository
func NewChatMessageRepo(db *database.DB) ChatMessageRepository {
	return &chatMessageRepo{db: db}
}

// Create inserts a new message and fills in its generated ID
func (r *chatMessageRepo) Create(ctx context.Context, message *models.ChatMessage) error {
	query := `
		INSERT INTO chat_messages (sender_name, message_content, timestamp, is_read)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	return r.db.QueryRowContext(ctx, query,
		message.SenderName, message.MessageContent, message.Timestamp, message.IsRead,
	).Scan(&message.ID)
}

// List returns all messages, oldest first
func (r *chatMessageRepo) List(ctx context.Context) ([]*models.ChatMessage, error) {
	query := `
		SELECT id, sender_name, message_content, timestamp, is_read
		FROM chat_messages ORDER BY timestamp, id
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := make([]*models.ChatMessage, 0)
	for rows.Next() {
		var m models.ChatMessage
		if err := rows.Scan(&m.ID, &m.SenderName, &m.MessageContent, &m.Timestamp, &m.IsRead); err != nil {
			return nil, err
		}
		messages = append(messages, &m)
	}
	return messages, rows.Err()
}

// MarkAsRead flags a message as read; false means no such message
func (r *chatMessageRepo) MarkAsRead(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, "UPDATE chat_messages SET is_read = TRUE WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// Count returns the total number of messages
func (r *chatMessageRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM chat_messages").Scan(&count)
	return count, err
}

// CountUnread returns the number of unread messages
func (r *chatMessageRepo) CountUnread(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM chat_messages WHERE NOT is_read").Scan(&count)
	return count, err
}
