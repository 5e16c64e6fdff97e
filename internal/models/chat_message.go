package models

import (
	"time"
)

// Chat message length limits
const (
	MaxSenderNameLength     = 100
	MaxMessageContentLength = 2000
)

// ChatMessage is a message left through the public contact chat
type ChatMessage struct {
	ID             int64     `json:"id" db:"id"`
	SenderName     string    `json:"senderName" db:"sender_name"`
	MessageContent string    `json:"messageContent" db:"message_content"`
	Timestamp      time.Time `json:"timestamp" db:"timestamp"`
	IsRead         bool      `json:"isRead" db:"is_read"`
}

// ChatMessageCreateRequest is the body of POST /api/chat
type ChatMessageCreateRequest struct {
	SenderName     string `json:"senderName"`
	MessageContent string `json:"messageContent"`
}
