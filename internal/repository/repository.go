package repository

import (
	"context"
	"errors"

	"github.com/portfolio-api/internal/database"
	"github.com/portfolio-api/internal/models"
)

var (
	// ErrConcurrentUpdate is returned when an article changed since it was read
	ErrConcurrentUpdate = errors.New("article was modified concurrently")

	// ErrInvalidParent is returned when a parent comment is missing or belongs to another article
	ErrInvalidParent = errors.New("parent comment does not belong to article")

	// ErrArticleNotFound is returned when a write references a missing article
	ErrArticleNotFound = errors.New("article not found")
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Exists(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context) (int, error)
}

// ArticleRepository defines the interface for article data operations
type ArticleRepository interface {
	Create(ctx context.Context, article *models.Article) error
	GetByID(ctx context.Context, id int64) (*models.Article, error)
	List(ctx context.Context) ([]*models.Article, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Update(ctx context.Context, article *models.Article) error
	Delete(ctx context.Context, id int64) (bool, error)
	Count(ctx context.Context) (int, error)
}

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	ListByArticle(ctx context.Context, articleID int64) ([]*models.Comment, error)
	ExistsInArticle(ctx context.Context, commentID, articleID int64) (bool, error)
	Count(ctx context.Context) (int, error)
}

// ChatMessageRepository defines the interface for chat message data operations
type ChatMessageRepository interface {
	Create(ctx context.Context, message *models.ChatMessage) error
	List(ctx context.Context) ([]*models.ChatMessage, error)
	MarkAsRead(ctx context.Context, id int64) (bool, error)
	Count(ctx context.Context) (int, error)
	CountUnread(ctx context.Context) (int, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	User    UserRepository
	Article ArticleRepository
	Comment CommentRepository
	Chat    ChatMessageRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		User:    NewUserRepo(db),
		Article: NewArticleRepo(db),
		Comment: NewCommentRepo(db),
		Chat:    NewChatMessageRepo(db),
	}
}
