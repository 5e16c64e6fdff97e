package service

import (
	"context"
	"io"

	"github.com/portfolio-api/internal/auth"
	"github.com/portfolio-api/internal/config"
	"github.com/portfolio-api/internal/content"
	"github.com/portfolio-api/internal/models"
	"github.com/portfolio-api/internal/repository"
	"github.com/portfolio-api/internal/storage"
	"github.com/rs/zerolog"
)

// ArticleService defines the interface for article operations
type ArticleService interface {
	List(ctx context.Context) ([]models.ArticleDTO, error)
	Get(ctx context.Context, id int64) (*models.ArticleDTO, error)
	Create(ctx context.Context, caller auth.Principal, req *models.ArticleRequest) (*models.ArticleDTO, error)
	Update(ctx context.Context, caller auth.Principal, id int64, req *models.ArticleRequest) error
	Delete(ctx context.Context, caller auth.Principal, id int64) error
}

// CommentService defines the interface for comment operations
type CommentService interface {
	ListByArticle(ctx context.Context, articleID int64) ([]models.CommentDTO, error)
	Create(ctx context.Context, articleID int64, req *models.CommentCreateRequest) (*models.CommentDTO, error)
}

// ChatService defines the interface for chat message operations
type ChatService interface {
	List(ctx context.Context) ([]*models.ChatMessage, error)
	Create(ctx context.Context, req *models.ChatMessageCreateRequest) (*models.ChatMessage, error)
	MarkAsRead(ctx context.Context, id int64) error
}

// FileService defines the interface for media uploads
type FileService interface {
	Upload(ctx context.Context, filename, contentType string, size int64, r io.Reader) (*models.UploadResponse, error)
}

// AuthService defines the interface for signing in
type AuthService interface {
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
	Authenticate(token string) (auth.Principal, error)
}

// StatsService reports entity counts
type StatsService interface {
	GetCount(ctx context.Context, resource string) (int, error)
}

// HealthChecker reports whether a backing dependency is reachable
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Services holds all service interfaces
type Services struct {
	Article ArticleService
	Comment CommentService
	Chat    ChatService
	File    FileService
	Auth    AuthService
	Stats   StatsService
	Health  HealthChecker
}

// NewServices creates all services
func NewServices(
	repos *repository.Repositories,
	gateway storage.Gateway,
	tokens *auth.TokenManager,
	health HealthChecker,
	cfg *config.Config,
	log zerolog.Logger,
) *Services {
	resolver := content.NewResolver(gateway, cfg.Storage.EmbeddedURLTTL)

	return &Services{
		Article: newArticleService(repos, resolver, log),
		Comment: newCommentService(repos, log),
		Chat:    newChatService(repos.Chat, log),
		File:    newFileService(gateway, cfg.Storage, log),
		Auth:    newAuthService(repos.User, tokens, log),
		Stats:   newStatsService(repos),
		Health:  health,
	}
}
