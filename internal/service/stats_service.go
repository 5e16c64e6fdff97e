package service

import (
	"context"
	"fmt"

	"github.com/portfolio-api/internal/repository"
)

// Resources reported by StatsService
const (
	ResourceUsers        = "users"
	ResourceArticles     = "articles"
	ResourceComments     = "comments"
	ResourceChatMessages = "chat_messages"
	ResourceUnreadChat   = "unread_chat_messages"
)

type statsService struct {
	repos *repository.Repositories
}

func newStatsService(repos *repository.Repositories) *statsService {
	return &statsService{repos: repos}
}

// GetCount returns the number of stored records of a resource
func (s *statsService) GetCount(ctx context.Context, resource string) (int, error) {
	switch resource {
	case ResourceUsers:
		return s.repos.User.Count(ctx)
	case ResourceArticles:
		return s.repos.Article.Count(ctx)
	case ResourceComments:
		return s.repos.Comment.Count(ctx)
	case ResourceChatMessages:
		return s.repos.Chat.Count(ctx)
	case ResourceUnreadChat:
		return s.repos.Chat.CountUnread(ctx)
	default:
		return 0, fmt.Errorf("unknown resource: %s", resource)
	}
}
