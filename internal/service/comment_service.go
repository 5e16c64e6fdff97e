package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/portfolio-api/internal/models"
	"github.com/portfolio-api/internal/repository"
	"github.com/portfolio-api/internal/validation"
	"github.com/rs/zerolog"
)

const (
	msgArticleNotFound = "Article not found."
	msgParentNotFound  = "Parent Comment not found!"
)

// commentService is the concrete implementation of CommentService
type commentService struct {
	articles repository.ArticleRepository
	comments repository.CommentRepository
	log      zerolog.Logger
	now      func() time.Time
}

func newCommentService(repos *repository.Repositories, log zerolog.Logger) *commentService {
	return &commentService{
		articles: repos.Article,
		comments: repos.Comment,
		log:      log.With().Str("service", "comment").Logger(),
		now:      time.Now,
	}
}

// ListByArticle returns the comments of an existing article
func (s *commentService) ListByArticle(ctx context.Context, articleID int64) ([]models.CommentDTO, error) {
	if err := s.requireArticle(ctx, articleID); err != nil {
		return nil, err
	}

	comments, err := s.comments.ListByArticle(ctx, articleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments of article %d: %w", articleID, err)
	}
	return models.CommentDTOs(comments), nil
}

// Create adds a comment; a reply's parent must be on the same article
func (s *commentService) Create(ctx context.Context, articleID int64, req *models.CommentCreateRequest) (*models.CommentDTO, error) {
	if err := s.requireArticle(ctx, articleID); err != nil {
		return nil, err
	}
	if errs := validation.ValidateComment(req); len(errs) > 0 {
		return nil, &Error{Kind: ErrBadRequest, Message: errs.Error(), Err: errs}
	}

	if req.ParentCommentID != nil {
		ok, err := s.comments.ExistsInArticle(ctx, *req.ParentCommentID, articleID)
		if err != nil {
			return nil, fmt.Errorf("failed to check parent comment %d: %w", *req.ParentCommentID, err)
		}
		if !ok {
			return nil, badRequest(msgParentNotFound)
		}
	}

	comment := &models.Comment{
		Content:         req.Content,
		AuthorEmail:     req.AuthorEmail,
		PostedDate:      s.now().UTC(),
		ArticleID:       articleID,
		ParentCommentID: req.ParentCommentID,
	}

	err := s.comments.Create(ctx, comment)
	switch {
	case errors.Is(err, repository.ErrInvalidParent):
		return nil, badRequest(msgParentNotFound)
	case errors.Is(err, repository.ErrArticleNotFound):
		return nil, notFound(msgArticleNotFound)
	case err != nil:
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	s.log.Info().
		Int64("article_id", articleID).
		Int64("comment_id", comment.ID).
		Bool("reply", comment.ParentCommentID != nil).
		Msg("Comment created")

	dto := comment.ToDTO()
	return &dto, nil
}

func (s *commentService) requireArticle(ctx context.Context, articleID int64) error {
	exists, err := s.articles.Exists(ctx, articleID)
	if err != nil {
		return fmt.Errorf("failed to check article %d: %w", articleID, err)
	}
	if !exists {
		return notFound(msgArticleNotFound)
	}
	return nil
}
