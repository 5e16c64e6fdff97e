package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/portfolio-api/internal/auth"
	"github.com/portfolio-api/internal/content"
	"github.com/portfolio-api/internal/models"
	"github.com/portfolio-api/internal/repository"
	"github.com/portfolio-api/internal/validation"
	"github.com/rs/zerolog"
)

// articleService is the concrete implementation of ArticleService
type articleService struct {
	articles repository.ArticleRepository
	comments repository.CommentRepository
	users    repository.UserRepository
	resolver *content.Resolver
	log      zerolog.Logger
	now      func() time.Time
}

func newArticleService(repos *repository.Repositories, resolver *content.Resolver, log zerolog.Logger) *articleService {
	return &articleService{
		articles: repos.Article,
		comments: repos.Comment,
		users:    repos.User,
		resolver: resolver,
		log:      log.With().Str("service", "article").Logger(),
		now:      time.Now,
	}
}

// List returns article summaries, newest first, with raw truncated content
func (s *articleService) List(ctx context.Context) ([]models.ArticleDTO, error) {
	articles, err := s.articles.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}

	dtos := make([]models.ArticleDTO, 0, len(articles))
	for _, a := range articles {
		dtos = append(dtos, a.ToDTO(content.Summarize(a.Content, models.MaxSummaryLength)))
	}
	return dtos, nil
}

// Get returns one article with media references resolved and its comments
func (s *articleService) Get(ctx context.Context, id int64) (*models.ArticleDTO, error) {
	article, err := s.articles.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get article %d: %w", id, err)
	}
	if article == nil {
		return nil, notFound("article not found")
	}

	body, err := s.resolver.Resolve(article.Content)
	if err != nil {
		return nil, err
	}

	comments, err := s.comments.ListByArticle(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments of article %d: %w", id, err)
	}

	dto := article.ToDTO(body)
	dto.Comments = models.CommentDTOs(comments)
	return &dto, nil
}

// Create stores a new article authored by the caller
func (s *articleService) Create(ctx context.Context, caller auth.Principal, req *models.ArticleRequest) (*models.ArticleDTO, error) {
	if caller.UserID == "" {
		return nil, unauthorized("User ID could not be determined from token.")
	}
	if errs := validation.ValidateArticle(req); len(errs) > 0 {
		return nil, &Error{Kind: ErrBadRequest, Message: errs.Error(), Err: errs}
	}

	author, err := s.lookupAuthor(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, badRequest("Author not found.")
	}

	article := &models.Article{
		Title:          req.Title,
		Content:        req.Content,
		PublishedDate:  s.now().UTC(),
		AuthorID:       author.ID,
		AuthorUsername: author.Username,
	}
	if err := s.articles.Create(ctx, article); err != nil {
		return nil, fmt.Errorf("failed to create article: %w", err)
	}

	s.log.Info().Int64("article_id", article.ID).Str("author_id", author.ID).Msg("Article created")

	dto := article.ToDTO(article.Content)
	return &dto, nil
}

// Update replaces title and content; only the author may do this
func (s *articleService) Update(ctx context.Context, caller auth.Principal, id int64, req *models.ArticleRequest) error {
	if errs := validation.ValidateArticle(req); len(errs) > 0 {
		return &Error{Kind: ErrBadRequest, Message: errs.Error(), Err: errs}
	}

	article, err := s.loadOwned(ctx, caller, id, "You are not authorized to edit this article.")
	if err != nil {
		return err
	}

	article.Title = req.Title
	article.Content = req.Content

	err = s.articles.Update(ctx, article)
	if errors.Is(err, repository.ErrConcurrentUpdate) {
		exists, existsErr := s.articles.Exists(ctx, id)
		if existsErr != nil {
			return fmt.Errorf("failed to check article %d: %w", id, existsErr)
		}
		if !exists {
			return notFound("article not found")
		}
		s.log.Warn().Int64("article_id", id).Msg("Concurrent article update rejected")
		return &Error{Kind: ErrConflict, Message: "article was modified by another request", Err: err}
	}
	if err != nil {
		return fmt.Errorf("failed to update article %d: %w", id, err)
	}

	s.log.Info().Int64("article_id", id).Int64("version", article.Version).Msg("Article updated")
	return nil
}

// Delete removes an article; only the author may do this
func (s *articleService) Delete(ctx context.Context, caller auth.Principal, id int64) error {
	if _, err := s.loadOwned(ctx, caller, id, "You are not authorized to delete this article."); err != nil {
		return err
	}

	deleted, err := s.articles.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete article %d: %w", id, err)
	}
	if !deleted {
		return notFound("article not found")
	}

	s.log.Info().Int64("article_id", id).Msg("Article deleted")
	return nil
}

func (s *articleService) loadOwned(ctx context.Context, caller auth.Principal, id int64, denied string) (*models.Article, error) {
	article, err := s.articles.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get article %d: %w", id, err)
	}
	if article == nil {
		return nil, notFound("article not found")
	}
	if article.AuthorID != caller.UserID {
		return nil, forbidden(denied)
	}
	return article, nil
}

// lookupAuthor returns nil for ids that are not UUIDs or have no user
func (s *articleService) lookupAuthor(ctx context.Context, userID string) (*models.User, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, nil
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", userID, err)
	}
	return user, nil
}
