package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/portfolio-api/internal/database"
	"github.com/portfolio-api/internal/models"
)

const (
	pqForeignKeyViolation = "23503"

	parentCommentConstraint = "comments_parent_same_article_fkey"
)

// commentRepo is the concrete implementation of CommentRepository
type commentRepo struct {
	db *database.DB
}

// NewCommentRepo creates a new comment repository
func NewCommentRepo(db *database.DB) CommentRepository {
	return &commentRepo{db: db}
}

// Create inserts a new comment and fills in its generated ID.
// The schema rejects a parent from another article, reported as ErrInvalidParent.
func (r *commentRepo) Create(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (content, author_email, posted_date, article_id, parent_comment_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	var parent sql.NullInt64
	if comment.ParentCommentID != nil {
		parent = sql.NullInt64{Int64: *comment.ParentCommentID, Valid: true}
	}

	err := r.db.QueryRowContext(ctx, query,
		comment.Content, comment.AuthorEmail, comment.PostedDate, comment.ArticleID, parent,
	).Scan(&comment.ID)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqForeignKeyViolation {
		if pqErr.Constraint == parentCommentConstraint {
			return ErrInvalidParent
		}
		return ErrArticleNotFound
	}
	return err
}

// ListByArticle returns the comments of an article in posting order
func (r *commentRepo) ListByArticle(ctx context.Context, articleID int64) ([]*models.Comment, error) {
	query := `
		SELECT id, content, author_email, posted_date, article_id, parent_comment_id
		FROM comments WHERE article_id = $1
		ORDER BY posted_date, id
	`
	rows, err := r.db.QueryContext(ctx, query, articleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := make([]*models.Comment, 0)
	for rows.Next() {
		var comment models.Comment
		var parent sql.NullInt64
		if err := rows.Scan(
			&comment.ID, &comment.Content, &comment.AuthorEmail,
			&comment.PostedDate, &comment.ArticleID, &parent,
		); err != nil {
			return nil, err
		}
		if parent.Valid {
			id := parent.Int64
			comment.ParentCommentID = &id
		}
		comments = append(comments, &comment)
	}
	return comments, rows.Err()
}

// ExistsInArticle checks that a comment exists and belongs to the given article
func (r *commentRepo) ExistsInArticle(ctx context.Context, commentID, articleID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM comments WHERE id = $1 AND article_id = $2)",
		commentID, articleID,
	).Scan(&exists)
	return exists, err
}

// Count returns the total number of comments
func (r *commentRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM comments").Scan(&count)
	return count, err
}
