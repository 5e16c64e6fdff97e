package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/portfolio-api/internal/database"
	"github.com/portfolio-api/internal/models"
)

// articleRepo is the concrete implementation of ArticleRepository
type articleRepo struct {
	db *database.DB
}

// NewArticleRepo creates a new article repository
func NewArticleRepo(db *database.DB) ArticleRepository {
	return &articleRepo{db: db}
}

const articleColumns = `
	a.id, a.title, a.content, a.published_date, a.author_id, u.username, a.version
	FROM articles a JOIN users u ON u.id = a.author_id
`

// Create inserts a new article and fills in its generated ID and version
func (r *articleRepo) Create(ctx context.Context, article *models.Article) error {
	query := `
		INSERT INTO articles (title, content, published_date, author_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, version
	`
	return r.db.QueryRowContext(ctx, query,
		article.Title, article.Content, article.PublishedDate, article.AuthorID,
	).Scan(&article.ID, &article.Version)
}

// GetByID retrieves an article by ID together with its author's username
func (r *articleRepo) GetByID(ctx context.Context, id int64) (*models.Article, error) {
	query := `SELECT ` + articleColumns + ` WHERE a.id = $1`

	article, err := scanArticle(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return article, nil
}

// List returns all articles, newest first
func (r *articleRepo) List(ctx context.Context) ([]*models.Article, error) {
	query := `SELECT ` + articleColumns + ` ORDER BY a.published_date DESC, a.id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	articles := make([]*models.Article, 0)
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, article)
	}
	return articles, rows.Err()
}

// Exists checks if an article with the given ID exists
func (r *articleRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM articles WHERE id = $1)", id).Scan(&exists)
	return exists, err
}

// Update writes title and content if the stored version still matches article.Version.
// On success article.Version is advanced; otherwise ErrConcurrentUpdate is returned.
func (r *articleRepo) Update(ctx context.Context, article *models.Article) error {
	query := `
		UPDATE articles SET title = $1, content = $2, version = version + 1
		WHERE id = $3 AND version = $4
		RETURNING version
	`
	err := r.db.QueryRowContext(ctx, query,
		article.Title, article.Content, article.ID, article.Version,
	).Scan(&article.Version)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrConcurrentUpdate
	}
	return err
}

// Delete removes an article and, by cascade, its comments
func (r *articleRepo) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM articles WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// Count returns the total number of articles
func (r *articleRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM articles").Scan(&count)
	return count, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanArticle(row rowScanner) (*models.Article, error) {
	var article models.Article
	err := row.Scan(
		&article.ID, &article.Title, &article.Content, &article.PublishedDate,
		&article.AuthorID, &article.AuthorUsername, &article.Version,
	)
	if err != nil {
		return nil, err
	}
	return &article, nil
}
