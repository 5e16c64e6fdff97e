package models

import (
	"time"
)

// MaxSummaryLength is the number of characters kept in list view content
const MaxSummaryLength = 200

// MaxTitleLength is the maximum title length in characters
const MaxTitleLength = 200

// Article represents an article in the system
type Article struct {
	ID             int64     `json:"id" db:"id"`
	Title          string    `json:"title" db:"title"`
	Content        string    `json:"content" db:"content"`
	PublishedDate  time.Time `json:"published_date" db:"published_date"`
	AuthorID       string    `json:"author_id" db:"author_id"`
	AuthorUsername string    `json:"author_username" db:"-"` // joined from users
	Version        int64     `json:"-" db:"version"`
}

// ArticleDTO is the API representation of an article
type ArticleDTO struct {
	ID             int64        `json:"id"`
	Title          string       `json:"title"`
	Content        string       `json:"content"`
	PublishedDate  time.Time    `json:"publishedDate"`
	AuthorUsername string       `json:"authorUsername"`
	Comments       []CommentDTO `json:"comments"`
}

// ArticleRequest is the body of POST and PUT /api/articles
type ArticleRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// ToDTO maps an article to its API shape with the given content and no comments
func (a *Article) ToDTO(content string) ArticleDTO {
	return ArticleDTO{
		ID:             a.ID,
		Title:          a.Title,
		Content:        content,
		PublishedDate:  a.PublishedDate,
		AuthorUsername: a.AuthorUsername,
		Comments:       []CommentDTO{},
	}
}
