package models

import (
	"time"
)

// Comment length limits
const (
	MaxCommentLength     = 2000
	MaxAuthorEmailLength = 256
)

// Comment represents a comment on an article.
// ParentCommentID, when set, references a comment on the same article.
type Comment struct {
	ID              int64     `json:"id" db:"id"`
	Content         string    `json:"content" db:"content"`
	AuthorEmail     string    `json:"author_email" db:"author_email"`
	PostedDate      time.Time `json:"posted_date" db:"posted_date"`
	ArticleID       int64     `json:"article_id" db:"article_id"`
	ParentCommentID *int64    `json:"parent_comment_id,omitempty" db:"parent_comment_id"`
}

// CommentDTO is the API representation of a comment
type CommentDTO struct {
	ID              int64     `json:"id"`
	Content         string    `json:"content"`
	AuthorEmail     string    `json:"authorEmail"`
	PostedDate      time.Time `json:"postedDate"`
	ParentCommentID *int64    `json:"parentCommentId"`
}

// CommentCreateRequest is the body of POST /api/articles/{articleId}/comments
type CommentCreateRequest struct {
	Content         string `json:"content"`
	AuthorEmail     string `json:"authorEmail"`
	ParentCommentID *int64 `json:"parentCommentId,omitempty"`
}

// ToDTO maps a comment to its API shape
func (c *Comment) ToDTO() CommentDTO {
	return CommentDTO{
		ID:              c.ID,
		Content:         c.Content,
		AuthorEmail:     c.AuthorEmail,
		PostedDate:      c.PostedDate,
		ParentCommentID: c.ParentCommentID,
	}
}

// CommentDTOs maps a slice of comments, never returning nil
func CommentDTOs(comments []*Comment) []CommentDTO {
	out := make([]CommentDTO, 0, len(comments))
	for _, c := range comments {
		out = append(out, c.ToDTO())
	}
	return out
}
