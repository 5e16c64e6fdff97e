package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/portfolio-api/internal/models"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// Errors is a list of field errors usable as an error value
type Errors []ValidationError

func (e Errors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, v := range e {
		msgs = append(msgs, v.Message)
	}
	return strings.Join(msgs, "; ")
}

// ValidateArticle validates the body of an article create or update
func ValidateArticle(req *models.ArticleRequest) Errors {
	var errors Errors

	if strings.TrimSpace(req.Title) == "" {
		errors = append(errors, ValidationError{Field: "title", Message: "title is required"})
	} else if n := utf8.RuneCountInString(req.Title); n > models.MaxTitleLength {
		errors = append(errors, ValidationError{
			Field:   "title",
			Message: fmt.Sprintf("title exceeds maximum of %d characters (has %d)", models.MaxTitleLength, n),
		})
	}

	if strings.TrimSpace(req.Content) == "" {
		errors = append(errors, ValidationError{Field: "content", Message: "content is required"})
	}

	return errors
}

// ValidateComment validates a new comment
func ValidateComment(req *models.CommentCreateRequest) Errors {
	var errors Errors

	if strings.TrimSpace(req.Content) == "" {
		errors = append(errors, ValidationError{Field: "content", Message: "content is required"})
	} else if n := utf8.RuneCountInString(req.Content); n > models.MaxCommentLength {
		errors = append(errors, ValidationError{
			Field:   "content",
			Message: fmt.Sprintf("content exceeds maximum of %d characters (has %d)", models.MaxCommentLength, n),
		})
	}

	errors = append(errors, validateEmail("authorEmail", req.AuthorEmail)...)

	if req.ParentCommentID != nil && *req.ParentCommentID <= 0 {
		errors = append(errors, ValidationError{Field: "parentCommentId", Message: "invalid parent comment id", Value: *req.ParentCommentID})
	}

	return errors
}

// ValidateChatMessage validates a new chat message
func ValidateChatMessage(req *models.ChatMessageCreateRequest) Errors {
	var errors Errors

	if strings.TrimSpace(req.SenderName) == "" {
		errors = append(errors, ValidationError{Field: "senderName", Message: "senderName is required"})
	} else if n := utf8.RuneCountInString(req.SenderName); n > models.MaxSenderNameLength {
		errors = append(errors, ValidationError{
			Field:   "senderName",
			Message: fmt.Sprintf("senderName exceeds maximum of %d characters (has %d)", models.MaxSenderNameLength, n),
		})
	}

	if strings.TrimSpace(req.MessageContent) == "" {
		errors = append(errors, ValidationError{Field: "messageContent", Message: "messageContent is required"})
	} else if n := utf8.RuneCountInString(req.MessageContent); n > models.MaxMessageContentLength {
		errors = append(errors, ValidationError{
			Field:   "messageContent",
			Message: fmt.Sprintf("messageContent exceeds maximum of %d characters (has %d)", models.MaxMessageContentLength, n),
		})
	}

	return errors
}

// ValidateLogin validates login credentials before any lookup
func ValidateLogin(req *models.LoginRequest) Errors {
	errors := validateEmail("email", req.Email)
	if req.Password == "" {
		errors = append(errors, ValidationError{Field: "password", Message: "password is required"})
	}
	return errors
}

func validateEmail(field, email string) Errors {
	switch {
	case email == "":
		return Errors{{Field: field, Message: field + " is required"}}
	case utf8.RuneCountInString(email) > models.MaxAuthorEmailLength:
		return Errors{{Field: field, Message: fmt.Sprintf("%s exceeds maximum of %d characters", field, models.MaxAuthorEmailLength)}}
	case !emailRegex.MatchString(email):
		return Errors{{Field: field, Message: "invalid email format", Value: email}}
	}
	return nil
}
