package validation

import (
	"strings"
	"testing"

	"github.com/portfolio-api/internal/models"
)

func int64Ptr(v int64) *int64 { return &v }

func fields(errs Errors) []string {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Field)
	}
	return out
}

func TestValidateArticle(t *testing.T) {
	tests := []struct {
		name       string
		req        *models.ArticleRequest
		wantFields []string
	}{
		{"valid", &models.ArticleRequest{Title: "Hello", Content: "World"}, nil},
		{"missing title", &models.ArticleRequest{Content: "World"}, []string{"title"}},
		{"blank content", &models.ArticleRequest{Title: "Hello", Content: "  \n"}, []string{"content"}},
		{"title too long", &models.ArticleRequest{Title: strings.Repeat("t", 201), Content: "x"}, []string{"title"}},
		{"both missing", &models.ArticleRequest{}, []string{"title", "content"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fields(ValidateArticle(tt.req))
			if strings.Join(got, ",") != strings.Join(tt.wantFields, ",") {
				t.Errorf("Expected fields %v, got %v", tt.wantFields, got)
			}
		})
	}
}

func TestValidateComment(t *testing.T) {
	tests := []struct {
		name       string
		req        *models.CommentCreateRequest
		wantFields []string
	}{
		{
			name: "valid top level",
			req:  &models.CommentCreateRequest{Content: "Nice post", AuthorEmail: "reader@example.com"},
		},
		{
			name: "valid reply",
			req:  &models.CommentCreateRequest{Content: "Agreed", AuthorEmail: "a@b.io", ParentCommentID: int64Ptr(4)},
		},
		{
			name:       "missing content",
			req:        &models.CommentCreateRequest{AuthorEmail: "reader@example.com"},
			wantFields: []string{"content"},
		},
		{
			name:       "content too long",
			req:        &models.CommentCreateRequest{Content: strings.Repeat("c", 2001), AuthorEmail: "reader@example.com"},
			wantFields: []string{"content"},
		},
		{
			name:       "invalid email",
			req:        &models.CommentCreateRequest{Content: "hi", AuthorEmail: "not-an-email"},
			wantFields: []string{"authorEmail"},
		},
		{
			name:       "email too long",
			req:        &models.CommentCreateRequest{Content: "hi", AuthorEmail: strings.Repeat("a", 250) + "@example.com"},
			wantFields: []string{"authorEmail"},
		},
		{
			name:       "non-positive parent",
			req:        &models.CommentCreateRequest{Content: "hi", AuthorEmail: "a@b.io", ParentCommentID: int64Ptr(0)},
			wantFields: []string{"parentCommentId"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fields(ValidateComment(tt.req))
			if strings.Join(got, ",") != strings.Join(tt.wantFields, ",") {
				t.Errorf("Expected fields %v, got %v", tt.wantFields, got)
			}
		})
	}
}

func TestValidateChatMessage(t *testing.T) {
	tests := []struct {
		name       string
		req        *models.ChatMessageCreateRequest
		wantFields []string
	}{
		{"valid", &models.ChatMessageCreateRequest{SenderName: "Ana", MessageContent: "Hi!"}, nil},
		{"missing sender", &models.ChatMessageCreateRequest{MessageContent: "Hi!"}, []string{"senderName"}},
		{"sender too long", &models.ChatMessageCreateRequest{SenderName: strings.Repeat("n", 101), MessageContent: "Hi!"}, []string{"senderName"}},
		{"content too long", &models.ChatMessageCreateRequest{SenderName: "Ana", MessageContent: strings.Repeat("m", 2001)}, []string{"messageContent"}},
		{"empty", &models.ChatMessageCreateRequest{}, []string{"senderName", "messageContent"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fields(ValidateChatMessage(tt.req))
			if strings.Join(got, ",") != strings.Join(tt.wantFields, ",") {
				t.Errorf("Expected fields %v, got %v", tt.wantFields, got)
			}
		})
	}
}

func TestValidateLogin(t *testing.T) {
	if errs := ValidateLogin(&models.LoginRequest{Email: "me@example.com", Password: "pw"}); len(errs) != 0 {
		t.Errorf("Expected no errors, got %v", errs)
	}

	errs := ValidateLogin(&models.LoginRequest{})
	if len(errs) != 2 {
		t.Fatalf("Expected 2 errors, got %v", errs)
	}
	if !strings.Contains(errs.Error(), "email is required") || !strings.Contains(errs.Error(), "password is required") {
		t.Errorf("Unexpected message: %s", errs.Error())
	}
}
