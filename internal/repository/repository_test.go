package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/portfolio-api/internal/mocks"
	"github.com/portfolio-api/internal/models"
	"github.com/portfolio-api/internal/repository"
)

func seedAuthor(t *testing.T, repos *repository.Repositories) *models.User {
	t.Helper()
	user := &models.User{ID: uuid.NewString(), Username: "incana", Email: "incana@example.com", PasswordHash: "x", CreatedAt: time.Now()}
	if err := repos.User.Create(context.Background(), user); err != nil {
		t.Fatalf("Create user failed: %v", err)
	}
	return user
}

func TestMockUserRepository_GetByEmail(t *testing.T) {
	repos, _ := mocks.NewRepositories()
	ctx := context.Background()
	user := seedAuthor(t, repos)

	stored, err := repos.User.GetByEmail(ctx, "INCANA@example.com")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if stored == nil || stored.ID != user.ID {
		t.Errorf("Expected user %s, got %v", user.ID, stored)
	}

	missing, err := repos.User.GetByEmail(ctx, "nobody@example.com")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if missing != nil {
		t.Error("Expected nil for unknown email")
	}

	exists, _ := repos.User.Exists(ctx, user.ID)
	if !exists {
		t.Error("User should exist")
	}
}

func TestMockArticleRepository_VersionedUpdate(t *testing.T) {
	repos, _ := mocks.NewRepositories()
	ctx := context.Background()
	author := seedAuthor(t, repos)

	article := &models.Article{Title: "T", Content: "C", PublishedDate: time.Now(), AuthorID: author.ID}
	if err := repos.Article.Create(ctx, article); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if article.ID == 0 || article.Version != 1 {
		t.Fatalf("Expected generated id and version 1, got %d/%d", article.ID, article.Version)
	}

	first, _ := repos.Article.GetByID(ctx, article.ID)
	second, _ := repos.Article.GetByID(ctx, article.ID)
	if first.AuthorUsername != "incana" {
		t.Errorf("Expected joined username, got %q", first.AuthorUsername)
	}

	first.Title = "first writer"
	if err := repos.Article.Update(ctx, first); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if first.Version != 2 {
		t.Errorf("Expected version 2, got %d", first.Version)
	}

	second.Title = "second writer"
	if err := repos.Article.Update(ctx, second); !errors.Is(err, repository.ErrConcurrentUpdate) {
		t.Errorf("Expected ErrConcurrentUpdate, got %v", err)
	}

	stored, _ := repos.Article.GetByID(ctx, article.ID)
	if stored.Title != "first writer" {
		t.Errorf("Expected first write to win, got %q", stored.Title)
	}
}

func TestMockCommentRepository_ParentRules(t *testing.T) {
	repos, _ := mocks.NewRepositories()
	ctx := context.Background()
	author := seedAuthor(t, repos)

	a := &models.Article{Title: "A", Content: "C", AuthorID: author.ID}
	b := &models.Article{Title: "B", Content: "C", AuthorID: author.ID}
	repos.Article.Create(ctx, a)
	repos.Article.Create(ctx, b)

	root := &models.Comment{Content: "root", AuthorEmail: "x@example.com", ArticleID: a.ID, PostedDate: time.Now()}
	if err := repos.Comment.Create(ctx, root); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	tests := []struct {
		name    string
		comment *models.Comment
		want    error
	}{
		{"reply on same article", &models.Comment{Content: "r", AuthorEmail: "x@example.com", ArticleID: a.ID, ParentCommentID: &root.ID}, nil},
		{"reply on other article", &models.Comment{Content: "r", AuthorEmail: "x@example.com", ArticleID: b.ID, ParentCommentID: &root.ID}, repository.ErrInvalidParent},
		{"missing article", &models.Comment{Content: "r", AuthorEmail: "x@example.com", ArticleID: 999}, repository.ErrArticleNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repos.Comment.Create(ctx, tt.comment)
			if !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
		})
	}

	ok, _ := repos.Comment.ExistsInArticle(ctx, root.ID, a.ID)
	if !ok {
		t.Error("Root should exist in article A")
	}
	ok, _ = repos.Comment.ExistsInArticle(ctx, root.ID, b.ID)
	if ok {
		t.Error("Root must not exist in article B")
	}

	deleted, err := repos.Article.Delete(ctx, a.ID)
	if err != nil || !deleted {
		t.Fatalf("Delete failed: %v", err)
	}
	if n, _ := repos.Comment.Count(ctx); n != 0 {
		t.Errorf("Expected comments to cascade, got %d", n)
	}
}

func TestMockChatMessageRepository(t *testing.T) {
	repos, _ := mocks.NewRepositories()
	ctx := context.Background()

	base := time.Now()
	for i, text := range []string{"later", "earlier"} {
		msg := &models.ChatMessage{SenderName: "V", MessageContent: text, Timestamp: base.Add(-time.Duration(i) * time.Minute)}
		if err := repos.Chat.Create(ctx, msg); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	list, _ := repos.Chat.List(ctx)
	if len(list) != 2 || list[0].MessageContent != "earlier" {
		t.Errorf("Expected oldest first, got %+v", list)
	}

	found, _ := repos.Chat.MarkAsRead(ctx, list[0].ID)
	if !found {
		t.Error("Expected message to be found")
	}
	found, _ = repos.Chat.MarkAsRead(ctx, 999)
	if found {
		t.Error("Expected unknown message not to be found")
	}

	unread, _ := repos.Chat.CountUnread(ctx)
	total, _ := repos.Chat.Count(ctx)
	if unread != 1 || total != 2 {
		t.Errorf("Expected 1 unread of 2, got %d of %d", unread, total)
	}
}
