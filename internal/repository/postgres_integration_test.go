package repository_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/portfolio-api/internal/config"
	"github.com/portfolio-api/internal/database"
	"github.com/portfolio-api/internal/models"
	"github.com/portfolio-api/internal/repository"
	"github.com/rs/zerolog"
)

// setupPostgres connects to TEST_DATABASE_URL, migrates and empties the schema
func setupPostgres(t *testing.T) *repository.Repositories {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := database.New(&config.DatabaseConfig{
		DSN:          dsn,
		MaxOpenConns: 5,
		MaxIdleConns: 2,
		MaxLifetime:  time.Minute,
	}, zerolog.Nop())
	if err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}
	if _, err := db.Exec("TRUNCATE users, articles, comments, chat_messages RESTART IDENTITY CASCADE"); err != nil {
		t.Fatalf("Failed to truncate: %v", err)
	}

	return repository.New(db)
}

func TestPostgres_ArticlesAndComments(t *testing.T) {
	repos := setupPostgres(t)
	ctx := context.Background()

	user := &models.User{ID: uuid.NewString(), Username: "incana", Email: "Incana@Example.com", PasswordHash: "hash"}
	if err := repos.User.Create(ctx, user); err != nil {
		t.Fatalf("Create user failed: %v", err)
	}
	byEmail, err := repos.User.GetByEmail(ctx, "incana@example.com")
	if err != nil || byEmail == nil || byEmail.ID != user.ID {
		t.Fatalf("GetByEmail should be case-insensitive, got %v, %v", byEmail, err)
	}

	a := &models.Article{Title: "A", Content: "body", PublishedDate: time.Now().UTC(), AuthorID: user.ID}
	b := &models.Article{Title: "B", Content: "body", PublishedDate: time.Now().UTC().Add(time.Minute), AuthorID: user.ID}
	for _, article := range []*models.Article{a, b} {
		if err := repos.Article.Create(ctx, article); err != nil {
			t.Fatalf("Create article failed: %v", err)
		}
	}

	list, err := repos.Article.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 2 || list[0].ID != b.ID || list[0].AuthorUsername != "incana" {
		t.Errorf("Expected newest first with author, got %+v", list)
	}

	stale, _ := repos.Article.GetByID(ctx, a.ID)
	a.Title = "A2"
	if err := repos.Article.Update(ctx, a); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	stale.Title = "stale"
	if err := repos.Article.Update(ctx, stale); !errors.Is(err, repository.ErrConcurrentUpdate) {
		t.Errorf("Expected ErrConcurrentUpdate, got %v", err)
	}

	root := &models.Comment{Content: "root", AuthorEmail: "x@example.com", PostedDate: time.Now().UTC(), ArticleID: a.ID}
	if err := repos.Comment.Create(ctx, root); err != nil {
		t.Fatalf("Create comment failed: %v", err)
	}

	crossArticle := &models.Comment{Content: "r", AuthorEmail: "x@example.com", PostedDate: time.Now().UTC(), ArticleID: b.ID, ParentCommentID: &root.ID}
	if err := repos.Comment.Create(ctx, crossArticle); !errors.Is(err, repository.ErrInvalidParent) {
		t.Errorf("Expected ErrInvalidParent, got %v", err)
	}

	orphan := &models.Comment{Content: "r", AuthorEmail: "x@example.com", PostedDate: time.Now().UTC(), ArticleID: 999999}
	if err := repos.Comment.Create(ctx, orphan); !errors.Is(err, repository.ErrArticleNotFound) {
		t.Errorf("Expected ErrArticleNotFound, got %v", err)
	}

	deleted, err := repos.Article.Delete(ctx, a.ID)
	if err != nil || !deleted {
		t.Fatalf("Delete failed: %v", err)
	}
	if n, _ := repos.Comment.Count(ctx); n != 0 {
		t.Errorf("Expected comments to cascade, got %d", n)
	}
	if exists, _ := repos.Article.Exists(ctx, a.ID); exists {
		t.Error("Article should be gone")
	}
}

func TestPostgres_ChatMessages(t *testing.T) {
	repos := setupPostgres(t)
	ctx := context.Background()

	msg := &models.ChatMessage{SenderName: "Visitor", MessageContent: "Hello", Timestamp: time.Now().UTC()}
	if err := repos.Chat.Create(ctx, msg); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	found, err := repos.Chat.MarkAsRead(ctx, msg.ID)
	if err != nil || !found {
		t.Fatalf("MarkAsRead failed: %v", err)
	}
	if unread, _ := repos.Chat.CountUnread(ctx); unread != 0 {
		t.Errorf("Expected 0 unread, got %d", unread)
	}
	if found, _ := repos.Chat.MarkAsRead(ctx, msg.ID+1); found {
		t.Error("Expected unknown id not to be found")
	}
}
