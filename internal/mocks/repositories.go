package mocks

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/portfolio-api/internal/models"
	"github.com/portfolio-api/internal/repository"
)

// Store is an in-memory database shared by the mock repositories so that
// joins (article author names) and cascades (article comments) behave like postgres.
type Store struct {
	mu sync.Mutex

	Users    map[string]*models.User
	Articles map[int64]*models.Article
	Comments map[int64]*models.Comment
	Messages map[int64]*models.ChatMessage

	// comment ids per article, each mapped to its parent link
	commentIndex map[int64]map[int64]*int64

	nextArticleID int64
	nextCommentID int64
	nextMessageID int64
}

// NewStore creates an empty in-memory store
func NewStore() *Store {
	return &Store{
		Users:        make(map[string]*models.User),
		Articles:     make(map[int64]*models.Article),
		Comments:     make(map[int64]*models.Comment),
		Messages:     make(map[int64]*models.ChatMessage),
		commentIndex: make(map[int64]map[int64]*int64),
	}
}

// NewRepositories creates mock repositories over a fresh store
func NewRepositories() (*repository.Repositories, *Store) {
	store := NewStore()
	return &repository.Repositories{
		User:    &MockUserRepository{Store: store},
		Article: &MockArticleRepository{Store: store},
		Comment: &MockCommentRepository{Store: store},
		Chat:    &MockChatMessageRepository{Store: store},
	}, store
}

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	Store *Store
	Err   error
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	if m.Err != nil {
		return m.Err
	}
	m.Store.mu.Lock()
	defer m.Store.mu.Unlock()
	copied := *user
	m.Store.Users[user.ID] = &copied
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.Store.mu.Lock()
	defer m.Store.mu.Unlock()
	if u, ok := m.Store.Users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.Store.mu.Lock()
	defer m.Store.mu.Unlock()
	for _, u := range m.Store.Users {
		if strings.EqualFold(u.Email, email) {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *MockUserRepository) Exists(ctx context.Context, id string) (bool, error) {
	m.Store.mu.Lock()
	defer m.Store.mu.Unlock()
	_, exists := m.Store.Users[id]
	return exists, m.Err
}

func (m *MockUserRepository) Count(ctx context.Context) (int, error) {
	m.Store.mu.Lock()
	defer m.Store.mu.Unlock()
	return len(m.Store.Users), m.Err
}

// MockArticleRepository is a mock implementation of ArticleRepository
type MockArticleRepository struct {
	Store *Store
	Err   error

	// BeforeUpdate runs before the version check, to simulate a concurrent writer
	BeforeUpdate func(article *models.Article)
}

func (m *MockArticleRepository) Create(ctx context.Context, article *models.Article) error {
	if m.Err != nil {
		return m.Err
	}
	m.Store.mu.Lock()
	defer m.Store.mu.Unlock()
	m.Store.nextArticleID++
	article.ID = m.Store.nextArticleID
	article.Version = 1
	copied := *article
	m.Store.Articles[article.ID] = &copied
	return nil
}

func (m *MockArticleRepository) GetByID(ctx context.Context, id int64) (*models.Article, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.Store.mu.Lock()
	defer m.Store.mu.Unlock()
	a, ok := m.Store.Articles[id]
	if !ok {
		return nil, nil
	}
	return m.Store.withAuthor(a), nil
}

func (m *MockArticleRepository) List(ctx context.Context) ([]*models.Article, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.Store.mu.Lock()
	defer m.Store.mu.Unlock()
	articles := make([]*models.Article, 0, len(m.Store.Articles))
	for _, a := range m.Store.Articles {
		articles = append(articles, m.Store.withAuthor(a))
	}
	sort.Slice(articles, func(i, j int) bool {
		if articles[i].PublishedDate.Equal(articles[j].PublishedDate) {
			return articles[i].ID > articles[j].ID
		}
		return articles[i].PublishedDate.After(articles[j].PublishedDate)
	})
	return articles, nil
}

func (m *MockArticleRepository) Exists(ctx context.Context, id int64) (bool, error) {
	m.Store.mu.Lock()
	defer m.Store.mu.Unlock()
	_, exists := m.Store.Articles[id]
	return exists, m.Err
}

func (m *MockArticleRepository) Update(ctx context.Context, article *models.Article) error {
	if m.Err != nil {
		return m.Err
	}
	if m.BeforeUpdate != nil {
		m.BeforeUpdate(article)
	}
	m.Store.mu.Lock()
	defer m.Store.mu.Unlock()
	stored, ok := m.Store.Articles[article.ID]
	if !ok || stored.Version != article.Version {
		return repository.ErrConcurrentUpdate
	}
	stored.Title = article.Title
	stored.Content = article.Content
	stored.Version++
	article.Version = stored.Version
	return nil
}

func (m *MockArticleRepository) Delete(ctx context.Context, id int64) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	m.Store.mu.Lock()
	defer m.Store.mu.Unlock()
	if _, ok := m.Store.Articles[id]; !ok {
		return false, nil
	}
	delete(m.Store.Articles, id)
	for commentID := range m.Store.commentIndex[id] {
		delete(m.Store.Comments, commentID)
	}
	delete(m.Store.commentIndex, id)
	return true, nil
}

func (m *MockArticleRepository) Count(ctx context.Context) (int, error) {
	m.Store.mu.Lock()
	defer m.Store.mu.Unlock()
	return len(m.Store.Articles), m.Err
}

// MockCommentRepository is a mock implementation of CommentRepository
type MockCommentRepository struct {
	Store *Store
	Err   error
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if m.Err != nil {
		return m.Err
	}
	m.Store.mu.Lock()
	defer m.Store.mu.Unlock()
	if _, ok := m.Store.Articles[comment.ArticleID]; !ok {
		return repository.ErrArticleNotFound
	}
	index := m.Store.commentIndex[comment.ArticleID]
	if comment.ParentCommentID != nil {
		if _, ok := index[*comment.ParentCommentID]; !ok {
			return repository.ErrInvalidParent
		}
	}
	if index == nil {
		index = make(map[int64]*int64)
		m.Store.commentIndex[comment.ArticleID] = index
	}
	m.Store.nextCommentID++
	comment.ID = m.Store.nextCommentID
	copied := *comment
	m.Store.Comments[comment.ID] = &copied
	index[comment.ID] = comment.ParentCommentID
	return nil
}

func (m *MockCommentRepository) ListByArticle(ctx context.Context, articleID int64) ([]*models.Comment, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.Store.mu.Lock()
	defer m.Store.mu.Unlock()
	comments := make([]*models.Comment, 0)
	for id := range m.Store.commentIndex[articleID] {
		copied := *m.Store.Comments[id]
		comments = append(comments, &copied)
	}
	sort.Slice(comments, func(i, j int) bool {
		if comments[i].PostedDate.Equal(comments[j].PostedDate) {
			return comments[i].ID < comments[j].ID
		}
		return comments[i].PostedDate.Before(comments[j].PostedDate)
	})
	return comments, nil
}

func (m *MockCommentRepository) ExistsInArticle(ctx context.Context, commentID, articleID int64) (bool, error) {
	m.Store.mu.Lock()
	defer m.Store.mu.Unlock()
	_, ok := m.Store.commentIndex[articleID][commentID]
	return ok, m.Err
}

func (m *MockCommentRepository) Count(ctx context.Context) (int, error) {
	m.Store.mu.Lock()
	defer m.Store.mu.Unlock()
	return len(m.Store.Comments), m.Err
}

// MockChatMessageRepository is a mock implementation of ChatMessageRepository
type MockChatMessageRepository struct {
	Store *Store
	Err   error
}

func (m *MockChatMessageRepository) Create(ctx context.Context, message *models.ChatMessage) error {
	if m.Err != nil {
		return m.Err
	}
	m.Store.mu.Lock()
	defer m.Store.mu.Unlock()
	m.Store.nextMessageID++
	message.ID = m.Store.nextMessageID
	copied := *message
	m.Store.Messages[message.ID] = &copied
	return nil
}

func (m *MockChatMessageRepository) List(ctx context.Context) ([]*models.ChatMessage, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.Store.mu.Lock()
	defer m.Store.mu.Unlock()
	messages := make([]*models.ChatMessage, 0, len(m.Store.Messages))
	for _, msg := range m.Store.Messages {
		copied := *msg
		messages = append(messages, &copied)
	}
	sort.Slice(messages, func(i, j int) bool {
		if messages[i].Timestamp.Equal(messages[j].Timestamp) {
			return messages[i].ID < messages[j].ID
		}
		return messages[i].Timestamp.Before(messages[j].Timestamp)
	})
	return messages, nil
}

func (m *MockChatMessageRepository) MarkAsRead(ctx context.Context, id int64) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	m.Store.mu.Lock()
	defer m.Store.mu.Unlock()
	msg, ok := m.Store.Messages[id]
	if !ok {
		return false, nil
	}
	msg.IsRead = true
	return true, nil
}

func (m *MockChatMessageRepository) Count(ctx context.Context) (int, error) {
	m.Store.mu.Lock()
	defer m.Store.mu.Unlock()
	return len(m.Store.Messages), m.Err
}

func (m *MockChatMessageRepository) CountUnread(ctx context.Context) (int, error) {
	m.Store.mu.Lock()
	defer m.Store.mu.Unlock()
	unread := 0
	for _, msg := range m.Store.Messages {
		if !msg.IsRead {
			unread++
		}
	}
	return unread, m.Err
}

// withAuthor copies an article and fills the joined author username; caller holds mu
func (s *Store) withAuthor(a *models.Article) *models.Article {
	copied := *a
	if u, ok := s.Users[a.AuthorID]; ok {
		copied.AuthorUsername = u.Username
	}
	return &copied
}

// Verify interface compliance
var (
	_ repository.UserRepository        = (*MockUserRepository)(nil)
	_ repository.ArticleRepository     = (*MockArticleRepository)(nil)
	_ repository.CommentRepository     = (*MockCommentRepository)(nil)
	_ repository.ChatMessageRepository = (*MockChatMessageRepository)(nil)
)
