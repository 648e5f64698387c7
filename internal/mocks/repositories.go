package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/news-api/internal/models"
	"github.com/news-api/internal/repository"
)

// Verify interface compliance
var (
	_ repository.TopicRepository   = (*MockTopicRepository)(nil)
	_ repository.UserRepository    = (*MockUserRepository)(nil)
	_ repository.ArticleRepository = (*MockArticleRepository)(nil)
	_ repository.CommentRepository = (*MockCommentRepository)(nil)
)

// MockTopicRepository is a mock implementation of TopicRepository
type MockTopicRepository struct {
	Topics      map[string]*models.Topic
	Err         error
	ExistsCalls int
}

func NewMockTopicRepository() *MockTopicRepository {
	return &MockTopicRepository{Topics: make(map[string]*models.Topic)}
}

func (m *MockTopicRepository) List(ctx context.Context) ([]*models.Topic, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	topics := make([]*models.Topic, 0, len(m.Topics))
	for _, t := range m.Topics {
		topics = append(topics, t)
	}
	sort.Slice(topics, func(i, j int) bool { return topics[i].Slug < topics[j].Slug })
	return topics, nil
}

func (m *MockTopicRepository) Exists(ctx context.Context, slug string) (bool, error) {
	m.ExistsCalls++
	if m.Err != nil {
		return false, m.Err
	}
	_, exists := m.Topics[slug]
	return exists, nil
}

func (m *MockTopicRepository) BatchInsert(ctx context.Context, topics []*models.Topic) (int, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	for _, t := range topics {
		m.Topics[t.Slug] = t
	}
	return len(topics), nil
}

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	Users map[string]*models.User
	Err   error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{Users: make(map[string]*models.User)}
}

func (m *MockUserRepository) List(ctx context.Context) ([]*models.User, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	users := make([]*models.User, 0, len(m.Users))
	for _, u := range m.Users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return users, nil
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Users[username], nil
}

func (m *MockUserRepository) Exists(ctx context.Context, username string) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	_, exists := m.Users[username]
	return exists, nil
}

func (m *MockUserRepository) BatchInsert(ctx context.Context, users []*models.User) (int, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	for _, u := range users {
		m.Users[u.Username] = u
	}
	return len(users), nil
}

// MockArticleRepository is a mock implementation of ArticleRepository.
// It is safe for concurrent use so vote updates can be exercised in parallel.
type MockArticleRepository struct {
	mu        sync.Mutex
	Articles  map[int]*models.Article
	Err       error
	ListFunc  func(ctx context.Context, q models.ArticleQuery) ([]*models.Article, error)
	LastQuery models.ArticleQuery
	nextID    int
}

func NewMockArticleRepository() *MockArticleRepository {
	return &MockArticleRepository{Articles: make(map[int]*models.Article), nextID: 1}
}

// Add stores a copy of article under its ID
func (m *MockArticleRepository) Add(article *models.Article) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *article
	m.Articles[article.ArticleID] = &stored
	if article.ArticleID >= m.nextID {
		m.nextID = article.ArticleID + 1
	}
}

// List filters by topic and orders by article_id; sorting itself is SQL's job
func (m *MockArticleRepository) List(ctx context.Context, q models.ArticleQuery) ([]*models.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastQuery = q
	if m.ListFunc != nil {
		return m.ListFunc(ctx, q)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	articles := make([]*models.Article, 0)
	for _, a := range m.Articles {
		if q.Topic != "" && a.Topic != q.Topic {
			continue
		}
		copied := *a
		articles = append(articles, &copied)
	}
	sort.Slice(articles, func(i, j int) bool { return articles[i].ArticleID < articles[j].ArticleID })
	return articles, nil
}

func (m *MockArticleRepository) GetByID(ctx context.Context, id int) (*models.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	a, ok := m.Articles[id]
	if !ok {
		return nil, nil
	}
	copied := *a
	return &copied, nil
}

func (m *MockArticleRepository) Exists(ctx context.Context, id int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return false, m.Err
	}
	_, exists := m.Articles[id]
	return exists, nil
}

func (m *MockArticleRepository) IncrementVotes(ctx context.Context, id int, delta int) (*models.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	a, ok := m.Articles[id]
	if !ok {
		return nil, nil
	}
	a.Votes += delta
	copied := *a
	return &copied, nil
}

func (m *MockArticleRepository) BatchInsert(ctx context.Context, articles []*models.SeedArticle) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return 0, m.Err
	}
	for _, a := range articles {
		m.Articles[m.nextID] = &models.Article{
			ArticleID: m.nextID,
			Title:     a.Title,
			Topic:     a.Topic,
			Author:    a.Author,
			Body:      a.Body,
			CreatedAt: a.CreatedAt,
			Votes:     a.Votes,
		}
		m.nextID++
	}
	return len(articles), nil
}

// MockCommentRepository is a mock implementation of CommentRepository
type MockCommentRepository struct {
	Comments    map[int]*models.Comment
	Err         error
	CreateErr   error
	CreateCalls int
	nextID      int
}

func NewMockCommentRepository() *MockCommentRepository {
	return &MockCommentRepository{Comments: make(map[int]*models.Comment), nextID: 1}
}

// Add stores a copy of comment under its ID
func (m *MockCommentRepository) Add(comment *models.Comment) {
	stored := *comment
	m.Comments[comment.CommentID] = &stored
	if comment.CommentID >= m.nextID {
		m.nextID = comment.CommentID + 1
	}
}

func (m *MockCommentRepository) ListByArticle(ctx context.Context, articleID int) ([]*models.Comment, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	comments := make([]*models.Comment, 0)
	for _, c := range m.Comments {
		if c.ArticleID == articleID {
			copied := *c
			comments = append(comments, &copied)
		}
	}
	sort.Slice(comments, func(i, j int) bool {
		if !comments[i].CreatedAt.Equal(comments[j].CreatedAt.Time) {
			return comments[i].CreatedAt.After(comments[j].CreatedAt.Time)
		}
		return comments[i].CommentID > comments[j].CommentID
	})
	return comments, nil
}

func (m *MockCommentRepository) Create(ctx context.Context, articleID int, comment *models.NewComment) (*models.Comment, error) {
	m.CreateCalls++
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	if m.Err != nil {
		return nil, m.Err
	}
	created := &models.Comment{
		CommentID: m.nextID,
		Body:      comment.Body,
		ArticleID: articleID,
		Author:    comment.Username,
		Votes:     0,
		CreatedAt: models.NewTimestamp(time.Now()),
	}
	m.Comments[created.CommentID] = created
	m.nextID++
	copied := *created
	return &copied, nil
}

func (m *MockCommentRepository) Delete(ctx context.Context, id int) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	if _, ok := m.Comments[id]; !ok {
		return false, nil
	}
	delete(m.Comments, id)
	return true, nil
}

func (m *MockCommentRepository) BatchInsert(ctx context.Context, comments []*models.SeedComment) (int, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	for _, c := range comments {
		m.Comments[m.nextID] = &models.Comment{
			CommentID: m.nextID,
			Body:      c.Body,
			ArticleID: c.ArticleID,
			Author:    c.Author,
			Votes:     c.Votes,
			CreatedAt: c.CreatedAt,
		}
		m.nextID++
	}
	return len(comments), nil
}
