package mocks

import (
	"context"

	"github.com/news-api/internal/apperror"
	"github.com/news-api/internal/models"
	"github.com/news-api/internal/service"
)

// MockTopicService is a mock implementation of TopicService
type MockTopicService struct {
	Topics []*models.Topic
	Err    error
}

// Verify interface compliance
var _ service.TopicService = (*MockTopicService)(nil)

func NewMockTopicService() *MockTopicService {
	return &MockTopicService{Topics: make([]*models.Topic, 0)}
}

func (m *MockTopicService) ListTopics(ctx context.Context) ([]*models.Topic, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Topics, nil
}

// MockUserService is a mock implementation of UserService
type MockUserService struct {
	Users []*models.User
	Err   error
}

var _ service.UserService = (*MockUserService)(nil)

func NewMockUserService() *MockUserService {
	return &MockUserService{Users: make([]*models.User, 0)}
}

func (m *MockUserService) ListUsers(ctx context.Context) ([]*models.User, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Users, nil
}

func (m *MockUserService) GetUser(ctx context.Context, username string) (*models.User, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, u := range m.Users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, apperror.UserNotFound()
}

// MockArticleService is a mock implementation of ArticleService
type MockArticleService struct {
	ListFunc        func(ctx context.Context, q models.ArticleQuery) ([]*models.Article, error)
	GetFunc         func(ctx context.Context, id int) (*models.Article, error)
	UpdateVotesFunc func(ctx context.Context, id int, delta int) (*models.Article, error)
	Queries         []models.ArticleQuery
	Calls           int
}

var _ service.ArticleService = (*MockArticleService)(nil)

func NewMockArticleService() *MockArticleService {
	return &MockArticleService{}
}

func (m *MockArticleService) ListArticles(ctx context.Context, q models.ArticleQuery) ([]*models.Article, error) {
	m.Calls++
	m.Queries = append(m.Queries, q)
	if m.ListFunc != nil {
		return m.ListFunc(ctx, q)
	}
	return []*models.Article{}, nil
}

func (m *MockArticleService) GetArticle(ctx context.Context, id int) (*models.Article, error) {
	m.Calls++
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return nil, apperror.ArticleNotFound()
}

func (m *MockArticleService) UpdateVotes(ctx context.Context, id int, delta int) (*models.Article, error) {
	m.Calls++
	if m.UpdateVotesFunc != nil {
		return m.UpdateVotesFunc(ctx, id, delta)
	}
	return nil, apperror.ArticleNotFound()
}

// MockCommentService is a mock implementation of CommentService
type MockCommentService struct {
	ListFunc   func(ctx context.Context, articleID int) ([]*models.Comment, error)
	AddFunc    func(ctx context.Context, articleID int, comment *models.NewComment) (*models.Comment, error)
	DeleteFunc func(ctx context.Context, id int) error
	Calls      int
}

var _ service.CommentService = (*MockCommentService)(nil)

func NewMockCommentService() *MockCommentService {
	return &MockCommentService{}
}

func (m *MockCommentService) ListComments(ctx context.Context, articleID int) ([]*models.Comment, error) {
	m.Calls++
	if m.ListFunc != nil {
		return m.ListFunc(ctx, articleID)
	}
	return []*models.Comment{}, nil
}

func (m *MockCommentService) AddComment(ctx context.Context, articleID int, comment *models.NewComment) (*models.Comment, error) {
	m.Calls++
	if m.AddFunc != nil {
		return m.AddFunc(ctx, articleID, comment)
	}
	return nil, apperror.ArticleNotFound()
}

func (m *MockCommentService) DeleteComment(ctx context.Context, id int) error {
	m.Calls++
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}
