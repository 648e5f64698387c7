package service

import (
	"context"

	"github.com/news-api/internal/models"
	"github.com/news-api/internal/repository"
	"github.com/rs/zerolog"
)

// TopicService defines the interface for topic operations
type TopicService interface {
	ListTopics(ctx context.Context) ([]*models.Topic, error)
}

// UserService defines the interface for user operations
type UserService interface {
	ListUsers(ctx context.Context) ([]*models.User, error)
	GetUser(ctx context.Context, username string) (*models.User, error)
}

// ArticleService defines the interface for article queries and vote updates
type ArticleService interface {
	ListArticles(ctx context.Context, q models.ArticleQuery) ([]*models.Article, error)
	GetArticle(ctx context.Context, id int) (*models.Article, error)
	UpdateVotes(ctx context.Context, id int, delta int) (*models.Article, error)
}

// CommentService defines the interface for the comment sub-resource
type CommentService interface {
	ListComments(ctx context.Context, articleID int) ([]*models.Comment, error)
	AddComment(ctx context.Context, articleID int, comment *models.NewComment) (*models.Comment, error)
	DeleteComment(ctx context.Context, id int) error
}

// Services holds all service interfaces
type Services struct {
	Topic   TopicService
	User    UserService
	Article ArticleService
	Comment CommentService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, log zerolog.Logger) *Services {
	return &Services{
		Topic:   newTopicService(repos.Topic, log),
		User:    newUserService(repos.User, log),
		Article: newArticleService(repos.Article, repos.Topic, log),
		Comment: newCommentService(repos.Comment, repos.Article, repos.User, log),
	}
}
