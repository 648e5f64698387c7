package repository

import (
	"context"

	"github.com/news-api/internal/database"
	"github.com/news-api/internal/models"
)

// TopicRepository defines the interface for topic data operations
type TopicRepository interface {
	List(ctx context.Context) ([]*models.Topic, error)
	Exists(ctx context.Context, slug string) (bool, error)
	BatchInsert(ctx context.Context, topics []*models.Topic) (int, error)
}

// UserRepository defines the interface for user data operations
type UserRepository interface {
	List(ctx context.Context) ([]*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Exists(ctx context.Context, username string) (bool, error)
	BatchInsert(ctx context.Context, users []*models.User) (int, error)
}

// ArticleRepository defines the interface for article data operations.
// Every returned article carries a comment count aggregated at query time.
type ArticleRepository interface {
	List(ctx context.Context, q models.ArticleQuery) ([]*models.Article, error)
	GetByID(ctx context.Context, id int) (*models.Article, error)
	Exists(ctx context.Context, id int) (bool, error)
	IncrementVotes(ctx context.Context, id int, delta int) (*models.Article, error)
	BatchInsert(ctx context.Context, articles []*models.SeedArticle) (int, error)
}

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	ListByArticle(ctx context.Context, articleID int) ([]*models.Comment, error)
	Create(ctx context.Context, articleID int, comment *models.NewComment) (*models.Comment, error)
	Delete(ctx context.Context, id int) (bool, error)
	BatchInsert(ctx context.Context, comments []*models.SeedComment) (int, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	Topic   TopicRepository
	User    UserRepository
	Article ArticleRepository
	Comment CommentRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		Topic:   NewTopicRepo(db),
		User:    NewUserRepo(db),
		Article: NewArticleRepo(db),
		Comment: NewCommentRepo(db),
	}
}
