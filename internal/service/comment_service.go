package service

import (
	"context"

	"github.com/news-api/internal/apperror"
	"github.com/news-api/internal/models"
	"github.com/news-api/internal/repository"
	"github.com/rs/zerolog"
)

// commentService is the concrete implementation of CommentService
type commentService struct {
	comments repository.CommentRepository
	articles repository.ArticleRepository
	users    repository.UserRepository
	log      zerolog.Logger
}

func newCommentService(
	comments repository.CommentRepository,
	articles repository.ArticleRepository,
	users repository.UserRepository,
	log zerolog.Logger,
) *commentService {
	return &commentService{
		comments: comments,
		articles: articles,
		users:    users,
		log:      log.With().Str("service", "comment").Logger(),
	}
}

// ListComments returns an article's comments. The article must exist; an
// existing article without comments yields an empty slice.
func (s *commentService) ListComments(ctx context.Context, articleID int) ([]*models.Comment, error) {
	if err := s.requireArticle(ctx, articleID); err != nil {
		return nil, err
	}

	comments, err := s.comments.ListByArticle(ctx, articleID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return comments, nil
}

// AddComment posts a comment after checking the article, then the author, exist
func (s *commentService) AddComment(ctx context.Context, articleID int, comment *models.NewComment) (*models.Comment, error) {
	if err := s.requireArticle(ctx, articleID); err != nil {
		return nil, err
	}

	exists, err := s.users.Exists(ctx, comment.Username)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if !exists {
		return nil, apperror.UserNotFound()
	}

	created, err := s.comments.Create(ctx, articleID, comment)
	if err != nil {
		return nil, apperror.From(err)
	}

	s.log.Info().
		Int("comment_id", created.CommentID).
		Int("article_id", articleID).
		Str("author", created.Author).
		Msg("Comment created")

	return created, nil
}

// DeleteComment removes exactly one comment. An unknown id reports the article
// not-found message, which existing clients match on.
func (s *commentService) DeleteComment(ctx context.Context, id int) error {
	deleted, err := s.comments.Delete(ctx, id)
	if err != nil {
		return apperror.Internal(err)
	}
	if !deleted {
		return apperror.ArticleNotFound()
	}

	s.log.Info().Int("comment_id", id).Msg("Comment deleted")
	return nil
}

func (s *commentService) requireArticle(ctx context.Context, articleID int) error {
	exists, err := s.articles.Exists(ctx, articleID)
	if err != nil {
		return apperror.Internal(err)
	}
	if !exists {
		return apperror.ArticleNotFound()
	}
	return nil
}
