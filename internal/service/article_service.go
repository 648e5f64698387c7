package service

import (
	"context"

	"github.com/news-api/internal/apperror"
	"github.com/news-api/internal/models"
	"github.com/news-api/internal/repository"
	"github.com/rs/zerolog"
)

// articleService is the concrete implementation of ArticleService
type articleService struct {
	articles repository.ArticleRepository
	topics   repository.TopicRepository
	log      zerolog.Logger
}

func newArticleService(articles repository.ArticleRepository, topics repository.TopicRepository, log zerolog.Logger) *articleService {
	return &articleService{
		articles: articles,
		topics:   topics,
		log:      log.With().Str("service", "article").Logger(),
	}
}

// ListArticles returns the articles matching q. When a topic filter yields no
// rows, the topic's existence decides between an empty listing and UnknownTopic.
func (s *articleService) ListArticles(ctx context.Context, q models.ArticleQuery) ([]*models.Article, error) {
	articles, err := s.articles.List(ctx, q)
	if err != nil {
		return nil, apperror.From(err)
	}

	if len(articles) == 0 && q.Topic != "" {
		exists, err := s.topics.Exists(ctx, q.Topic)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		if !exists {
			return nil, apperror.UnknownTopic()
		}
	}

	s.log.Debug().
		Str("sort_by", q.SortBy).
		Str("order", q.Order).
		Str("topic", q.Topic).
		Int("count", len(articles)).
		Msg("Listed articles")

	return articles, nil
}

// GetArticle returns a single article or NotFound
func (s *articleService) GetArticle(ctx context.Context, id int) (*models.Article, error) {
	article, err := s.articles.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if article == nil {
		return nil, apperror.ArticleNotFound()
	}
	return article, nil
}

// UpdateVotes applies a relative vote change atomically in storage
func (s *articleService) UpdateVotes(ctx context.Context, id int, delta int) (*models.Article, error) {
	article, err := s.articles.IncrementVotes(ctx, id, delta)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if article == nil {
		return nil, apperror.ArticleNotFound()
	}

	s.log.Info().
		Int("article_id", id).
		Int("delta", delta).
		Int("votes", article.Votes).
		Msg("Article votes updated")

	return article, nil
}
