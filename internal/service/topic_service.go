package service

import (
	"context"

	"github.com/news-api/internal/apperror"
	"github.com/news-api/internal/models"
	"github.com/news-api/internal/repository"
	"github.com/rs/zerolog"
)

// topicService is the concrete implementation of TopicService
type topicService struct {
	topics repository.TopicRepository
	log    zerolog.Logger
}

func newTopicService(topics repository.TopicRepository, log zerolog.Logger) *topicService {
	return &topicService{
		topics: topics,
		log:    log.With().Str("service", "topic").Logger(),
	}
}

// ListTopics returns every topic
func (s *topicService) ListTopics(ctx context.Context) ([]*models.Topic, error) {
	topics, err := s.topics.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return topics, nil
}
