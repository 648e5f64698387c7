package service

import (
	"context"

	"github.com/news-api/internal/apperror"
	"github.com/news-api/internal/models"
	"github.com/news-api/internal/repository"
	"github.com/rs/zerolog"
)

// userService is the concrete implementation of UserService
type userService struct {
	users repository.UserRepository
	log   zerolog.Logger
}

func newUserService(users repository.UserRepository, log zerolog.Logger) *userService {
	return &userService{
		users: users,
		log:   log.With().Str("service", "user").Logger(),
	}
}

// ListUsers returns every user
func (s *userService) ListUsers(ctx context.Context) ([]*models.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return users, nil
}

// GetUser returns a single user or NotFound
func (s *userService) GetUser(ctx context.Context, username string) (*models.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if user == nil {
		return nil, apperror.UserNotFound()
	}
	return user, nil
}
