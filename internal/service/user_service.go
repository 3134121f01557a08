package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/noah-isme/course-reporting-api/internal/access"
	"github.com/noah-isme/course-reporting-api/internal/dto"
	"github.com/noah-isme/course-reporting-api/internal/models"
	"github.com/noah-isme/course-reporting-api/internal/repository"
)

// UserService lists the user directory.
type UserService interface {
	ListByRole(ctx context.Context, grant access.Grant, role string) ([]dto.UserResponse, error)
}

type userService struct {
	users  repository.UserRepository
	logger zerolog.Logger
}

// NewUserService constructs the user directory service.
func NewUserService(users repository.UserRepository, logger zerolog.Logger) UserService {
	return &userService{
		users:  users,
		logger: logger.With().Str("component", "user_service").Logger(),
	}
}

func (s *userService) ListByRole(ctx context.Context, grant access.Grant, role string) ([]dto.UserResponse, error) {
	if grant.Scope != access.ScopeAll {
		return nil, unsupportedScope(grant)
	}

	parsed, ok := models.ParseRole(role)
	if !ok {
		return nil, ErrInvalidRole
	}

	users, err := s.users.ListByRole(ctx, parsed)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, dto.NewUserResponse(user))
	}
	return responses, nil
}
