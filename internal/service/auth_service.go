package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/course-reporting-api/internal/auth"
	"github.com/noah-isme/course-reporting-api/internal/dto"
	"github.com/noah-isme/course-reporting-api/internal/models"
	"github.com/noah-isme/course-reporting-api/internal/observability"
	"github.com/noah-isme/course-reporting-api/internal/repository"
)

// TokenIssuer signs session tokens for authenticated users.
type TokenIssuer interface {
	Issue(user models.User) (string, error)
}

// AuthService registers accounts and exchanges credentials for session tokens.
type AuthService interface {
	Register(ctx context.Context, payload dto.RegisterRequest) (models.User, error)
	Login(ctx context.Context, payload dto.LoginRequest) (dto.LoginResult, error)
}

type authService struct {
	users     repository.UserRepository
	tokens    TokenIssuer
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewAuthService constructs the authentication service.
func NewAuthService(users repository.UserRepository, tokens TokenIssuer, validate *validator.Validate, logger zerolog.Logger) AuthService {
	return &authService{
		users:     users,
		tokens:    tokens,
		validator: validate,
		logger:    logger.With().Str("component", "auth_service").Logger(),
	}
}

func (s *authService) Register(ctx context.Context, payload dto.RegisterRequest) (models.User, error) {
	payload.Email = normalizeEmail(payload.Email)
	payload.Name = strings.TrimSpace(payload.Name)
	payload.Faculty = strings.TrimSpace(payload.Faculty)
	payload.Role = strings.ToLower(strings.TrimSpace(payload.Role))
	if err := s.validator.Struct(payload); err != nil {
		return models.User{}, err
	}

	role, ok := models.ParseRole(payload.Role)
	if !ok {
		return models.User{}, ErrInvalidRole
	}

	hash, err := auth.HashPassword(payload.Password)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		Name:         payload.Name,
		Email:        payload.Email,
		PasswordHash: hash,
		Role:         role,
		Faculty:      payload.Faculty,
	}
	if err := s.users.Create(ctx, &user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}

	s.logger.Info().Uint("user_id", user.ID).Str("role", string(user.Role)).Msg("user registered")
	return user, nil
}

func (s *authService) Login(ctx context.Context, payload dto.LoginRequest) (dto.LoginResult, error) {
	payload.Email = normalizeEmail(payload.Email)
	if err := s.validator.Struct(payload); err != nil {
		return dto.LoginResult{}, err
	}

	user, err := s.users.GetByEmail(ctx, payload.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			auth.BurnPasswordCheck(payload.Password)
			observability.LoginAttempts().WithLabelValues("rejected").Inc()
			return dto.LoginResult{}, ErrInvalidCredentials
		}
		observability.LoginAttempts().WithLabelValues("error").Inc()
		return dto.LoginResult{}, err
	}

	if err := auth.CheckPassword(user.PasswordHash, payload.Password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			observability.LoginAttempts().WithLabelValues("rejected").Inc()
			return dto.LoginResult{}, ErrInvalidCredentials
		}
		observability.LoginAttempts().WithLabelValues("error").Inc()
		return dto.LoginResult{}, err
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		observability.LoginAttempts().WithLabelValues("error").Inc()
		return dto.LoginResult{}, err
	}

	observability.LoginAttempts().WithLabelValues("success").Inc()
	return dto.LoginResult{Token: token, User: dto.NewSessionUser(user)}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
