package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/noah-isme/course-reporting-api/internal/access"
	"github.com/noah-isme/course-reporting-api/internal/dto"
	"github.com/noah-isme/course-reporting-api/internal/models"
	"github.com/noah-isme/course-reporting-api/internal/repository"
)

// RatingService records student ratings of lecturers.
type RatingService interface {
	Create(ctx context.Context, grant access.Grant, payload dto.RatingCreateRequest) (dto.RatingReceipt, error)
	ListMine(ctx context.Context, grant access.Grant) ([]dto.RatingResponse, error)
	ListForLecturer(ctx context.Context, grant access.Grant, lecturerID uint) ([]dto.RatingResponse, error)
}

type ratingService struct {
	ratings   repository.RatingRepository
	users     repository.UserRepository
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	effects   mutationEffects
	logger    zerolog.Logger
}

// NewRatingService constructs the rating service.
func NewRatingService(ratings repository.RatingRepository, users repository.UserRepository, activity ActivityRecorder, events EventPublisher, validate *validator.Validate, logger zerolog.Logger) RatingService {
	componentLogger := logger.With().Str("component", "rating_service").Logger()
	return &ratingService{
		ratings:   ratings,
		users:     users,
		validator: validate,
		sanitizer: bluemonday.StrictPolicy(),
		effects:   mutationEffects{activity: activity, events: events, logger: componentLogger},
		logger:    componentLogger,
	}
}

func (s *ratingService) Create(ctx context.Context, grant access.Grant, payload dto.RatingCreateRequest) (dto.RatingReceipt, error) {
	if grant.Scope != access.ScopeSelf {
		return dto.RatingReceipt{}, unsupportedScope(grant)
	}

	payload.Module = strings.TrimSpace(payload.Module)
	payload.Comment = strings.TrimSpace(s.sanitizer.Sanitize(payload.Comment))
	if err := s.validator.Struct(payload); err != nil {
		return dto.RatingReceipt{}, err
	}

	lecturer, err := requireRole(ctx, s.users, "lecturer_id", payload.LecturerID, models.RoleLecturer, "Lecturer not found")
	if err != nil {
		return dto.RatingReceipt{}, err
	}

	rating := models.Rating{
		LecturerID: lecturer.ID,
		RaterID:    grant.UserID,
		Module:     payload.Module,
		Score:      payload.Score,
		Comment:    payload.Comment,
	}
	if err := s.ratings.Create(ctx, &rating); err != nil {
		return dto.RatingReceipt{}, err
	}

	s.effects.emit(ctx, ActivityEntry{
		ActorID:    grant.UserID,
		ActorRole:  string(grant.Role),
		Action:     ActionRatingCreated,
		EntityType: "rating",
		EntityID:   &rating.ID,
		Metadata:   map[string]interface{}{"lecturer_id": lecturer.ID, "score": rating.Score},
	}, map[string]interface{}{"lecturer_id": lecturer.ID, "module": rating.Module, "score": rating.Score})

	return dto.RatingReceipt{ID: rating.ID, LecturerName: lecturer.Name, RaterName: grant.Name}, nil
}

func (s *ratingService) ListMine(ctx context.Context, grant access.Grant) ([]dto.RatingResponse, error) {
	if grant.Scope != access.ScopeLecturer {
		return nil, unsupportedScope(grant)
	}
	return s.list(ctx, grant.UserID)
}

func (s *ratingService) ListForLecturer(ctx context.Context, grant access.Grant, lecturerID uint) ([]dto.RatingResponse, error) {
	if grant.Scope != access.ScopeAll {
		return nil, unsupportedScope(grant)
	}
	return s.list(ctx, lecturerID)
}

func (s *ratingService) list(ctx context.Context, lecturerID uint) ([]dto.RatingResponse, error) {
	rows, err := s.ratings.ListForLecturer(ctx, lecturerID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.RatingResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, dto.NewRatingResponse(row))
	}
	return responses, nil
}
