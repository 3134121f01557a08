package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/course-reporting-api/internal/access"
	"github.com/noah-isme/course-reporting-api/internal/dto"
	"github.com/noah-isme/course-reporting-api/internal/models"
	"github.com/noah-isme/course-reporting-api/internal/repository"
)

// ClassService schedules classes and lists them per caller.
type ClassService interface {
	Create(ctx context.Context, grant access.Grant, payload dto.ClassCreateRequest) (dto.ClassResponse, error)
	List(ctx context.Context, grant access.Grant) ([]dto.ClassResponse, error)
}

type classService struct {
	classes   repository.ClassRepository
	courses   repository.CourseRepository
	users     repository.UserRepository
	validator *validator.Validate
	effects   mutationEffects
	logger    zerolog.Logger
}

// NewClassService constructs the class service.
func NewClassService(classes repository.ClassRepository, courses repository.CourseRepository, users repository.UserRepository, activity ActivityRecorder, events EventPublisher, validate *validator.Validate, logger zerolog.Logger) ClassService {
	componentLogger := logger.With().Str("component", "class_service").Logger()
	return &classService{
		classes:   classes,
		courses:   courses,
		users:     users,
		validator: validate,
		effects:   mutationEffects{activity: activity, events: events, logger: componentLogger},
		logger:    componentLogger,
	}
}

func (s *classService) Create(ctx context.Context, grant access.Grant, payload dto.ClassCreateRequest) (dto.ClassResponse, error) {
	payload.Name = strings.TrimSpace(payload.Name)
	payload.ScheduledTime = strings.TrimSpace(payload.ScheduledTime)
	payload.Venue = strings.TrimSpace(payload.Venue)
	if err := s.validator.Struct(payload); err != nil {
		return dto.ClassResponse{}, err
	}

	if _, err := s.courses.GetByID(ctx, payload.CourseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ClassResponse{}, invalidReference("course_id", payload.CourseID, "Course not found")
		}
		return dto.ClassResponse{}, err
	}

	if _, err := requireRole(ctx, s.users, "lecturer_id", payload.LecturerID, models.RoleLecturer, "Lecturer not found"); err != nil {
		return dto.ClassResponse{}, err
	}

	lecturerID := payload.LecturerID
	class := models.Class{
		CourseID:           payload.CourseID,
		Name:               payload.Name,
		ScheduledTime:      payload.ScheduledTime,
		Venue:              payload.Venue,
		TotalRegistered:    payload.TotalRegistered,
		AssignedLecturerID: &lecturerID,
	}

	detail, err := s.classes.CreateWithDetails(ctx, &class)
	if err != nil {
		return dto.ClassResponse{}, err
	}

	s.effects.emit(ctx, ActivityEntry{
		ActorID:    grant.UserID,
		ActorRole:  string(grant.Role),
		Action:     ActionClassCreated,
		EntityType: "class",
		EntityID:   &class.ID,
		Metadata:   map[string]interface{}{"course_id": class.CourseID, "lecturer_id": lecturerID},
	}, map[string]interface{}{"name": class.Name, "course_id": class.CourseID, "lecturer_id": lecturerID})

	return dto.NewClassResponse(detail), nil
}

func (s *classService) List(ctx context.Context, grant access.Grant) ([]dto.ClassResponse, error) {
	var filter repository.ClassFilter
	switch grant.Scope {
	case access.ScopeAll:
	case access.ScopeLecturer:
		lecturerID := grant.UserID
		filter.LecturerID = &lecturerID
	default:
		return nil, unsupportedScope(grant)
	}

	rows, err := s.classes.ListDetails(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ClassResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, dto.NewClassResponse(row))
	}
	return responses, nil
}

// requireRole resolves id to a user holding role or returns a ReferenceError.
func requireRole(ctx context.Context, users repository.UserRepository, field string, id uint, role models.UserRole, message string) (models.User, error) {
	user, err := users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, invalidReference(field, id, message)
		}
		return models.User{}, err
	}
	if user.Role != role {
		return models.User{}, invalidReference(field, id, message)
	}
	return user, nil
}
