package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/noah-isme/course-reporting-api/internal/access"
	"github.com/noah-isme/course-reporting-api/internal/dto"
	"github.com/noah-isme/course-reporting-api/internal/models"
	"github.com/noah-isme/course-reporting-api/internal/repository"
)

// CourseService manages the course catalogue.
type CourseService interface {
	Create(ctx context.Context, grant access.Grant, payload dto.CourseCreateRequest) (dto.CourseResponse, error)
	List(ctx context.Context, grant access.Grant) ([]dto.CourseResponse, error)
}

type courseService struct {
	courses   repository.CourseRepository
	validator *validator.Validate
	effects   mutationEffects
	logger    zerolog.Logger
}

// NewCourseService constructs the course service.
func NewCourseService(courses repository.CourseRepository, activity ActivityRecorder, events EventPublisher, validate *validator.Validate, logger zerolog.Logger) CourseService {
	componentLogger := logger.With().Str("component", "course_service").Logger()
	return &courseService{
		courses:   courses,
		validator: validate,
		effects:   mutationEffects{activity: activity, events: events, logger: componentLogger},
		logger:    componentLogger,
	}
}

func (s *courseService) Create(ctx context.Context, grant access.Grant, payload dto.CourseCreateRequest) (dto.CourseResponse, error) {
	payload.Name = strings.TrimSpace(payload.Name)
	payload.Code = strings.TrimSpace(payload.Code)
	payload.Faculty = strings.TrimSpace(payload.Faculty)
	if err := s.validator.Struct(payload); err != nil {
		return dto.CourseResponse{}, err
	}

	course := models.Course{Name: payload.Name, Code: payload.Code, Faculty: payload.Faculty}
	if err := s.courses.Create(ctx, &course); err != nil {
		return dto.CourseResponse{}, err
	}

	s.effects.emit(ctx, ActivityEntry{
		ActorID:    grant.UserID,
		ActorRole:  string(grant.Role),
		Action:     ActionCourseCreated,
		EntityType: "course",
		EntityID:   &course.ID,
		Metadata:   map[string]interface{}{"code": course.Code, "faculty": course.Faculty},
	}, map[string]interface{}{"name": course.Name, "code": course.Code, "faculty": course.Faculty})

	return dto.NewCourseResponse(course), nil
}

func (s *courseService) List(ctx context.Context, grant access.Grant) ([]dto.CourseResponse, error) {
	var filter repository.CourseFilter
	switch grant.Scope {
	case access.ScopeAll:
	case access.ScopeFaculty:
		faculty := grant.Faculty
		filter.Faculty = &faculty
	default:
		return nil, unsupportedScope(grant)
	}

	courses, err := s.courses.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.CourseResponse, 0, len(courses))
	for _, course := range courses {
		responses = append(responses, dto.NewCourseResponse(course))
	}
	return responses, nil
}
