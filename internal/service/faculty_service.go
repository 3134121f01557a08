package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/noah-isme/course-reporting-api/internal/access"
	"github.com/noah-isme/course-reporting-api/internal/dto"
	"github.com/noah-isme/course-reporting-api/internal/observability"
	"github.com/noah-isme/course-reporting-api/internal/repository"
)

const defaultFacultyCacheTTL = 30 * time.Second

// FacultyService reports per-faculty totals.
type FacultyService interface {
	Overview(ctx context.Context, grant access.Grant, faculty string) (dto.FacultyOverviewResponse, error)
}

type facultyService struct {
	repo     repository.FacultyRepository
	cache    *redis.Client
	cacheTTL time.Duration
	tracer   trace.Tracer
	logger   zerolog.Logger
}

// NewFacultyService constructs the faculty overview service. A nil cache disables caching.
func NewFacultyService(repo repository.FacultyRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) FacultyService {
	if ttl <= 0 {
		ttl = defaultFacultyCacheTTL
	}
	return &facultyService{
		repo:     repo,
		cache:    cache,
		cacheTTL: ttl,
		tracer:   otel.Tracer("github.com/noah-isme/course-reporting-api/internal/service/faculty"),
		logger:   logger.With().Str("component", "faculty_service").Logger(),
	}
}

func (s *facultyService) Overview(ctx context.Context, grant access.Grant, faculty string) (dto.FacultyOverviewResponse, error) {
	if grant.Scope != access.ScopeAll {
		return dto.FacultyOverviewResponse{}, unsupportedScope(grant)
	}

	faculty = strings.TrimSpace(faculty)
	ctx, span := s.tracer.Start(ctx, "faculty.overview", trace.WithAttributes(attribute.String("faculty.name", faculty)))
	defer span.End()

	cacheKey := fmt.Sprintf("faculty:overview:%s", strings.ToLower(faculty))
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, cacheKey).Result()
		switch {
		case err == nil:
			var response dto.FacultyOverviewResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				observability.FacultyCacheLookups().WithLabelValues("hit").Inc()
				span.SetAttributes(attribute.Bool("faculty.cache_hit", true))
				return response, nil
			}
			s.logger.Warn().Str("faculty", faculty).Msg("discarding malformed faculty cache entry")
		case errors.Is(err, redis.Nil):
		default:
			s.logger.Warn().Err(err).Msg("failed to read faculty cache")
		}
		observability.FacultyCacheLookups().WithLabelValues("miss").Inc()
	}

	counts, err := s.repo.Counts(ctx, faculty)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "count_failed")
		return dto.FacultyOverviewResponse{}, err
	}

	response := dto.FacultyOverviewResponse{
		CoursesCount: counts.Courses,
		ClassesCount: counts.Classes,
		ReportsCount: counts.Reports,
	}

	if s.cache != nil {
		if payload, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store faculty cache")
			}
		}
	}

	return response, nil
}
