package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/noah-isme/course-reporting-api/internal/access"
	"github.com/noah-isme/course-reporting-api/internal/dto"
	"github.com/noah-isme/course-reporting-api/internal/models"
	"github.com/noah-isme/course-reporting-api/internal/repository"
)

// ReportService handles lecture reports and their PRL review.
type ReportService interface {
	Create(ctx context.Context, grant access.Grant, payload dto.ReportCreateRequest) (uint, error)
	List(ctx context.Context, grant access.Grant) ([]dto.ReportResponse, error)
	SubmitFeedback(ctx context.Context, grant access.Grant, reportID uint, payload dto.ReportFeedbackRequest) (int64, error)
}

type reportService struct {
	reports   repository.ReportRepository
	classes   repository.ClassRepository
	users     repository.UserRepository
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	tracer    trace.Tracer
	effects   mutationEffects
	logger    zerolog.Logger
}

// NewReportService constructs the report service.
func NewReportService(reports repository.ReportRepository, classes repository.ClassRepository, users repository.UserRepository, activity ActivityRecorder, events EventPublisher, validate *validator.Validate, logger zerolog.Logger) ReportService {
	componentLogger := logger.With().Str("component", "report_service").Logger()
	return &reportService{
		reports:   reports,
		classes:   classes,
		users:     users,
		validator: validate,
		sanitizer: bluemonday.StrictPolicy(),
		tracer:    otel.Tracer("github.com/noah-isme/course-reporting-api/internal/service/report"),
		effects:   mutationEffects{activity: activity, events: events, logger: componentLogger},
		logger:    componentLogger,
	}
}

func (s *reportService) Create(ctx context.Context, grant access.Grant, payload dto.ReportCreateRequest) (uint, error) {
	ctx, span := s.tracer.Start(ctx, "report.create", trace.WithAttributes(
		attribute.Int64("report.lecturer_id", int64(grant.UserID)),
		attribute.Int64("report.class_id", int64(payload.ClassID)),
		attribute.Int64("report.prl_id", int64(payload.PRLID)),
	))
	defer span.End()

	if grant.Scope != access.ScopeSelf {
		err := unsupportedScope(grant)
		span.RecordError(err)
		span.SetStatus(codes.Error, "scope_rejected")
		return 0, err
	}

	payload.TopicTaught = strings.TrimSpace(s.sanitizer.Sanitize(payload.TopicTaught))
	if err := s.validator.Struct(payload); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation_failed")
		return 0, err
	}

	if _, err := s.classes.GetByID(ctx, payload.ClassID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			err = invalidReference("class_id", payload.ClassID, "Class not found")
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "class_lookup_failed")
		return 0, err
	}

	if _, err := requireRole(ctx, s.users, "prl_id", payload.PRLID, models.RolePRL, "PRL not found"); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "prl_lookup_failed")
		return 0, err
	}

	report := models.Report{
		LecturerID:            grant.UserID,
		ClassID:               payload.ClassID,
		TopicTaught:           payload.TopicTaught,
		ActualStudentsPresent: *payload.ActualStudentsPresent,
		Status:                models.ReportStatusPending,
		PRLID:                 payload.PRLID,
	}
	if err := s.reports.Create(ctx, &report); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "report_insert_failed")
		return 0, err
	}

	span.SetAttributes(attribute.Int64("report.id", int64(report.ID)))
	s.effects.emit(ctx, ActivityEntry{
		ActorID:    grant.UserID,
		ActorRole:  string(grant.Role),
		Action:     ActionReportCreated,
		EntityType: "report",
		EntityID:   &report.ID,
		Metadata:   map[string]interface{}{"class_id": report.ClassID, "prl_id": report.PRLID},
	}, map[string]interface{}{"class_id": report.ClassID, "prl_id": report.PRLID, "lecturer_id": report.LecturerID})

	return report.ID, nil
}

func (s *reportService) List(ctx context.Context, grant access.Grant) ([]dto.ReportResponse, error) {
	var filter repository.ReportFilter
	callerID := grant.UserID
	switch grant.Scope {
	case access.ScopeAll:
	case access.ScopeLecturer:
		filter.LecturerID = &callerID
	case access.ScopePRL:
		filter.PRLID = &callerID
	default:
		return nil, unsupportedScope(grant)
	}

	rows, err := s.reports.ListDetails(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ReportResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, dto.NewReportResponse(row))
	}
	return responses, nil
}

// SubmitFeedback reviews a report addressed to the calling PRL. Reports addressed to
// someone else are left untouched and reported as zero updated rows.
func (s *reportService) SubmitFeedback(ctx context.Context, grant access.Grant, reportID uint, payload dto.ReportFeedbackRequest) (int64, error) {
	ctx, span := s.tracer.Start(ctx, "report.feedback", trace.WithAttributes(
		attribute.Int64("report.id", int64(reportID)),
		attribute.Int64("report.prl_id", int64(grant.UserID)),
	))
	defer span.End()

	if grant.Scope != access.ScopePRL {
		err := unsupportedScope(grant)
		span.RecordError(err)
		span.SetStatus(codes.Error, "scope_rejected")
		return 0, err
	}

	payload.Feedback = strings.TrimSpace(s.sanitizer.Sanitize(payload.Feedback))
	payload.Status = strings.ToLower(strings.TrimSpace(payload.Status))
	if err := s.validator.Struct(payload); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation_failed")
		return 0, err
	}

	if models.ReportStatus(payload.Status) != models.ReportStatusReviewed {
		span.RecordError(ErrInvalidStatus)
		span.SetStatus(codes.Error, "invalid_status")
		return 0, ErrInvalidStatus
	}

	updated, err := s.reports.SubmitFeedback(ctx, repository.FeedbackUpdate{
		ReportID: reportID,
		PRLID:    grant.UserID,
		Feedback: payload.Feedback,
		Status:   models.ReportStatusReviewed,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "feedback_update_failed")
		return 0, err
	}

	span.SetAttributes(attribute.Int64("report.updated_rows", updated))
	if updated == 0 {
		s.logger.Debug().Uint("report_id", reportID).Uint("prl_id", grant.UserID).Msg("feedback matched no report")
		return 0, nil
	}

	s.effects.emit(ctx, ActivityEntry{
		ActorID:    grant.UserID,
		ActorRole:  string(grant.Role),
		Action:     ActionReportReviewed,
		EntityType: "report",
		EntityID:   &reportID,
		Metadata:   map[string]interface{}{"status": payload.Status},
	}, map[string]interface{}{"status": payload.Status})

	return updated, nil
}
