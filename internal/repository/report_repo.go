package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/noah-isme/course-reporting-api/internal/models"
)

// ReportDetail is a report joined with its class, course, lecturer and PRL names.
type ReportDetail struct {
	ID                    uint
	TopicTaught           string
	ActualStudentsPresent int
	Status                models.ReportStatus
	PRLFeedback           string `gorm:"column:prl_feedback"`
	PRLID                 uint   `gorm:"column:prl_id"`
	ClassName             string
	CourseName            string
	CourseCode            string
	LecturerName          string
	PRLName               string `gorm:"column:prl_name"`
	CreatedAt             time.Time
}

// ReportFilter narrows report listings. Nil fields apply no restriction.
type ReportFilter struct {
	LecturerID *uint
	PRLID      *uint
}

// FeedbackUpdate is the PRL review applied to a report.
type FeedbackUpdate struct {
	ReportID uint
	PRLID    uint
	Feedback string
	Status   models.ReportStatus
}

// ReportRepository persists lecture reports.
type ReportRepository interface {
	Create(ctx context.Context, report *models.Report) error
	ListDetails(ctx context.Context, filter ReportFilter) ([]ReportDetail, error)
	SubmitFeedback(ctx context.Context, update FeedbackUpdate) (int64, error)
}

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository constructs the report repository.
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(ctx context.Context, report *models.Report) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(report).Error
}

func (r *reportRepository) ListDetails(ctx context.Context, filter ReportFilter) ([]ReportDetail, error) {
	query := r.db.WithContext(ctx).Table("reports").
		Select(`reports.id, reports.topic_taught, reports.actual_students_present, reports.status,
			reports.prl_feedback, reports.prl_id, reports.created_at,
			classes.name AS class_name, courses.name AS course_name, courses.code AS course_code,
			lecturers.name AS lecturer_name, prls.name AS prl_name`).
		Joins("JOIN classes ON classes.id = reports.class_id").
		Joins("JOIN courses ON courses.id = classes.course_id").
		Joins("JOIN users AS lecturers ON lecturers.id = reports.lecturer_id").
		Joins("JOIN users AS prls ON prls.id = reports.prl_id")

	if filter.LecturerID != nil {
		query = query.Where("reports.lecturer_id = ?", *filter.LecturerID)
	}
	if filter.PRLID != nil {
		query = query.Where("reports.prl_id = ?", *filter.PRLID)
	}

	var rows []ReportDetail
	if err := query.Order("reports.created_at DESC").Order("reports.id DESC").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// SubmitFeedback updates the report only when it is addressed to the given PRL and
// reports how many rows changed.
func (r *reportRepository) SubmitFeedback(ctx context.Context, update FeedbackUpdate) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Report{}).
		Where("id = ? AND prl_id = ?", update.ReportID, update.PRLID).
		Updates(map[string]interface{}{
			"prl_feedback": update.Feedback,
			"status":       update.Status,
		})
	return result.RowsAffected, result.Error
}
