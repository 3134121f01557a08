package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/noah-isme/course-reporting-api/internal/models"
)

// ClassDetail is a class joined with its course and assigned lecturer.
type ClassDetail struct {
	ID              uint
	Name            string
	ScheduledTime   string
	Venue           string
	TotalRegistered int
	CourseID        uint
	CourseName      string
	CourseCode      string
	LecturerID      *uint
	LecturerName    *string
}

// ClassFilter narrows class listings.
type ClassFilter struct {
	LecturerID *uint
}

// ClassRepository persists classes.
type ClassRepository interface {
	CreateWithDetails(ctx context.Context, class *models.Class) (ClassDetail, error)
	GetByID(ctx context.Context, id uint) (models.Class, error)
	ListDetails(ctx context.Context, filter ClassFilter) ([]ClassDetail, error)
}

type classRepository struct {
	db *gorm.DB
}

// NewClassRepository constructs the class repository.
func NewClassRepository(db *gorm.DB) ClassRepository {
	return &classRepository{db: db}
}

// CreateWithDetails inserts the class and reads back its joined row in one transaction.
func (r *classRepository) CreateWithDetails(ctx context.Context, class *models.Class) (ClassDetail, error) {
	var detail ClassDetail
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(class).Error; err != nil {
			return err
		}

		var rows []ClassDetail
		if err := classDetailQuery(tx).Where("classes.id = ?", class.ID).Scan(&rows).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return gorm.ErrRecordNotFound
		}
		detail = rows[0]
		return nil
	})
	return detail, err
}

func (r *classRepository) GetByID(ctx context.Context, id uint) (models.Class, error) {
	var class models.Class
	err := r.db.WithContext(ctx).Take(&class, id).Error
	return class, err
}

func (r *classRepository) ListDetails(ctx context.Context, filter ClassFilter) ([]ClassDetail, error) {
	query := classDetailQuery(r.db.WithContext(ctx))
	if filter.LecturerID != nil {
		query = query.Where("classes.assigned_lecturer_id = ?", *filter.LecturerID)
	}

	var rows []ClassDetail
	if err := query.Order("classes.id ASC").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func classDetailQuery(db *gorm.DB) *gorm.DB {
	return db.Table("classes").
		Select(`classes.id, classes.name, classes.scheduled_time, classes.venue, classes.total_registered,
			classes.course_id, courses.name AS course_name, courses.code AS course_code,
			users.id AS lecturer_id, users.name AS lecturer_name`).
		Joins("JOIN courses ON courses.id = classes.course_id").
		Joins("LEFT JOIN users ON users.id = classes.assigned_lecturer_id")
}
