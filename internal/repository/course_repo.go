package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/course-reporting-api/internal/models"
)

// CourseFilter narrows course listings. A nil Faculty lists every course; a set one matches
// exactly, even when empty.
type CourseFilter struct {
	Faculty *string
}

// CourseRepository persists courses.
type CourseRepository interface {
	Create(ctx context.Context, course *models.Course) error
	GetByID(ctx context.Context, id uint) (models.Course, error)
	List(ctx context.Context, filter CourseFilter) ([]models.Course, error)
}

type courseRepository struct {
	db *gorm.DB
}

// NewCourseRepository constructs the course repository.
func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) Create(ctx context.Context, course *models.Course) error {
	return r.db.WithContext(ctx).Create(course).Error
}

func (r *courseRepository) GetByID(ctx context.Context, id uint) (models.Course, error) {
	var course models.Course
	err := r.db.WithContext(ctx).Take(&course, id).Error
	return course, err
}

func (r *courseRepository) List(ctx context.Context, filter CourseFilter) ([]models.Course, error) {
	query := r.db.WithContext(ctx).Model(&models.Course{})
	if filter.Faculty != nil {
		query = query.Where("faculty = ?", *filter.Faculty)
	}

	var courses []models.Course
	if err := query.Order("name ASC").Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}
