package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/course-reporting-api/internal/models"
)

// FacultyCounts aggregates the rows owned by a faculty.
type FacultyCounts struct {
	Courses int64
	Classes int64
	Reports int64
}

// FacultyRepository computes per-faculty aggregates.
type FacultyRepository interface {
	Counts(ctx context.Context, faculty string) (FacultyCounts, error)
}

type facultyRepository struct {
	db *gorm.DB
}

// NewFacultyRepository constructs the faculty repository.
func NewFacultyRepository(db *gorm.DB) FacultyRepository {
	return &facultyRepository{db: db}
}

func (r *facultyRepository) Counts(ctx context.Context, faculty string) (FacultyCounts, error) {
	var counts FacultyCounts
	db := r.db.WithContext(ctx)

	if err := db.Model(&models.Course{}).Where("faculty = ?", faculty).Count(&counts.Courses).Error; err != nil {
		return FacultyCounts{}, err
	}

	if err := db.Model(&models.Class{}).
		Joins("JOIN courses ON courses.id = classes.course_id").
		Where("courses.faculty = ?", faculty).
		Count(&counts.Classes).Error; err != nil {
		return FacultyCounts{}, err
	}

	if err := db.Model(&models.Report{}).
		Joins("JOIN classes ON classes.id = reports.class_id").
		Joins("JOIN courses ON courses.id = classes.course_id").
		Where("courses.faculty = ?", faculty).
		Count(&counts.Reports).Error; err != nil {
		return FacultyCounts{}, err
	}

	return counts, nil
}
