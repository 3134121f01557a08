package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/noah-isme/course-reporting-api/internal/models"
)

// RatingDetail is a rating joined with the rater's name.
type RatingDetail struct {
	ID        uint
	Module    string
	Score     int
	Comment   string
	RaterName string
	CreatedAt time.Time
}

// RatingRepository persists lecturer ratings.
type RatingRepository interface {
	Create(ctx context.Context, rating *models.Rating) error
	ListForLecturer(ctx context.Context, lecturerID uint) ([]RatingDetail, error)
}

type ratingRepository struct {
	db *gorm.DB
}

// NewRatingRepository constructs the rating repository.
func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

func (r *ratingRepository) Create(ctx context.Context, rating *models.Rating) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(rating).Error
}

func (r *ratingRepository) ListForLecturer(ctx context.Context, lecturerID uint) ([]RatingDetail, error) {
	var rows []RatingDetail
	err := r.db.WithContext(ctx).Table("ratings").
		Select("ratings.id, ratings.module, ratings.score, ratings.comment, ratings.created_at, users.name AS rater_name").
		Joins("JOIN users ON users.id = ratings.rater_id").
		Where("ratings.lecturer_id = ?", lecturerID).
		Order("ratings.created_at DESC").
		Order("ratings.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
