package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/course-reporting-api/internal/models"
)

// ActivityLogFilter narrows audit trail queries.
type ActivityLogFilter struct {
	Page       int
	PageSize   int
	ActorID    *uint
	Action     string
	EntityType string
}

// ActivityLogRepository persists the audit trail of mutations.
type ActivityLogRepository interface {
	Create(ctx context.Context, entry *models.ActivityLog) error
	List(ctx context.Context, filter ActivityLogFilter) ([]models.ActivityLog, int64, error)
}

type activityLogRepository struct {
	db *gorm.DB
}

// NewActivityLogRepository constructs the activity log repository.
func NewActivityLogRepository(db *gorm.DB) ActivityLogRepository {
	return &activityLogRepository{db: db}
}

func (r *activityLogRepository) Create(ctx context.Context, entry *models.ActivityLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// List returns one page of entries, newest first, and the total matching the filter.
func (r *activityLogRepository) List(ctx context.Context, filter ActivityLogFilter) ([]models.ActivityLog, int64, error) {
	query := applyActivityFilter(r.db.WithContext(ctx).Model(&models.ActivityLog{}), filter)

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entries []models.ActivityLog
	err := paginate(query, filter.Page, filter.PageSize).
		Order("created_at DESC").
		Order("id DESC").
		Find(&entries).Error
	if err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}

func applyActivityFilter(db *gorm.DB, filter ActivityLogFilter) *gorm.DB {
	if filter.ActorID != nil {
		db = db.Where("actor_id = ?", *filter.ActorID)
	}
	if filter.Action != "" {
		db = db.Where("action = ?", filter.Action)
	}
	if filter.EntityType != "" {
		db = db.Where("entity_type = ?", filter.EntityType)
	}
	return db
}

// paginate applies offset/limit when pageSize is positive. Pages start at 1.
func paginate(db *gorm.DB, page, pageSize int) *gorm.DB {
	if pageSize <= 0 {
		return db
	}
	if page <= 0 {
		page = 1
	}
	return db.Offset((page - 1) * pageSize).Limit(pageSize)
}
