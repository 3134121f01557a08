package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/course-reporting-api/internal/models"
)

// UserRepository is the credential store.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (models.User, error)
	GetByID(ctx context.Context, id uint) (models.User, error)
	ListByRole(ctx context.Context, role models.UserRole) ([]models.User, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository constructs the gorm backed credential store.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create inserts the user, returning ErrDuplicate when the email is taken.
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", email).Take(&user).Error
	return user, err
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Take(&user, id).Error
	return user, err
}

func (r *userRepository) ListByRole(ctx context.Context, role models.UserRole) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Where("role = ?", role).
		Order("name ASC").
		Find(&users).Error
	return users, err
}
