package dto

import "github.com/noah-isme/course-reporting-api/internal/models"

// UserResponse is the directory entry returned by GET /api/users/:role.
type UserResponse struct {
	ID      uint            `json:"id"`
	Name    string          `json:"name"`
	Email   string          `json:"email"`
	Role    models.UserRole `json:"role"`
	Faculty string          `json:"faculty"`
}

// NewUserResponse maps a user model to its directory entry.
func NewUserResponse(user models.User) UserResponse {
	return UserResponse{
		ID:      user.ID,
		Name:    user.Name,
		Email:   user.Email,
		Role:    user.Role,
		Faculty: user.Faculty,
	}
}
