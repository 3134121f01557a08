package dto

import "github.com/noah-isme/course-reporting-api/internal/models"

// RegisterRequest is the payload for POST /auth/register.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=student lecturer prl pl"`
	Faculty  string `json:"faculty" validate:"required,max=255"`
}

// LoginRequest is the payload for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// SessionUser is the public projection of the authenticated user.
type SessionUser struct {
	ID      uint            `json:"id"`
	Name    string          `json:"name"`
	Role    models.UserRole `json:"role"`
	Faculty string          `json:"faculty"`
}

// LoginResult carries the issued token and its owner.
type LoginResult struct {
	Token string      `json:"token"`
	User  SessionUser `json:"user"`
}

// NewSessionUser maps a user model to its session projection.
func NewSessionUser(user models.User) SessionUser {
	return SessionUser{
		ID:      user.ID,
		Name:    user.Name,
		Role:    user.Role,
		Faculty: user.Faculty,
	}
}
