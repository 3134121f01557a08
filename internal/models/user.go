package models

import (
	"strings"
	"time"
)

// UserRole represents the available roles for the access policy.
type UserRole string

const (
	RoleStudent  UserRole = "student"
	RoleLecturer UserRole = "lecturer"
	RolePRL      UserRole = "prl"
	RolePL       UserRole = "pl"
)

// Roles lists every role a user may register with.
var Roles = []UserRole{RoleStudent, RoleLecturer, RolePRL, RolePL}

// ParseRole normalises the raw role value and reports whether it is known.
func ParseRole(value string) (UserRole, bool) {
	value = strings.ToLower(strings.TrimSpace(value))
	for _, role := range Roles {
		if string(role) == value {
			return role, true
		}
	}
	return "", false
}

// User is a registered account. Email uniqueness is enforced by the index.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Role         UserRole  `gorm:"size:16;index;not null" json:"role"`
	Faculty      string    `gorm:"size:255;index" json:"faculty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
