package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrDuplicate is returned when an insert violates a unique index.
var ErrDuplicate = errors.New("duplicate record")

// isUniqueViolation recognises duplicate-key failures. TranslateError covers the
// registered dialects; the message match catches drivers that bypass translation.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate entry") ||
		strings.Contains(msg, "duplicate key")
}
