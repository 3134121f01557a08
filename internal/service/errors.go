package service

import (
	"errors"
	"fmt"

	"github.com/noah-isme/course-reporting-api/internal/access"
)

var (
	// ErrDuplicateEmail indicates the email already belongs to an account.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrInvalidCredentials covers both unknown emails and wrong passwords.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidReference is matched by every ReferenceError.
	ErrInvalidReference = errors.New("invalid reference")
	// ErrInvalidStatus indicates a report status transition that is not allowed.
	ErrInvalidStatus = errors.New("invalid status")
	// ErrInvalidRole indicates a role outside the known set.
	ErrInvalidRole = errors.New("invalid role")
)

// ReferenceError reports a payload id that does not point at a usable row.
type ReferenceError struct {
	Field   string
	ID      uint
	Message string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("%s %d: %s", e.Field, e.ID, e.Message)
}

// Is lets callers match with errors.Is(err, ErrInvalidReference).
func (e *ReferenceError) Is(target error) bool {
	return target == ErrInvalidReference
}

func invalidReference(field string, id uint, message string) error {
	return &ReferenceError{Field: field, ID: id, Message: message}
}

// unsupportedScope guards services against grants minted for another action.
func unsupportedScope(grant access.Grant) error {
	return &access.DeniedError{Action: grant.Action, Role: grant.Role, Message: "Access denied"}
}
