package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrPasswordMismatch indicates the supplied password does not match the stored hash.
var ErrPasswordMismatch = errors.New("password mismatch")

// dummyHash is compared against when no user exists so both login failure paths cost a bcrypt round.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("course-reporting-dummy"), bcrypt.DefaultCost)

// HashPassword returns a salted bcrypt hash of the password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword compares a plaintext password with a stored bcrypt hash.
func CheckPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrPasswordMismatch
		}
		return fmt.Errorf("compare password: %w", err)
	}
	return nil
}

// BurnPasswordCheck performs a throwaway comparison for unknown accounts.
func BurnPasswordCheck(password string) {
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
}
