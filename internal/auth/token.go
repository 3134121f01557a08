package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/noah-isme/course-reporting-api/internal/models"
)

// ErrInvalidOrExpiredToken is returned for any token that fails signature, format or expiry checks.
var ErrInvalidOrExpiredToken = errors.New("invalid or expired token")

// Claims is the verified payload of a session token.
type Claims struct {
	UserID  uint            `json:"id"`
	Name    string          `json:"name"`
	Email   string          `json:"email"`
	Role    models.UserRole `json:"role"`
	Faculty string          `json:"faculty"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies HS256 session tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

// NewTokenManager builds a manager signing with secret and the given lifetime.
func NewTokenManager(secret string, ttl time.Duration, issuer string) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: issuer,
		now:    time.Now,
	}
}

// TTL returns the lifetime applied to issued tokens.
func (m *TokenManager) TTL() time.Duration {
	return m.ttl
}

// Issue signs a token for the given user.
func (m *TokenManager) Issue(user models.User) (string, error) {
	now := m.now()
	claims := Claims{
		UserID:  user.ID,
		Name:    user.Name,
		Email:   user.Email,
		Role:    user.Role,
		Faculty: user.Faculty,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses the token and returns its claims when the signature and expiry are valid.
func (m *TokenManager) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidOrExpiredToken
	}

	if claims.UserID == 0 {
		return nil, ErrInvalidOrExpiredToken
	}
	if _, ok := models.ParseRole(string(claims.Role)); !ok {
		return nil, ErrInvalidOrExpiredToken
	}

	return claims, nil
}
