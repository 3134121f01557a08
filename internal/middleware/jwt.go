package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/course-reporting-api/internal/access"
	"github.com/noah-isme/course-reporting-api/internal/auth"
	"github.com/noah-isme/course-reporting-api/internal/utils"
)

// Locals keys populated by JWTProtected.
const (
	LocalUserID      = "user_id"
	LocalUserRole    = "user_role"
	LocalUserFaculty = "user_faculty"
	LocalUserName    = "user_name"
	LocalUserEmail   = "user_email"
	localIdentity    = "identity"
)

// TokenVerifier validates session tokens.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// JWTProtected returns a middleware that validates bearer tokens and injects the caller identity.
func JWTProtected(verifier TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authorization := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
		if authorization == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "No token provided")
		}

		const bearer = "bearer "
		if len(authorization) <= len(bearer) || !strings.EqualFold(authorization[:len(bearer)], bearer) {
			return utils.SendError(c, fiber.StatusUnauthorized, "Invalid token format")
		}

		tokenString := strings.TrimSpace(authorization[len(bearer):])
		if tokenString == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "Invalid token format")
		}

		claims, err := verifier.Verify(tokenString)
		if err != nil {
			return utils.SendError(c, fiber.StatusForbidden, "Invalid or expired token")
		}

		SetIdentity(c, access.Identity{
			UserID:  claims.UserID,
			Name:    claims.Name,
			Email:   claims.Email,
			Role:    claims.Role,
			Faculty: claims.Faculty,
		})

		return c.Next()
	}
}

// SetIdentity binds the verified caller to the request.
func SetIdentity(c *fiber.Ctx, identity access.Identity) {
	c.Locals(localIdentity, identity)
	c.Locals(LocalUserID, identity.UserID)
	c.Locals(LocalUserRole, string(identity.Role))
	c.Locals(LocalUserFaculty, identity.Faculty)
	c.Locals(LocalUserName, identity.Name)
	c.Locals(LocalUserEmail, identity.Email)
}

// IdentityFromContext returns the caller bound by JWTProtected.
func IdentityFromContext(c *fiber.Ctx) (access.Identity, bool) {
	if c == nil {
		return access.Identity{}, false
	}
	identity, ok := c.Locals(localIdentity).(access.Identity)
	if !ok || identity.UserID == 0 {
		return access.Identity{}, false
	}
	return identity, true
}
