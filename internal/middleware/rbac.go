package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/course-reporting-api/internal/access"
	"github.com/noah-isme/course-reporting-api/internal/utils"
)

const localGrant = "access_grant"

// Authorize consults the policy for action and binds the resulting grant to the request.
func Authorize(policy *access.Policy, action access.Action) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := IdentityFromContext(c)
		if !ok {
			return utils.SendError(c, fiber.StatusUnauthorized, "No token provided")
		}

		grant, err := policy.Authorize(action, identity)
		if err != nil {
			message := "Access denied"
			var denied *access.DeniedError
			if errors.As(err, &denied) {
				message = denied.Message
			}
			return utils.SendError(c, fiber.StatusForbidden, message)
		}

		c.Locals(localGrant, grant)
		return c.Next()
	}
}

// GrantFromContext returns the grant bound by Authorize.
func GrantFromContext(c *fiber.Ctx) (access.Grant, bool) {
	if c == nil {
		return access.Grant{}, false
	}
	grant, ok := c.Locals(localGrant).(access.Grant)
	return grant, ok
}
