package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// HeaderCorrelationID carries the request correlation identifier.
const HeaderCorrelationID = "X-Correlation-ID"

const (
	localCorrelationID   = "correlation_id"
	maxCorrelationLength = 128
)

type correlationIDKey struct{}

// CorrelationID tags each request with an identifier echoed back in X-Correlation-ID.
// A usable X-Correlation-ID or X-Request-ID from the caller is kept; otherwise a UUID is minted.
func CorrelationID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := acceptCorrelationID(c.Get(HeaderCorrelationID))
		if id == "" {
			id = acceptCorrelationID(c.Get(fiber.HeaderXRequestID))
		}
		if id == "" {
			id = uuid.NewString()
		}

		c.Locals(localCorrelationID, id)
		c.Set(HeaderCorrelationID, id)
		c.SetUserContext(context.WithValue(c.UserContext(), correlationIDKey{}, id))

		return c.Next()
	}
}

// acceptCorrelationID drops ids that would pollute logs: oversized or containing
// anything outside printable ASCII.
func acceptCorrelationID(raw string) string {
	id := strings.TrimSpace(raw)
	if id == "" || len(id) > maxCorrelationLength {
		return ""
	}
	for i := 0; i < len(id); i++ {
		if id[i] < 0x21 || id[i] > 0x7e {
			return ""
		}
	}
	return id
}

// CorrelationIDFromContext extracts the correlation identifier from context, if present.
func CorrelationIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(correlationIDKey{}).(string)
	return id
}

// GetCorrelationID returns the correlation identifier bound to the active request.
func GetCorrelationID(c *fiber.Ctx) string {
	if c == nil {
		return ""
	}
	if id, ok := c.Locals(localCorrelationID).(string); ok {
		return id
	}
	return CorrelationIDFromContext(c.UserContext())
}
