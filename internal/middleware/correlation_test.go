package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func TestCorrelationIDReusesIncomingHeader(t *testing.T) {
	app := fiber.New()
	app.Use(CorrelationID())
	app.Get("/", func(c *fiber.Ctx) error {
		require.Equal(t, "abc-123", CorrelationIDFromContext(c.UserContext()))
		return c.SendString(GetCorrelationID(c))
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderCorrelationID, "abc-123")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, "abc-123", resp.Header.Get(HeaderCorrelationID))
}

func TestCorrelationIDGeneratesWhenAbsent(t *testing.T) {
	app := fiber.New()
	app.Use(CorrelationID())
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	require.Len(t, resp.Header.Get(HeaderCorrelationID), 36)
}

func TestLatencyBucket(t *testing.T) {
	require.Equal(t, "<=25ms", latencyBucket(0))
	require.Equal(t, ">500ms", latencyBucket(2_000_000_000))
}

func TestCorrelationIDReplacesUnusableHeader(t *testing.T) {
	app := fiber.New()
	app.Use(CorrelationID())
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderCorrelationID, strings.Repeat("x", maxCorrelationLength+1))
	req.Header.Set(fiber.HeaderXRequestID, "req-42")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, "req-42", resp.Header.Get(HeaderCorrelationID))
}

func TestAcceptCorrelationID(t *testing.T) {
	require.Equal(t, "abc-123", acceptCorrelationID("  abc-123 "))
	require.Empty(t, acceptCorrelationID("has space"))
	require.Empty(t, acceptCorrelationID("bad\nline"))
	require.Empty(t, acceptCorrelationID(""))
}
