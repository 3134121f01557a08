package utils_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/course-reporting-api/internal/utils"
)

func TestSendMessageMergesFields(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return utils.SendMessage(c, "Login successful", fiber.Map{"token": "abc", "message": "ignored"})
	})

	resp := performRequest(t, app, http.MethodGet, "/")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var payload map[string]interface{}
	decode(t, resp, &payload)

	require.Equal(t, "Login successful", payload["message"])
	require.Equal(t, "abc", payload["token"])
}

func TestSendErrorOnlyCarriesMessage(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return utils.SendError(c, fiber.StatusForbidden, "")
	})

	resp := performRequest(t, app, http.MethodGet, "/")
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	var payload map[string]interface{}
	decode(t, resp, &payload)

	require.Equal(t, map[string]interface{}{"message": "error"}, payload)
}

func TestSendDataWritesRawArray(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return utils.SendData(c, []string{"a", "b"})
	})

	resp := performRequest(t, app, http.MethodGet, "/")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var payload []string
	decode(t, resp, &payload)
	require.Equal(t, []string{"a", "b"}, payload)
}

func performRequest(t *testing.T, app *fiber.App, method, path string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(target))
}
