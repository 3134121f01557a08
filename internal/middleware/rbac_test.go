package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/course-reporting-api/internal/access"
	"github.com/noah-isme/course-reporting-api/internal/models"
)

func withIdentity(role models.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		SetIdentity(c, access.Identity{UserID: 3, Role: role, Faculty: "ICT"})
		return c.Next()
	}
}

func TestAuthorizeBindsGrantForAllowedRole(t *testing.T) {
	app := fiber.New()
	app.Use(withIdentity(models.RolePRL))
	app.Get("/reports", Authorize(access.NewPolicy(), access.ActionReportList), func(c *fiber.Ctx) error {
		grant, ok := GrantFromContext(c)
		require.True(t, ok)
		return c.SendString(grant.Scope.String())
	})

	req := httptest.NewRequest(http.MethodGet, "/reports", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := make([]byte, 16)
	n, _ := resp.Body.Read(body)
	require.Equal(t, "prl", string(body[:n]))
}

func TestAuthorizeRejectsRoleOutsidePolicy(t *testing.T) {
	app := fiber.New()
	app.Use(withIdentity(models.RoleLecturer))
	app.Post("/courses", Authorize(access.NewPolicy(), access.ActionCourseCreate), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/courses", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	var payload map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	require.Equal(t, "Only Program Leaders can add courses", payload["message"])
}

func TestAuthorizeRequiresIdentity(t *testing.T) {
	app := fiber.New()
	app.Get("/faculty", Authorize(access.NewPolicy(), access.ActionFacultyOverview), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/faculty", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
