package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/course-reporting-api/internal/access"
	"github.com/noah-isme/course-reporting-api/internal/service"
	"github.com/noah-isme/course-reporting-api/internal/utils"
)

func TestRespondErrorMapsServiceErrors(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"denied", &access.DeniedError{Action: access.ActionRatingCreate, Message: "Only students can submit ratings"}, fiber.StatusForbidden, "Only students can submit ratings"},
		{"reference", &service.ReferenceError{Field: "prl_id", ID: 7, Message: "PRL not found"}, fiber.StatusBadRequest, "PRL not found"},
		{"wrapped reference", errors.Join(errors.New("create report"), &service.ReferenceError{Field: "class_id", ID: 3, Message: "Class not found"}), fiber.StatusBadRequest, "Class not found"},
		{"unexpected", errors.New("database is locked"), fiber.StatusInternalServerError, "Error fetching reports"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				return respondError(c, zerolog.New(io.Discard), tc.err, "Error fetching reports")
			})

			resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
			require.NoError(t, err)
			require.Equal(t, tc.status, resp.StatusCode)

			var body utils.MessageResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			require.Equal(t, tc.message, body.Message)
		})
	}
}

func TestValidationFailedOn(t *testing.T) {
	type payload struct {
		Score int    `validate:"required,min=1,max=10"`
		Name  string `validate:"required"`
	}
	validate := validator.New(validator.WithRequiredStructEnabled())

	err := validate.Struct(payload{Score: 11, Name: "x"})
	require.True(t, isValidationError(err))
	require.True(t, validationFailedOn(err, "Score"))
	require.True(t, validationFailedOn(err, "Score", "min", "max"))
	require.False(t, validationFailedOn(err, "Score", "required"))
	require.False(t, validationFailedOn(err, "Name"))

	require.False(t, validationFailedOn(errors.New("plain"), "Score"))
	require.False(t, isValidationError(nil))
}

func TestGrantOrAbortWithoutGrant(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		if _, ok := grantOrAbort(c); !ok {
			return nil
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestParseUintParam(t *testing.T) {
	app := fiber.New()
	app.Get("/reports/:id", func(c *fiber.Ctx) error {
		id, err := parseUintParam(c, "id")
		if err != nil {
			return c.SendStatus(fiber.StatusBadRequest)
		}
		return c.JSON(fiber.Map{"id": id})
	})

	for path, status := range map[string]int{"/reports/12": fiber.StatusOK, "/reports/0": fiber.StatusBadRequest, "/reports/abc": fiber.StatusBadRequest} {
		resp, err := app.Test(httptest.NewRequest("GET", path, nil))
		require.NoError(t, err)
		require.Equal(t, status, resp.StatusCode, path)
	}
}
