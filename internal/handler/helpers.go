package handler

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/course-reporting-api/internal/access"
	"github.com/noah-isme/course-reporting-api/internal/middleware"
	"github.com/noah-isme/course-reporting-api/internal/service"
	"github.com/noah-isme/course-reporting-api/internal/utils"
)

// Authorizer returns the middleware guarding an action.
type Authorizer func(action access.Action) fiber.Handler

func parseQueryInt(c *fiber.Ctx, key string) (int, error) {
	value := strings.TrimSpace(c.Query(key))
	if value == "" {
		return 0, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	return parsed, nil
}

func parseUintParam(c *fiber.Ctx, key string) (uint, error) {
	value, err := strconv.ParseUint(strings.TrimSpace(c.Params(key)), 10, 64)
	if err != nil || value == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(value), nil
}

func requestLogger(base zerolog.Logger, c *fiber.Ctx) *zerolog.Logger {
	logger := base
	if c != nil {
		if correlation := middleware.GetCorrelationID(c); correlation != "" {
			logger = base.With().Str("correlation_id", correlation).Logger()
		}
	}
	return &logger
}

func isValidationError(err error) bool {
	var validationErrors validator.ValidationErrors
	return errors.As(err, &validationErrors)
}

// validationFailedOn reports whether the struct field failed validation, optionally on one of tags.
func validationFailedOn(err error, field string, tags ...string) bool {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return false
	}
	for _, fieldErr := range validationErrors {
		if fieldErr.Field() != field {
			continue
		}
		if len(tags) == 0 {
			return true
		}
		for _, tag := range tags {
			if fieldErr.Tag() == tag {
				return true
			}
		}
	}
	return false
}

// grantOrAbort fetches the grant bound by the Authorize middleware.
func grantOrAbort(c *fiber.Ctx) (access.Grant, bool) {
	grant, ok := middleware.GrantFromContext(c)
	if !ok {
		_ = utils.SendError(c, fiber.StatusUnauthorized, "No token provided")
	}
	return grant, ok
}

// respondError maps the shared service errors and falls back to a logged 500.
func respondError(c *fiber.Ctx, logger zerolog.Logger, err error, fallback string) error {
	var denied *access.DeniedError
	if errors.As(err, &denied) {
		return utils.SendError(c, fiber.StatusForbidden, denied.Message)
	}

	var reference *service.ReferenceError
	if errors.As(err, &reference) {
		return utils.SendError(c, fiber.StatusBadRequest, reference.Message)
	}

	requestLogger(logger, c).Error().Err(err).Str("path", c.Path()).Msg(fallback)
	return utils.SendError(c, fiber.StatusInternalServerError, fallback)
}
