package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/course-reporting-api/internal/access"
	"github.com/noah-isme/course-reporting-api/internal/service"
	"github.com/noah-isme/course-reporting-api/internal/utils"
)

// UserHandler exposes the user directory.
type UserHandler struct {
	service service.UserService
	logger  zerolog.Logger
}

// NewUserHandler constructs the user handler.
func NewUserHandler(service service.UserService, logger zerolog.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		logger:  logger.With().Str("component", "user_handler").Logger(),
	}
}

// Register wires the user routes.
func (h *UserHandler) Register(router fiber.Router, authorize Authorizer) {
	router.Get("/users/:role", authorize(access.ActionUserList), h.listByRole)
}

func (h *UserHandler) listByRole(c *fiber.Ctx) error {
	grant, ok := grantOrAbort(c)
	if !ok {
		return nil
	}

	users, err := h.service.ListByRole(c.UserContext(), grant, c.Params("role"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidRole) {
			return utils.SendError(c, fiber.StatusBadRequest, "Invalid role")
		}
		return respondError(c, h.logger, err, "Error fetching users")
	}

	return utils.SendData(c, users)
}
