package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/course-reporting-api/internal/access"
	"github.com/noah-isme/course-reporting-api/internal/dto"
	"github.com/noah-isme/course-reporting-api/internal/service"
	"github.com/noah-isme/course-reporting-api/internal/utils"
)

// ClassHandler exposes class scheduling.
type ClassHandler struct {
	service service.ClassService
	logger  zerolog.Logger
}

// NewClassHandler constructs the class handler.
func NewClassHandler(service service.ClassService, logger zerolog.Logger) *ClassHandler {
	return &ClassHandler{
		service: service,
		logger:  logger.With().Str("component", "class_handler").Logger(),
	}
}

// Register wires the class routes.
func (h *ClassHandler) Register(router fiber.Router, authorize Authorizer) {
	router.Post("/classes", authorize(access.ActionClassCreate), h.create)
	router.Get("/classes", authorize(access.ActionClassList), h.list("Error fetching classes"))
	router.Get("/my-classes", authorize(access.ActionClassListMine), h.list("Error fetching your classes"))
}

func (h *ClassHandler) create(c *fiber.Ctx) error {
	grant, ok := grantOrAbort(c)
	if !ok {
		return nil
	}

	var payload dto.ClassCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "Invalid request payload")
	}

	class, err := h.service.Create(c.UserContext(), grant, payload)
	if err != nil {
		switch {
		case validationFailedOn(err, "TotalRegistered"):
			return utils.SendError(c, fiber.StatusBadRequest, "total_registered must not be negative")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, "course_id, name, and lecturer_id are required")
		}
		return respondError(c, h.logger, err, "Error creating class")
	}

	return utils.SendMessage(c, "Class created successfully", fiber.Map{"class": class})
}

// list serves both the full and the lecturer listing; the grant's scope decides which rows.
func (h *ClassHandler) list(failure string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		grant, ok := grantOrAbort(c)
		if !ok {
			return nil
		}

		classes, err := h.service.List(c.UserContext(), grant)
		if err != nil {
			return respondError(c, h.logger, err, failure)
		}
		return utils.SendData(c, classes)
	}
}
