package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/course-reporting-api/internal/access"
	"github.com/noah-isme/course-reporting-api/internal/dto"
	"github.com/noah-isme/course-reporting-api/internal/service"
	"github.com/noah-isme/course-reporting-api/internal/utils"
)

// CourseHandler exposes the course catalogue.
type CourseHandler struct {
	service service.CourseService
	logger  zerolog.Logger
}

// NewCourseHandler constructs the course handler.
func NewCourseHandler(service service.CourseService, logger zerolog.Logger) *CourseHandler {
	return &CourseHandler{
		service: service,
		logger:  logger.With().Str("component", "course_handler").Logger(),
	}
}

// Register wires the course routes.
func (h *CourseHandler) Register(router fiber.Router, authorize Authorizer) {
	router.Post("/courses", authorize(access.ActionCourseCreate), h.create)
	router.Get("/courses", authorize(access.ActionCourseList), h.list)
}

func (h *CourseHandler) create(c *fiber.Ctx) error {
	grant, ok := grantOrAbort(c)
	if !ok {
		return nil
	}

	var payload dto.CourseCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "Invalid request payload")
	}

	course, err := h.service.Create(c.UserContext(), grant, payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, "All fields are required")
		}
		return respondError(c, h.logger, err, "Error adding course")
	}

	return utils.SendMessage(c, "Course added successfully", fiber.Map{"course": course})
}

func (h *CourseHandler) list(c *fiber.Ctx) error {
	grant, ok := grantOrAbort(c)
	if !ok {
		return nil
	}

	courses, err := h.service.List(c.UserContext(), grant)
	if err != nil {
		return respondError(c, h.logger, err, "Error fetching courses")
	}
	return utils.SendData(c, courses)
}
