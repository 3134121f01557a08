package handler

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/course-reporting-api/internal/access"
	"github.com/noah-isme/course-reporting-api/internal/service"
	"github.com/noah-isme/course-reporting-api/internal/utils"
)

// FacultyHandler exposes per-faculty totals.
type FacultyHandler struct {
	service service.FacultyService
	logger  zerolog.Logger
}

// NewFacultyHandler constructs the faculty handler.
func NewFacultyHandler(service service.FacultyService, logger zerolog.Logger) *FacultyHandler {
	return &FacultyHandler{
		service: service,
		logger:  logger.With().Str("component", "faculty_handler").Logger(),
	}
}

// Register wires the faculty routes.
func (h *FacultyHandler) Register(router fiber.Router, authorize Authorizer) {
	router.Get("/faculty/:facultyName", authorize(access.ActionFacultyOverview), h.overview)
}

func (h *FacultyHandler) overview(c *fiber.Ctx) error {
	grant, ok := grantOrAbort(c)
	if !ok {
		return nil
	}

	faculty := c.Params("facultyName")
	if decoded, err := url.PathUnescape(faculty); err == nil {
		faculty = decoded
	}

	overview, err := h.service.Overview(c.UserContext(), grant, faculty)
	if err != nil {
		return respondError(c, h.logger, err, "Error fetching faculty data")
	}
	return utils.SendData(c, overview)
}
