package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/course-reporting-api/internal/access"
	"github.com/noah-isme/course-reporting-api/internal/dto"
	"github.com/noah-isme/course-reporting-api/internal/service"
	"github.com/noah-isme/course-reporting-api/internal/utils"
)

// ReportHandler exposes lecture reports and PRL feedback.
type ReportHandler struct {
	service service.ReportService
	logger  zerolog.Logger
}

// NewReportHandler constructs the report handler.
func NewReportHandler(service service.ReportService, logger zerolog.Logger) *ReportHandler {
	return &ReportHandler{
		service: service,
		logger:  logger.With().Str("component", "report_handler").Logger(),
	}
}

// Register wires the report routes.
func (h *ReportHandler) Register(router fiber.Router, authorize Authorizer) {
	router.Get("/reports", authorize(access.ActionReportList), h.list)
	router.Post("/reports", authorize(access.ActionReportCreate), h.create)
	router.Post("/reports/:id/feedback", authorize(access.ActionReportFeedback), h.feedback)
}

func (h *ReportHandler) list(c *fiber.Ctx) error {
	grant, ok := grantOrAbort(c)
	if !ok {
		return nil
	}

	reports, err := h.service.List(c.UserContext(), grant)
	if err != nil {
		return respondError(c, h.logger, err, "Error fetching reports")
	}
	return utils.SendData(c, reports)
}

func (h *ReportHandler) create(c *fiber.Ctx) error {
	grant, ok := grantOrAbort(c)
	if !ok {
		return nil
	}

	var payload dto.ReportCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "Invalid request payload")
	}

	id, err := h.service.Create(c.UserContext(), grant, payload)
	if err != nil {
		switch {
		case validationFailedOn(err, "ActualStudentsPresent", "gte"):
			return utils.SendError(c, fiber.StatusBadRequest, "actual_students_present must not be negative")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, "All fields are required")
		}
		return respondError(c, h.logger, err, "Error submitting report")
	}

	return utils.SendMessage(c, "Report submitted successfully", fiber.Map{"id": id})
}

func (h *ReportHandler) feedback(c *fiber.Ctx) error {
	grant, ok := grantOrAbort(c)
	if !ok {
		return nil
	}

	reportID, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "Invalid report id")
	}

	var payload dto.ReportFeedbackRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "Invalid request payload")
	}

	updated, err := h.service.SubmitFeedback(c.UserContext(), grant, reportID, payload)
	if err != nil {
		switch {
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, "Feedback and status are required")
		case errors.Is(err, service.ErrInvalidStatus):
			return utils.SendError(c, fiber.StatusBadRequest, "Status must be reviewed")
		}
		return respondError(c, h.logger, err, "Error submitting feedback")
	}

	return utils.SendMessage(c, "Feedback submitted successfully", fiber.Map{"updated": updated})
}
