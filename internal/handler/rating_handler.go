package handler

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/course-reporting-api/internal/access"
	"github.com/noah-isme/course-reporting-api/internal/dto"
	"github.com/noah-isme/course-reporting-api/internal/service"
	"github.com/noah-isme/course-reporting-api/internal/utils"
)

// RatingHandler exposes lecturer ratings.
type RatingHandler struct {
	service service.RatingService
	logger  zerolog.Logger
}

// NewRatingHandler constructs the rating handler.
func NewRatingHandler(service service.RatingService, logger zerolog.Logger) *RatingHandler {
	return &RatingHandler{
		service: service,
		logger:  logger.With().Str("component", "rating_handler").Logger(),
	}
}

// Register wires the rating routes.
func (h *RatingHandler) Register(router fiber.Router, authorize Authorizer) {
	router.Post("/ratings", authorize(access.ActionRatingCreate), h.create)
	router.Get("/ratings/my", authorize(access.ActionRatingListMine), h.listMine)
	router.Get("/ratings/target/:lecturerId", authorize(access.ActionRatingListTarget), h.listForLecturer)
}

func (h *RatingHandler) create(c *fiber.Ctx) error {
	grant, ok := grantOrAbort(c)
	if !ok {
		return nil
	}

	var payload dto.RatingCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "Invalid request payload")
	}

	receipt, err := h.service.Create(c.UserContext(), grant, payload)
	if err != nil {
		switch {
		case payload.Score != 0 && validationFailedOn(err, "Score", "min", "max"):
			return utils.SendError(c, fiber.StatusBadRequest, fmt.Sprintf("Score must be between %d and %d", dto.MinRatingScore, dto.MaxRatingScore))
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, "Missing required fields")
		}
		return respondError(c, h.logger, err, "Failed to submit rating")
	}

	return utils.SendMessage(c, "Rating submitted successfully", fiber.Map{
		"lecturer_name": receipt.LecturerName,
		"rater_name":    receipt.RaterName,
	})
}

func (h *RatingHandler) listMine(c *fiber.Ctx) error {
	grant, ok := grantOrAbort(c)
	if !ok {
		return nil
	}

	ratings, err := h.service.ListMine(c.UserContext(), grant)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to fetch ratings")
	}
	return utils.SendData(c, ratings)
}

func (h *RatingHandler) listForLecturer(c *fiber.Ctx) error {
	grant, ok := grantOrAbort(c)
	if !ok {
		return nil
	}

	lecturerID, err := parseUintParam(c, "lecturerId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "Invalid lecturer id")
	}

	ratings, err := h.service.ListForLecturer(c.UserContext(), grant, lecturerID)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to fetch ratings")
	}
	return utils.SendData(c, ratings)
}
