package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/course-reporting-api/internal/access"
	"github.com/noah-isme/course-reporting-api/internal/dto"
	"github.com/noah-isme/course-reporting-api/internal/service"
	"github.com/noah-isme/course-reporting-api/internal/utils"
)

const defaultActivityPageSize = 20

// ActivityHandler exposes the audit trail to program leaders.
type ActivityHandler struct {
	service service.ActivityService
	logger  zerolog.Logger
}

// NewActivityHandler constructs the activity handler.
func NewActivityHandler(service service.ActivityService, logger zerolog.Logger) *ActivityHandler {
	return &ActivityHandler{
		service: service,
		logger:  logger.With().Str("component", "activity_handler").Logger(),
	}
}

// Register wires the activity routes.
func (h *ActivityHandler) Register(router fiber.Router, authorize Authorizer) {
	router.Get("/activity", authorize(access.ActionActivityList), h.list)
}

func (h *ActivityHandler) list(c *fiber.Ctx) error {
	grant, ok := grantOrAbort(c)
	if !ok {
		return nil
	}

	page, err := parseQueryInt(c, "page")
	if err != nil || page < 0 {
		return utils.SendError(c, fiber.StatusBadRequest, "Invalid page")
	}
	pageSize, err := parseQueryInt(c, "page_size")
	if err != nil || pageSize < 0 || pageSize > 100 {
		return utils.SendError(c, fiber.StatusBadRequest, "Invalid page_size")
	}
	if pageSize == 0 {
		pageSize = defaultActivityPageSize
	}
	actorID, err := parseQueryInt(c, "actor_id")
	if err != nil || actorID < 0 {
		return utils.SendError(c, fiber.StatusBadRequest, "Invalid actor_id")
	}

	result, err := h.service.List(c.UserContext(), grant, dto.ActivityListRequest{
		Page:       page,
		PageSize:   pageSize,
		ActorID:    uint(actorID),
		Action:     c.Query("action"),
		EntityType: c.Query("entity_type"),
	})
	if err != nil {
		return respondError(c, h.logger, err, "Error fetching activity")
	}
	return utils.SendData(c, result)
}
