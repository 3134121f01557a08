package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/course-reporting-api/internal/dto"
	"github.com/noah-isme/course-reporting-api/internal/service"
	"github.com/noah-isme/course-reporting-api/internal/utils"
)

// AuthHandler exposes registration and login.
type AuthHandler struct {
	service service.AuthService
	logger  zerolog.Logger
}

// NewAuthHandler constructs the auth handler.
func NewAuthHandler(service service.AuthService, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  logger.With().Str("component", "auth_handler").Logger(),
	}
}

// Register wires the public auth routes.
func (h *AuthHandler) Register(router fiber.Router) {
	router.Post("/register", h.register)
	router.Post("/login", h.login)
}

func (h *AuthHandler) register(c *fiber.Ctx) error {
	var payload dto.RegisterRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "Invalid request payload")
	}

	if _, err := h.service.Register(c.UserContext(), payload); err != nil {
		switch {
		case errors.Is(err, service.ErrDuplicateEmail):
			return utils.SendError(c, fiber.StatusBadRequest, "Email already registered")
		case errors.Is(err, service.ErrInvalidRole), validationFailedOn(err, "Role", "oneof"):
			return utils.SendError(c, fiber.StatusBadRequest, "Invalid role")
		case validationFailedOn(err, "Email", "email"):
			return utils.SendError(c, fiber.StatusBadRequest, "Invalid email address")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, "All fields are required")
		}
		return respondError(c, h.logger, err, "Registration failed")
	}

	return utils.SendMessage(c, "Registration successful", nil)
}

func (h *AuthHandler) login(c *fiber.Ctx) error {
	var payload dto.LoginRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "Invalid request payload")
	}

	result, err := h.service.Login(c.UserContext(), payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			return utils.SendError(c, fiber.StatusUnauthorized, "Invalid credentials")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, "Email and password are required")
		}
		return respondError(c, h.logger, err, "Login failed")
	}

	return utils.SendMessage(c, "Login successful", fiber.Map{
		"token": result.Token,
		"user":  result.User,
	})
}
