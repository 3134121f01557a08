package router

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/course-reporting-api/internal/access"
	"github.com/noah-isme/course-reporting-api/internal/config"
	"github.com/noah-isme/course-reporting-api/internal/handler"
	"github.com/noah-isme/course-reporting-api/internal/middleware"
	"github.com/noah-isme/course-reporting-api/internal/observability"
	"github.com/noah-isme/course-reporting-api/internal/utils"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler     *handler.AuthHandler
	UserHandler     *handler.UserHandler
	CourseHandler   *handler.CourseHandler
	ClassHandler    *handler.ClassHandler
	ReportHandler   *handler.ReportHandler
	RatingHandler   *handler.RatingHandler
	FacultyHandler  *handler.FacultyHandler
	ActivityHandler *handler.ActivityHandler
	HealthProbes    map[string]handler.HealthProbe
	Policy          *access.Policy
	JWTMiddleware   fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Backend server is running")
	})
	app.Get(observability.MetricsPath, observability.MetricsHandler())

	if deps.AuthHandler != nil {
		authGroup := app.Group("/auth")
		if cfg.AuthRateLimit > 0 {
			authGroup.Use(middleware.RateLimit("auth", cfg.AuthRateLimit, cfg.AuthRateWindow))
		}
		deps.AuthHandler.Register(authGroup)
	}

	api := app.Group("/api")
	api.Get("/health", handler.HealthCheck(cfg, deps.HealthProbes))

	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error {
			return utils.SendError(c, fiber.StatusUnauthorized, "No token provided")
		}
	}

	policy := deps.Policy
	if policy == nil {
		policy = access.NewPolicy()
	}
	authorize := func(action access.Action) fiber.Handler {
		return middleware.Authorize(policy, action)
	}

	protected := api.Group("", jwtMiddleware)

	if deps.UserHandler != nil {
		deps.UserHandler.Register(protected, authorize)
	}
	if deps.CourseHandler != nil {
		deps.CourseHandler.Register(protected, authorize)
	}
	if deps.ClassHandler != nil {
		deps.ClassHandler.Register(protected, authorize)
	}
	if deps.ReportHandler != nil {
		deps.ReportHandler.Register(protected, authorize)
	}
	if deps.RatingHandler != nil {
		deps.RatingHandler.Register(protected, authorize)
	}
	if deps.FacultyHandler != nil {
		deps.FacultyHandler.Register(protected, authorize)
	}
	if deps.ActivityHandler != nil {
		deps.ActivityHandler.Register(protected, authorize)
	}
}

// ErrorHandler renders errors that escape the handlers, such as unknown routes, in the
// shared message shape.
func ErrorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := "Internal server error"

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		status = fiberErr.Code
		message = fiberErr.Message
	}

	return utils.SendError(c, status, message)
}
