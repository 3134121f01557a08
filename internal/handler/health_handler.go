package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/course-reporting-api/internal/config"
)

// HealthResponse represents the payload returned by the health endpoint.
type HealthResponse struct {
	Status      string            `json:"status"`
	Timestamp   time.Time         `json:"timestamp"`
	Service     string            `json:"service"`
	Environment string            `json:"environment"`
	Checks      map[string]string `json:"checks,omitempty"`
}

// HealthProbe checks one dependency.
type HealthProbe func(ctx context.Context) error

// HealthCheck returns a handler that reports application and dependency health. Any failing
// probe turns the response into a 503.
func HealthCheck(cfg config.Config, probes map[string]HealthProbe) fiber.Handler {
	return func(c *fiber.Ctx) error {
		payload := HealthResponse{
			Status:      "ok",
			Timestamp:   time.Now().UTC(),
			Service:     cfg.AppName,
			Environment: cfg.AppEnv,
		}

		if len(probes) > 0 {
			ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
			defer cancel()

			payload.Checks = make(map[string]string, len(probes))
			for name, probe := range probes {
				if err := probe(ctx); err != nil {
					payload.Checks[name] = "down"
					payload.Status = "degraded"
					continue
				}
				payload.Checks[name] = "up"
			}
		}

		status := fiber.StatusOK
		if payload.Status != "ok" {
			status = fiber.StatusServiceUnavailable
		}
		return c.Status(status).JSON(payload)
	}
}
