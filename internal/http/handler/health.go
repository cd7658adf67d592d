package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"helloapi/internal/health"
)

const readinessTimeout = 2 * time.Second

// HealthCheck reports readiness of the configured dependencies.
//
// @Summary Readiness probe
// @Tags health
// @Produce json
// @Success 200 {object} health.Report
// @Failure 503 {object} errorPayload
// @Router /health [get]
func HealthCheck(checkers ...health.Checker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), readinessTimeout)
		defer cancel()

		rep := health.Run(ctx, checkers)
		if !rep.Healthy() {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(rep)
	}
}

// LivenessProbe answers 200 as long as the process serves requests.
//
// @Summary Liveness probe
// @Tags health
// @Success 200
// @Router /healthz [get]
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}
