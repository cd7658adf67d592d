package handler

import (
	"github.com/gofiber/fiber/v2"

	"helloapi/internal/health"
)

// RegisterRoutes attaches the application routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, checkers ...health.Checker) {
	app.Get("/", Index())
	app.Get("/health", HealthCheck(checkers...))
	app.Get("/healthz", LivenessProbe())
}
