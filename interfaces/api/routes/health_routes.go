package routes

import (
	"github.com/gofiber/fiber/v2"

	"catsofasia/interfaces/api/handlers"
)

func SetupHealthRoutes(app *fiber.App, h *handlers.Handlers) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"message": "Server is running",
			"service": "Cats of Asia API",
		})
	})

	// Detailed health check (checks all components)
	if h != nil && h.Health != nil {
		app.Get("/health/detailed", h.Health.Health)
	}

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Welcome to the Cats of Asia API",
			"docs":    "/api/v1",
			"health":  "/health",
		})
	})
}
