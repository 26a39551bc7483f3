package routes

import (
	"github.com/gofiber/fiber/v2"

	"catsofasia/interfaces/api/handlers"
	"catsofasia/pkg/config"
)

func SetupRoutes(app *fiber.App, h *handlers.Handlers, cfg *config.Config) {
	// Setup health and root routes
	SetupHealthRoutes(app, h)

	// API version group
	api := app.Group("/api/v1")

	// Setup all route groups
	SetupAuthRoutes(api, h, cfg)
	SetupPhotoRoutes(api, h)
	SetupRPCRoutes(api, h, cfg)
	SetupLogRoutes(api, h)
}
