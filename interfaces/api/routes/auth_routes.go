package routes

import (
	"github.com/gofiber/fiber/v2"

	"catsofasia/interfaces/api/handlers"
	"catsofasia/interfaces/api/middleware"
	"catsofasia/pkg/config"
)

func SetupAuthRoutes(api fiber.Router, h *handlers.Handlers, cfg *config.Config) {
	auth := api.Group("/auth")

	auth.Post("/login", middleware.AuthRateLimiter(&cfg.RateLimit), h.Auth.Login)

	// Protected routes
	auth.Get("/csrf", middleware.Protected(cfg.JWT.Secret), h.Auth.CSRFToken)
}
