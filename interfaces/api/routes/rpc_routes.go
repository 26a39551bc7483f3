package routes

import (
	"github.com/gofiber/fiber/v2"

	"catsofasia/interfaces/api/handlers"
	"catsofasia/interfaces/api/middleware"
	"catsofasia/pkg/config"
)

// SetupRPCRoutes mounts the JSON-RPC endpoint. Auth is optional here:
// public methods run anonymously, privileged ones check the user
// context themselves.
func SetupRPCRoutes(api fiber.Router, h *handlers.Handlers, cfg *config.Config) {
	api.Post("/rpc", middleware.Optional(cfg.JWT.Secret), h.RPC.Handle)
}
