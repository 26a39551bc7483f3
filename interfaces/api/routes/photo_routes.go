package routes

import (
	"github.com/gofiber/fiber/v2"

	"catsofasia/interfaces/api/handlers"
)

func SetupPhotoRoutes(api fiber.Router, h *handlers.Handlers) {
	photos := api.Group("/photos")

	photos.Get("/", h.Photo.ListPhotos)
	photos.Get("/nearby", h.Photo.NearbyPhotos)
}
