package handlers

import (
	"github.com/gofiber/fiber/v2"

	"catsofasia/domain/services"
	"catsofasia/pkg/utils"
)

// PhotoHandler serves the public read endpoints backing the map and
// near-me views.
type PhotoHandler struct {
	photos services.PhotoService
}

func NewPhotoHandler(photos services.PhotoService) *PhotoHandler {
	return &PhotoHandler{photos: photos}
}

// ListPhotos returns every photo with its coordinates and delivery
// URLs.
func (h *PhotoHandler) ListPhotos(c *fiber.Ctx) error {
	views, err := h.photos.ListAll(c.UserContext())
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list photos", err)
	}
	return utils.SuccessResponse(c, "Photos retrieved successfully", views)
}

// NearbyPhotos returns photos close to the query point, nearest first.
func (h *PhotoHandler) NearbyPhotos(c *fiber.Ctx) error {
	latitude := c.QueryFloat("latitude")
	longitude := c.QueryFloat("longitude")
	if c.Query("latitude") == "" || c.Query("longitude") == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "latitude and longitude are required", nil)
	}
	if latitude < -90 || latitude > 90 || longitude < -180 || longitude > 180 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "latitude or longitude out of range", nil)
	}

	limit := c.QueryInt("limit", 10)
	maxDistanceKm := c.QueryFloat("max_distance_km", 25)

	nearby, err := h.photos.FindNear(c.UserContext(), latitude, longitude, limit, maxDistanceKm)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to search photos", err)
	}
	return utils.SuccessResponse(c, "Nearby photos retrieved successfully", nearby)
}
