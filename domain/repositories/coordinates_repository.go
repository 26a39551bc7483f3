package repositories

import (
	"context"

	"catsofasia/domain/models"
)

type CoordinatesRepository interface {
	// FindByPosition looks up coordinates by exact latitude/longitude
	// equality, with the associated Location preloaded. Returns
	// (nil, nil) when no row matches.
	FindByPosition(ctx context.Context, latitude, longitude float64) (*models.Coordinates, error)

	Create(ctx context.Context, coords *models.Coordinates) error
}
