package repositories

import (
	"context"

	"catsofasia/domain/models"
)

type LocationRepository interface {
	// GetOrCreate returns the Location for (city, country), creating it
	// with the given tzoffset if it does not exist yet. The tzoffset of
	// an existing row is left untouched.
	GetOrCreate(ctx context.Context, city, country string, tzoffset int) (*models.Location, error)

	GetByID(ctx context.Context, id uint) (*models.Location, error)
}
