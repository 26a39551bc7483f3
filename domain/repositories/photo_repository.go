package repositories

import (
	"context"

	"gorm.io/datatypes"

	"catsofasia/domain/models"
)

type PhotoRepository interface {
	// Create inserts the photo and its raw metadata in one transaction.
	Create(ctx context.Context, photo *models.Photo, raw datatypes.JSON) error

	ExistsBySHA256(ctx context.Context, sha256 string) (bool, error)
	GetBySHA256(ctx context.Context, sha256 string) (*models.Photo, error)

	// ListAll returns every photo with Coordinates and Location
	// preloaded, ordered by capture timestamp descending.
	ListAll(ctx context.Context) ([]models.Photo, error)

	// ListWithCoordinates returns only photos that still reference a
	// Coordinates row, preloaded like ListAll.
	ListWithCoordinates(ctx context.Context) ([]models.Photo, error)

	// ListUnposted returns the full candidate set for the unused-photo
	// selector: photos with no Post row for the given platform.
	ListUnposted(ctx context.Context, platformID uint) ([]models.Photo, error)

	Count(ctx context.Context) (int64, error)
}
