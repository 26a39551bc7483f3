package services

import (
	"context"
	"errors"

	"catsofasia/domain/dto"
)

// Custom errors for photo ingestion
var (
	// ErrInvalidInput wraps validation failures on the ingestion payload.
	ErrInvalidInput = errors.New("invalid photo metadata")

	// ErrPhotoExists means a photo with the same content hash was
	// already ingested.
	ErrPhotoExists = errors.New("photo with this content hash already exists")

	// ErrCoordinatesConflict means a concurrent request created the
	// same coordinates first; the caller may retry.
	ErrCoordinatesConflict = errors.New("coordinates were created concurrently, retry the request")
)

// PhotoService covers ingestion, existence checks and the read paths
// used by the map, favorites and near-me views.
type PhotoService interface {
	AddPhoto(ctx context.Context, input dto.AddPhotoInput) (*dto.AddPhotoResult, error)

	Exists(ctx context.Context, sha256 string) (bool, error)

	ListAll(ctx context.Context) ([]dto.PhotoView, error)

	// FindNear returns photos within maxDistanceKm of the query point,
	// ordered by ascending great-circle distance, at most limit rows.
	FindNear(ctx context.Context, latitude, longitude float64, limit int, maxDistanceKm float64) ([]dto.NearbyPhoto, error)
}
