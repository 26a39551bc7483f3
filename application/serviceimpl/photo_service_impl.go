package serviceimpl

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"catsofasia/domain/dto"
	"catsofasia/domain/models"
	"catsofasia/domain/repositories"
	"catsofasia/domain/services"
	"catsofasia/pkg/geo"
	"catsofasia/pkg/logger"
)

// ImageURLBuilder constructs CDN delivery URLs for stored photos.
type ImageURLBuilder interface {
	DeliveryURL(photoID uuid.UUID, variant string) string
	DeliveryURLs(photoID uuid.UUID) map[string]string
}

type photoService struct {
	photoRepo    repositories.PhotoRepository
	coordsRepo   repositories.CoordinatesRepository
	locationRepo repositories.LocationRepository
	images       ImageURLBuilder
	validate     *validator.Validate
}

func NewPhotoService(
	photoRepo repositories.PhotoRepository,
	coordsRepo repositories.CoordinatesRepository,
	locationRepo repositories.LocationRepository,
	images ImageURLBuilder,
) services.PhotoService {
	return &photoService{
		photoRepo:    photoRepo,
		coordsRepo:   coordsRepo,
		locationRepo: locationRepo,
		images:       images,
		validate:     validator.New(),
	}
}

// AddPhoto ingests one photo. The write order is location, then
// coordinates, then photo with raw metadata; each step reuses an
// existing row when one matches. A duplicate content hash aborts the
// whole ingest before any image state is touched.
func (s *photoService) AddPhoto(ctx context.Context, input dto.AddPhotoInput) (*dto.AddPhotoResult, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", services.ErrInvalidInput, err.Error())
	}

	sha := strings.ToLower(input.SHA256)

	exists, err := s.photoRepo.ExistsBySHA256(ctx, sha)
	if err != nil {
		return nil, fmt.Errorf("failed to check for duplicate: %w", err)
	}
	if exists {
		logger.Ingest("add_photo_duplicate", "rejected duplicate content hash", map[string]interface{}{
			"sha256":   sha,
			"filename": input.Filename,
		})
		return nil, services.ErrPhotoExists
	}

	coords, err := s.coordsRepo.FindByPosition(ctx, input.Latitude, input.Longitude)
	if err != nil {
		return nil, fmt.Errorf("failed to look up coordinates: %w", err)
	}
	if coords == nil {
		location, err := s.locationRepo.GetOrCreate(ctx, input.City, input.Country, *input.TZOffset)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve location: %w", err)
		}

		coords = &models.Coordinates{
			Latitude:   input.Latitude,
			Longitude:  input.Longitude,
			Altitude:   input.Altitude,
			LocationID: location.ID,
			Location:   *location,
		}
		if err := s.coordsRepo.Create(ctx, coords); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, services.ErrCoordinatesConflict
			}
			return nil, fmt.Errorf("failed to create coordinates: %w", err)
		}
	}

	photoID, err := uuid.Parse(input.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: id is not a valid uuid", services.ErrInvalidInput)
	}

	photo := &models.Photo{
		ID:            photoID,
		Filename:      input.Filename,
		SHA256:        sha,
		Timestamp:     input.Timestamp,
		CoordinatesID: &coords.ID,
	}
	if err := s.photoRepo.Create(ctx, photo, datatypes.JSON(input.Raw)); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, services.ErrPhotoExists
		}
		return nil, fmt.Errorf("failed to create photo: %w", err)
	}

	logger.Ingest("add_photo", "photo ingested", map[string]interface{}{
		"id":       photo.ID.String(),
		"sha256":   sha,
		"filename": input.Filename,
		"city":     input.City,
		"country":  input.Country,
	})

	return &dto.AddPhotoResult{ID: photo.ID.String(), Success: true}, nil
}

func (s *photoService) Exists(ctx context.Context, sha256 string) (bool, error) {
	return s.photoRepo.ExistsBySHA256(ctx, strings.ToLower(sha256))
}

func (s *photoService) ListAll(ctx context.Context) ([]dto.PhotoView, error) {
	photos, err := s.photoRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list photos: %w", err)
	}

	views := make([]dto.PhotoView, 0, len(photos))
	for _, photo := range photos {
		views = append(views, s.toView(photo))
	}
	return views, nil
}

// FindNear filters and orders in memory rather than in SQL so the
// distance math stays portable across databases.
func (s *photoService) FindNear(ctx context.Context, latitude, longitude float64, limit int, maxDistanceKm float64) ([]dto.NearbyPhoto, error) {
	photos, err := s.photoRepo.ListWithCoordinates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list photos: %w", err)
	}

	nearby := make([]dto.NearbyPhoto, 0)
	for _, photo := range photos {
		distance := geo.DistanceKm(latitude, longitude, photo.Coordinates.Latitude, photo.Coordinates.Longitude)
		if distance > maxDistanceKm {
			continue
		}
		nearby = append(nearby, dto.NearbyPhoto{
			PhotoView:  s.toView(photo),
			DistanceKm: distance,
		})
	}

	sort.Slice(nearby, func(i, j int) bool {
		return nearby[i].DistanceKm < nearby[j].DistanceKm
	})

	if limit > 0 && len(nearby) > limit {
		nearby = nearby[:limit]
	}
	return nearby, nil
}

func (s *photoService) toView(photo models.Photo) dto.PhotoView {
	view := dto.PhotoView{
		ID:        photo.ID.String(),
		SHA256:    photo.SHA256,
		Timestamp: photo.Timestamp.Format(time.RFC3339),
		URLs:      s.images.DeliveryURLs(photo.ID),
	}
	if photo.Coordinates != nil {
		view.Latitude = photo.Coordinates.Latitude
		view.Longitude = photo.Coordinates.Longitude
		view.City = photo.Coordinates.Location.City
		view.Country = photo.Coordinates.Location.Country
	}
	return view
}
