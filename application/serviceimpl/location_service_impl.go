package serviceimpl

import (
	"context"
	"fmt"
	"slices"
	"sort"

	"catsofasia/domain/dto"
	"catsofasia/domain/repositories"
	"catsofasia/domain/services"
	"catsofasia/pkg/logger"
)

type locationService struct {
	coordsRepo repositories.CoordinatesRepository
	geocoder   services.Geocoder
}

func NewLocationService(coordsRepo repositories.CoordinatesRepository, geocoder services.Geocoder) services.LocationService {
	return &locationService{
		coordsRepo: coordsRepo,
		geocoder:   geocoder,
	}
}

// Resolve looks for previously ingested coordinates first; only a miss
// hits the external geocoder. The cache lookup uses exact equality:
// photos from the same burst carry bit-identical EXIF coordinates,
// anything else gets a fresh lookup.
func (s *locationService) Resolve(ctx context.Context, latitude, longitude float64) (*dto.LocationResolution, error) {
	coords, err := s.coordsRepo.FindByPosition(ctx, latitude, longitude)
	if err != nil {
		return nil, fmt.Errorf("failed to look up coordinates: %w", err)
	}
	if coords != nil {
		logger.Geocode("resolve_cached", "resolved from known coordinates", map[string]interface{}{
			"latitude":  latitude,
			"longitude": longitude,
			"city":      coords.Location.City,
			"country":   coords.Location.Country,
		})
		return &dto.LocationResolution{
			City:    coords.Location.City,
			Country: coords.Location.Country,
		}, nil
	}

	components, err := s.geocoder.ReverseGeocode(ctx, latitude, longitude)
	if err != nil {
		logger.GeocodeError("resolve_geocode", "reverse geocoding failed", err, map[string]interface{}{
			"latitude":  latitude,
			"longitude": longitude,
		})
		return nil, fmt.Errorf("failed to reverse geocode: %w", err)
	}

	resolution := &dto.LocationResolution{}
	candidates := make(map[string]struct{})

	// A component may carry both a country tag and a locality tag, so
	// both checks run on every component.
	for _, component := range components {
		if resolution.Country == "" && slices.Contains(component.Types, "country") {
			resolution.Country = component.LongName
		}
		for _, typ := range component.Types {
			if slices.Contains(services.CityCandidateTypes, typ) {
				candidates[component.LongName] = struct{}{}
				break
			}
		}
	}

	names := make([]string, 0, len(candidates))
	for name := range candidates {
		names = append(names, name)
	}
	sort.Strings(names)

	// A single candidate is unambiguous and doubles as the city.
	if len(names) == 1 {
		resolution.City = names[0]
	}
	resolution.CityCandidates = names

	logger.Geocode("resolve_geocode", "resolved via geocoding API", map[string]interface{}{
		"latitude":   latitude,
		"longitude":  longitude,
		"country":    resolution.Country,
		"candidates": len(names),
	})

	return resolution, nil
}
