package services

import (
	"context"

	"catsofasia/domain/dto"
)

// CityCandidateTypes are the locality-granularity address component
// types a geocoder result may tag a plausible city name with.
var CityCandidateTypes = []string{
	"locality",
	"colloquial_area",
	"administrative_area_level_1",
	"administrative_area_level_2",
	"administrative_area_level_3",
	"administrative_area_level_4",
	"administrative_area_level_5",
}

// AddressComponent is one component of a reverse-geocoding result.
type AddressComponent struct {
	LongName string
	Types    []string
}

// Geocoder resolves a coordinate pair to address components via an
// external geocoding API.
type Geocoder interface {
	ReverseGeocode(ctx context.Context, latitude, longitude float64) ([]AddressComponent, error)
}

// LocationService resolves coordinates to city/country names,
// preferring previously ingested coordinates over external lookups.
type LocationService interface {
	Resolve(ctx context.Context, latitude, longitude float64) (*dto.LocationResolution, error)
}
