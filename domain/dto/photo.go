package dto

import (
	"encoding/json"
	"time"
)

// AddPhotoInput is the typed ingestion payload. Every field is
// validated before any database write.
type AddPhotoInput struct {
	ID        string          `json:"id" validate:"required,uuid"`
	Filename  string          `json:"filename" validate:"required,max=255"`
	SHA256    string          `json:"sha256" validate:"required,len=64,hexadecimal"`
	Latitude  float64         `json:"latitude" validate:"min=-90,max=90"`
	Longitude float64         `json:"longitude" validate:"min=-180,max=180"`
	Altitude  float64         `json:"altitude"`
	City      string          `json:"city" validate:"required"`
	Country   string          `json:"country" validate:"required"`
	TZOffset  *int            `json:"tzoffset" validate:"required"` // minutes east of UTC
	Timestamp time.Time       `json:"timestamp" validate:"required"`
	Raw       json.RawMessage `json:"raw" validate:"required"`
}

// AddPhotoResult is returned to the uploader after a successful ingest.
type AddPhotoResult struct {
	ID      string `json:"id"`
	Success bool   `json:"success"`
}

// PhotoView is the map/favorites payload for a single photo, including
// the CDN delivery URLs per variant.
type PhotoView struct {
	ID        string            `json:"id"`
	SHA256    string            `json:"sha256"`
	Timestamp string            `json:"timestamp"`
	Latitude  float64           `json:"latitude"`
	Longitude float64           `json:"longitude"`
	City      string            `json:"city"`
	Country   string            `json:"country"`
	URLs      map[string]string `json:"urls"`
}

// NearbyPhoto is a PhotoView annotated with the great-circle distance
// from the query point.
type NearbyPhoto struct {
	PhotoView
	DistanceKm float64 `json:"distance_km"`
}
