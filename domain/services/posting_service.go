package services

import (
	"context"
	"errors"

	"catsofasia/domain/models"
)

// Custom errors for the posting flow
var (
	// ErrNoContentRemaining is the exhaustion error: every photo has
	// already been posted to the platform.
	ErrNoContentRemaining = errors.New("ran out of content")

	ErrPlatformNotFound = errors.New("platform not found")
)

// PostingService picks unused photos and publishes them to a social
// platform.
type PostingService interface {
	// PickUnused selects one photo uniformly at random among photos not
	// yet posted to the platform. Returns ErrNoContentRemaining when
	// the candidate set is empty.
	PickUnused(ctx context.Context, platformName string) (*models.Photo, error)

	// PostRandomUnused runs the full flow: pick, download the binary
	// from the CDN, upload it as media, create the status and record
	// the Post row.
	PostRandomUnused(ctx context.Context, platformName string) error
}
