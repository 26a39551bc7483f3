package repositories

import (
	"context"

	"catsofasia/domain/models"
)

type PlatformRepository interface {
	// GetByName matches the platform name case-insensitively. Returns
	// (nil, nil) when no row matches.
	GetByName(ctx context.Context, name string) (*models.Platform, error)

	// Ensure creates the platform if it does not exist yet. Existing
	// rows are left untouched.
	Ensure(ctx context.Context, name, profileURL string) (*models.Platform, error)
}
