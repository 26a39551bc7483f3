package repositories

import (
	"context"

	"catsofasia/domain/models"
)

type UserRepository interface {
	// GetByUsername returns (nil, nil) when no row matches.
	GetByUsername(ctx context.Context, username string) (*models.User, error)

	Create(ctx context.Context, user *models.User) error
}
