package repositories

import (
	"context"

	"catsofasia/domain/models"
)

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	CountByPlatform(ctx context.Context, platformID uint) (int64, error)
}
