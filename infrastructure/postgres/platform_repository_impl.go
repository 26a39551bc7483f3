package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"catsofasia/domain/models"
	"catsofasia/domain/repositories"
)

type PlatformRepositoryImpl struct {
	db *gorm.DB
}

func NewPlatformRepository(db *gorm.DB) repositories.PlatformRepository {
	return &PlatformRepositoryImpl{db: db}
}

func (r *PlatformRepositoryImpl) GetByName(ctx context.Context, name string) (*models.Platform, error) {
	var platform models.Platform
	err := r.db.WithContext(ctx).
		Where("LOWER(name) = LOWER(?)", name).
		First(&platform).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &platform, nil
}

func (r *PlatformRepositoryImpl) Ensure(ctx context.Context, name, profileURL string) (*models.Platform, error) {
	platform := models.Platform{Name: name}
	err := r.db.WithContext(ctx).
		Where(models.Platform{Name: name}).
		Attrs(models.Platform{ProfileURL: profileURL}).
		FirstOrCreate(&platform).Error
	if err != nil {
		return nil, err
	}
	return &platform, nil
}
