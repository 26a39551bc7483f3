package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"catsofasia/domain/models"
	"catsofasia/domain/repositories"
)

type CoordinatesRepositoryImpl struct {
	db *gorm.DB
}

func NewCoordinatesRepository(db *gorm.DB) repositories.CoordinatesRepository {
	return &CoordinatesRepositoryImpl{db: db}
}

func (r *CoordinatesRepositoryImpl) FindByPosition(ctx context.Context, latitude, longitude float64) (*models.Coordinates, error) {
	var coords models.Coordinates
	err := r.db.WithContext(ctx).
		Preload("Location").
		Where("latitude = ? AND longitude = ?", latitude, longitude).
		First(&coords).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &coords, nil
}

func (r *CoordinatesRepositoryImpl) Create(ctx context.Context, coords *models.Coordinates) error {
	return r.db.WithContext(ctx).Create(coords).Error
}
