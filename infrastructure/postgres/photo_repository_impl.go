package postgres

import (
	"context"
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"catsofasia/domain/models"
	"catsofasia/domain/repositories"
)

type PhotoRepositoryImpl struct {
	db *gorm.DB
}

func NewPhotoRepository(db *gorm.DB) repositories.PhotoRepository {
	return &PhotoRepositoryImpl{db: db}
}

func (r *PhotoRepositoryImpl) Create(ctx context.Context, photo *models.Photo, raw datatypes.JSON) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(photo).Error; err != nil {
			return err
		}

		meta := models.RawMetadata{
			Metadata:    raw,
			PhotoSHA256: photo.SHA256,
		}
		return tx.Create(&meta).Error
	})
}

func (r *PhotoRepositoryImpl) ExistsBySHA256(ctx context.Context, sha256 string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Photo{}).
		Where("sha256 = ?", sha256).
		Count(&count).Error
	return count > 0, err
}

func (r *PhotoRepositoryImpl) GetBySHA256(ctx context.Context, sha256 string) (*models.Photo, error) {
	var photo models.Photo
	err := r.db.WithContext(ctx).
		Preload("Coordinates.Location").
		Where("sha256 = ?", sha256).
		First(&photo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &photo, nil
}

func (r *PhotoRepositoryImpl) ListAll(ctx context.Context) ([]models.Photo, error) {
	var photos []models.Photo
	err := r.db.WithContext(ctx).
		Preload("Coordinates.Location").
		Order("timestamp DESC").
		Find(&photos).Error
	return photos, err
}

func (r *PhotoRepositoryImpl) ListWithCoordinates(ctx context.Context) ([]models.Photo, error) {
	var photos []models.Photo
	err := r.db.WithContext(ctx).
		Preload("Coordinates.Location").
		Where("coordinates_id IS NOT NULL").
		Find(&photos).Error
	return photos, err
}

func (r *PhotoRepositoryImpl) ListUnposted(ctx context.Context, platformID uint) ([]models.Photo, error) {
	var photos []models.Photo
	err := r.db.WithContext(ctx).
		Preload("Coordinates.Location").
		Where("sha256 NOT IN (?)",
			r.db.Model(&models.Post{}).
				Select("photo_sha256").
				Where("platform_id = ?", platformID),
		).
		Find(&photos).Error
	return photos, err
}

func (r *PhotoRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Photo{}).Count(&count).Error
	return count, err
}
