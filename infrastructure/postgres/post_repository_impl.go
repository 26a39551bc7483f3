package postgres

import (
	"context"

	"gorm.io/gorm"

	"catsofasia/domain/models"
	"catsofasia/domain/repositories"
)

type PostRepositoryImpl struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) repositories.PostRepository {
	return &PostRepositoryImpl{db: db}
}

func (r *PostRepositoryImpl) Create(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *PostRepositoryImpl) CountByPlatform(ctx context.Context, platformID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("platform_id = ?", platformID).
		Count(&count).Error
	return count, err
}
