package postgres

import (
	"context"

	"gorm.io/gorm"

	"catsofasia/domain/models"
	"catsofasia/domain/repositories"
)

type LocationRepositoryImpl struct {
	db *gorm.DB
}

func NewLocationRepository(db *gorm.DB) repositories.LocationRepository {
	return &LocationRepositoryImpl{db: db}
}

// GetOrCreate matches on (city, country) only: the
// tzoffset is fixed by whichever ingestion creates the pair first and
// differing offsets on later ingests are ignored.
func (r *LocationRepositoryImpl) GetOrCreate(ctx context.Context, city, country string, tzoffset int) (*models.Location, error) {
	location := models.Location{City: city, Country: country}
	err := r.db.WithContext(ctx).
		Where(models.Location{City: city, Country: country}).
		Attrs(models.Location{TZOffset: tzoffset}).
		FirstOrCreate(&location).Error
	if err != nil {
		return nil, err
	}
	return &location, nil
}

func (r *LocationRepositoryImpl) GetByID(ctx context.Context, id uint) (*models.Location, error) {
	var location models.Location
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&location).Error
	if err != nil {
		return nil, err
	}
	return &location, nil
}
