package repository

import (
	"context"
	"errors"

	"isstracker/internal/models"

	"gorm.io/gorm"
)

type SatelliteRepository interface {
	Repository[models.Satellite]

	GetByNoradID(ctx context.Context, noradID int) (*models.Satellite, error)
	List(ctx context.Context) ([]models.Satellite, error)
}

type satelliteRepository struct {
	Repository[models.Satellite]
	db *gorm.DB
}

func NewSatelliteRepository(db *gorm.DB) SatelliteRepository {
	return &satelliteRepository{
		Repository: NewRepository[models.Satellite](db),
		db:         db,
	}
}

func (r *satelliteRepository) GetByNoradID(ctx context.Context, noradID int) (*models.Satellite, error) {
	var satellite models.Satellite
	err := r.db.WithContext(ctx).First(&satellite, "norad_id = ?", noradID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &satellite, nil
}

func (r *satelliteRepository) List(ctx context.Context) ([]models.Satellite, error) {
	return r.GetAll(ctx)
}
