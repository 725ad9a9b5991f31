package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"isstracker/internal/models"

	"gorm.io/gorm"
)

type LaunchRepository interface {
	Repository[models.Launch]

	GetByExternalID(ctx context.Context, externalID string) (*models.Launch, error)
	GetUpcoming(ctx context.Context, now time.Time, limit int) ([]models.Launch, error)
	BulkUpsert(ctx context.Context, launches []*models.Launch, now time.Time) (created, updated int, err error)
	SetFavorite(ctx context.Context, externalID string, favorite bool) (*models.Launch, error)
}

type launchRepository struct {
	Repository[models.Launch]
	db *gorm.DB
}

func NewLaunchRepository(db *gorm.DB) LaunchRepository {
	return &launchRepository{
		Repository: NewRepository[models.Launch](db),
		db:         db,
	}
}

func (r *launchRepository) GetByExternalID(ctx context.Context, externalID string) (*models.Launch, error) {
	var launch models.Launch
	err := r.db.WithContext(ctx).
		Where("external_id = ?", externalID).
		First(&launch).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &launch, nil
}

// GetUpcoming - запуски без даты или с датой позже now, без даты в конце
func (r *launchRepository) GetUpcoming(ctx context.Context, now time.Time, limit int) ([]models.Launch, error) {
	var launches []models.Launch
	query := r.db.WithContext(ctx).
		Where("launch_date IS NULL OR launch_date > ?", now.UTC()).
		Order("launch_date IS NULL, launch_date ASC, id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&launches).Error
	return launches, err
}

// BulkUpsert сливает записи по external_id в одной транзакции.
// У существующих строк сохраняются id, created_at и is_favorite.
func (r *launchRepository) BulkUpsert(ctx context.Context, launches []*models.Launch, now time.Time) (int, int, error) {
	var created, updated int

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, launch := range launches {
			if launch.ExternalID == "" {
				continue
			}

			var existing models.Launch
			err := tx.Where("external_id = ?", launch.ExternalID).First(&existing).Error

			if errors.Is(err, gorm.ErrRecordNotFound) {
				launch.ID = 0
				launch.IsFavorite = false
				launch.CreatedAt = now
				launch.UpdatedAt = now
				if err := tx.Create(launch).Error; err != nil {
					return fmt.Errorf("insert launch %s: %w", launch.ExternalID, err)
				}
				created++
			} else if err == nil {
				existing.ApplyRemote(launch, now)
				if err := tx.Save(&existing).Error; err != nil {
					return fmt.Errorf("update launch %s: %w", launch.ExternalID, err)
				}
				updated++
			} else {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}

	return created, updated, nil
}

// SetFavorite возвращает nil без ошибки, если запуска нет
func (r *launchRepository) SetFavorite(ctx context.Context, externalID string, favorite bool) (*models.Launch, error) {
	launch, err := r.GetByExternalID(ctx, externalID)
	if err != nil || launch == nil {
		return nil, err
	}

	err = r.db.WithContext(ctx).
		Model(launch).
		Update("is_favorite", favorite).
		Error
	if err != nil {
		return nil, err
	}

	launch.IsFavorite = favorite
	return launch, nil
}
