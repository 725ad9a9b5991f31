package repository

import (
	"context"
	"errors"
	"time"

	"isstracker/internal/models"

	"gorm.io/gorm"
)

type StatisticsRepository interface {
	GetByDate(ctx context.Context, date time.Time) (*models.LaunchStatistics, error)
	Upsert(ctx context.Context, stats *models.LaunchStatistics) error
	GetSince(ctx context.Context, since time.Time) ([]models.LaunchStatistics, error)
}

type statisticsRepository struct {
	db *gorm.DB
}

func NewStatisticsRepository(db *gorm.DB) StatisticsRepository {
	return &statisticsRepository{db: db}
}

// truncateDay отбрасывает время суток (UTC)
func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// GetByDate ищет снимок по календарной дате, время суток игнорируется
func (r *statisticsRepository) GetByDate(ctx context.Context, date time.Time) (*models.LaunchStatistics, error) {
	day := truncateDay(date)

	var stats models.LaunchStatistics
	err := r.db.WithContext(ctx).
		Where("date >= ? AND date < ?", day, day.AddDate(0, 0, 1)).
		First(&stats).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// Upsert перезаписывает снимок за ту же дату или создает новый
func (r *statisticsRepository) Upsert(ctx context.Context, stats *models.LaunchStatistics) error {
	stats.Date = truncateDay(stats.Date)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.LaunchStatistics
		err := tx.Where("date = ?", stats.Date).First(&existing).Error

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Create(stats).Error
		}
		if err != nil {
			return err
		}

		stats.ID = existing.ID
		stats.CreatedAt = existing.CreatedAt
		return tx.Save(stats).Error
	})
}

func (r *statisticsRepository) GetSince(ctx context.Context, since time.Time) ([]models.LaunchStatistics, error) {
	var history []models.LaunchStatistics
	err := r.db.WithContext(ctx).
		Where("date >= ?", truncateDay(since)).
		Order("date DESC").
		Find(&history).
		Error
	return history, err
}
