package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"isstracker/internal/cache"
	"isstracker/internal/clients"
	"isstracker/internal/logger"
	"isstracker/internal/metrics"
	"isstracker/internal/models"
	"isstracker/internal/repository"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/singleflight"
)

const upcomingLaunchesKeyPrefix = "upcoming_launches_"

// Размеры списков, которые запрашивает фронтенд по умолчанию
var defaultListLimits = []int{5, 10, 50}

type LaunchService interface {
	// SyncLaunchesToDatabase не паникует и не возвращает ошибок: итог в SyncResult
	SyncLaunchesToDatabase(ctx context.Context) models.SyncResult
	// GetUpcomingLaunches на пустой базе сначала синхронно выполняет синхронизацию
	GetUpcomingLaunches(ctx context.Context, limit int) []models.LaunchDTO
	GetLaunchDetails(ctx context.Context, externalID string) *models.LaunchDTO
	SetFavorite(ctx context.Context, externalID string, favorite bool) (*models.LaunchDTO, error)
}

type LaunchConfig struct {
	PageSize int
	CacheTTL time.Duration
}

type launchService struct {
	repo   repository.LaunchRepository
	client clients.LaunchLibraryClient
	cache  cache.Cache
	clock  clockwork.Clock
	log    logger.Logger
	config LaunchConfig

	coldStart   singleflight.Group
	knownLimits sync.Map // int -> struct{}

	// растет при каждой инвалидации списков; список, прочитанный до
	// инвалидации, обратно в кэш не пишется
	listGeneration atomic.Uint64
}

func NewLaunchService(
	repo repository.LaunchRepository,
	client clients.LaunchLibraryClient,
	cache cache.Cache,
	clock clockwork.Clock,
	log logger.Logger,
	config LaunchConfig,
) LaunchService {
	if config.PageSize <= 0 {
		config.PageSize = 50
	}

	s := &launchService{
		repo:   repo,
		client: client,
		cache:  cache,
		clock:  clock,
		log:    log,
		config: config,
	}
	for _, limit := range defaultListLimits {
		s.knownLimits.Store(limit, struct{}{})
	}
	return s
}

func upcomingLaunchesKey(limit int) string {
	return fmt.Sprintf("%s%d", upcomingLaunchesKeyPrefix, limit)
}

func (s *launchService) SyncLaunchesToDatabase(ctx context.Context) models.SyncResult {
	result := models.SyncResult{StartedAt: s.clock.Now().UTC()}

	s.log.Info("Starting launch sync from Launch Library API", logger.Int("page_size", s.config.PageSize))

	created, updated, err := s.sync(ctx, &result)
	result.FinishedAt = s.clock.Now().UTC()

	if err != nil {
		result.Error = err.Error()
		metrics.LaunchSyncRuns.WithLabelValues("failure").Inc()
		s.log.Error("Launch sync failed", logger.Error(err))
		return result
	}

	result.Created = created
	result.Updated = updated
	metrics.LaunchSyncRuns.WithLabelValues("success").Inc()
	metrics.LaunchSyncRecords.WithLabelValues("created").Add(float64(created))
	metrics.LaunchSyncRecords.WithLabelValues("updated").Add(float64(updated))
	metrics.LaunchSyncRecords.WithLabelValues("skipped").Add(float64(result.Skipped))

	s.invalidateLists(ctx)

	s.log.Info("Launch sync completed",
		logger.Int("fetched", result.Fetched),
		logger.Int("created", created),
		logger.Int("updated", updated),
		logger.Int("skipped", result.Skipped),
		logger.Duration("took", result.FinishedAt.Sub(result.StartedAt)),
	)
	return result
}

func (s *launchService) sync(ctx context.Context, result *models.SyncResult) (int, int, error) {
	records, err := s.client.FetchUpcoming(ctx, s.config.PageSize)
	if err != nil {
		return 0, 0, err
	}
	result.Fetched = len(records)

	launches := make([]*models.Launch, 0, len(records))
	for _, record := range records {
		launch, ok := ParseLaunch(record)
		if !ok {
			result.Skipped++
			continue
		}
		launches = append(launches, launch)
	}

	created, updated, err := s.repo.BulkUpsert(ctx, launches, s.clock.Now().UTC())
	if err != nil {
		return 0, 0, fmt.Errorf("persist launches: %w", err)
	}
	return created, updated, nil
}

// invalidateLists сбрасывает все закэшированные размеры списка
func (s *launchService) invalidateLists(ctx context.Context) {
	s.listGeneration.Add(1)

	var keys []string
	s.knownLimits.Range(func(k, _ interface{}) bool {
		keys = append(keys, upcomingLaunchesKey(k.(int)))
		return true
	})
	sort.Strings(keys)

	if err := s.cache.Delete(ctx, keys...); err != nil {
		s.log.Warn("Failed to invalidate launch lists", logger.Error(err))
	}
}

func (s *launchService) GetUpcomingLaunches(ctx context.Context, limit int) []models.LaunchDTO {
	s.knownLimits.Store(limit, struct{}{})
	cacheKey := upcomingLaunchesKey(limit)

	var cached []models.LaunchDTO
	found, err := s.cache.GetJSON(ctx, cacheKey, &cached)
	if err != nil {
		s.log.Warn("Cache read failed", logger.String("key", cacheKey), logger.Error(err))
	}
	if found {
		// Отсчет всегда считаем заново, в кэше он устаревает
		now := s.clock.Now().UTC()
		for i := range cached {
			cached[i].TimeUntilLaunch = FormatCountdown(cached[i].LaunchDate, now)
		}
		return cached
	}

	generation := s.listGeneration.Load()
	launches, err := s.repo.GetUpcoming(ctx, s.clock.Now(), limit)
	if err != nil {
		s.log.Error("Failed to load upcoming launches", logger.Error(err))
		return []models.LaunchDTO{}
	}

	if len(launches) == 0 {
		// Пустая база: одна синхронизация на все одновременные запросы
		// Отмена запроса первого вызывающего не должна обрывать общий проход
		_, _, _ = s.coldStart.Do("sync", func() (interface{}, error) {
			return s.SyncLaunchesToDatabase(context.WithoutCancel(ctx)), nil
		})

		generation = s.listGeneration.Load()
		launches, err = s.repo.GetUpcoming(ctx, s.clock.Now(), limit)
		if err != nil {
			s.log.Error("Failed to load upcoming launches", logger.Error(err))
			return []models.LaunchDTO{}
		}
	}

	dtos := s.toDTOs(launches)
	if len(dtos) > 0 && s.listGeneration.Load() == generation {
		if err := s.cache.SetJSON(ctx, cacheKey, dtos, s.config.CacheTTL); err != nil {
			s.log.Warn("Cache write failed", logger.String("key", cacheKey), logger.Error(err))
		}
	}

	return dtos
}

func (s *launchService) GetLaunchDetails(ctx context.Context, externalID string) *models.LaunchDTO {
	launch, err := s.repo.GetByExternalID(ctx, externalID)
	if err != nil {
		s.log.Error("Failed to load launch", logger.String("id", externalID), logger.Error(err))
		return nil
	}
	if launch != nil {
		dto := s.toDTO(launch, s.clock.Now().UTC())
		return &dto
	}

	data, err := s.client.FetchLaunch(ctx, externalID)
	if err != nil {
		if !errors.Is(err, clients.ErrLaunchNotFound) {
			s.log.Error("Error fetching launch details", logger.String("id", externalID), logger.Error(err))
		}
		return nil
	}

	launch, ok := ParseLaunch(data)
	if !ok {
		s.log.Warn("Launch details could not be parsed", logger.String("id", externalID))
		return nil
	}

	if _, _, err := s.repo.BulkUpsert(ctx, []*models.Launch{launch}, s.clock.Now().UTC()); err != nil {
		s.log.Error("Failed to store fetched launch", logger.String("id", externalID), logger.Error(err))
		return nil
	}

	stored, err := s.repo.GetByExternalID(ctx, launch.ExternalID)
	if err == nil && stored != nil {
		launch = stored
	}

	dto := s.toDTO(launch, s.clock.Now().UTC())
	return &dto
}

func (s *launchService) SetFavorite(ctx context.Context, externalID string, favorite bool) (*models.LaunchDTO, error) {
	launch, err := s.repo.SetFavorite(ctx, externalID, favorite)
	if err != nil {
		return nil, fmt.Errorf("set favorite %s: %w", externalID, err)
	}
	if launch == nil {
		return nil, nil
	}

	s.invalidateLists(ctx)

	dto := s.toDTO(launch, s.clock.Now().UTC())
	return &dto, nil
}

func (s *launchService) toDTOs(launches []models.Launch) []models.LaunchDTO {
	now := s.clock.Now().UTC()
	dtos := make([]models.LaunchDTO, 0, len(launches))
	for i := range launches {
		dtos = append(dtos, s.toDTO(&launches[i], now))
	}
	return dtos
}

func (s *launchService) toDTO(launch *models.Launch, now time.Time) models.LaunchDTO {
	return models.LaunchDTO{
		ID:                 launch.ID,
		ExternalID:         launch.ExternalID,
		Name:               launch.Name,
		LaunchDate:         launch.LaunchDate,
		Status:             launch.Status,
		RocketName:         launch.RocketName,
		Provider:           launch.Provider,
		MissionDescription: launch.MissionDescription,
		ImageURL:           launch.ImageURL,
		VideoURL:           launch.VideoURL,
		LaunchSite:         launch.LaunchSite,
		TimeUntilLaunch:    FormatCountdown(launch.LaunchDate, now),
		IsFavorite:         launch.IsFavorite,
	}
}
