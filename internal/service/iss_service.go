package service

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"isstracker/internal/cache"
	"isstracker/internal/clients"
	"isstracker/internal/logger"
	"isstracker/internal/models"

	"github.com/jonboulle/clockwork"
)

const (
	positionCacheKey = "iss_position"
	peopleCacheKey   = "people_in_space"

	// Выше этой широты МКС не видна
	maxVisibleLatitude = 55.0
)

type ISSService interface {
	// GetCurrentPosition возвращает nil, если источник недоступен
	GetCurrentPosition(ctx context.Context) *models.ISSPosition
	GetUpcomingFlyovers(ctx context.Context, lat, lon float64, passes int) []models.Flyover
	GetPeopleInSpace(ctx context.Context) int
}

type ISSConfig struct {
	PositionTTL time.Duration
	FlyoverTTL  time.Duration
	PeopleTTL   time.Duration
}

type issService struct {
	issClient    clients.ISSClient
	peopleClient clients.PeopleClient
	cache        cache.Cache
	clock        clockwork.Clock
	log          logger.Logger
	config       ISSConfig
}

func NewISSService(
	issClient clients.ISSClient,
	peopleClient clients.PeopleClient,
	cache cache.Cache,
	clock clockwork.Clock,
	log logger.Logger,
	config ISSConfig,
) ISSService {
	return &issService{
		issClient:    issClient,
		peopleClient: peopleClient,
		cache:        cache,
		clock:        clock,
		log:          log,
		config:       config,
	}
}

func (s *issService) GetCurrentPosition(ctx context.Context) *models.ISSPosition {
	var cached models.ISSPosition
	if s.readCache(ctx, positionCacheKey, &cached) {
		return &cached
	}

	data, err := s.issClient.GetPosition(ctx)
	if err != nil {
		s.log.Error("Failed to fetch ISS position", logger.Error(err))
		return nil
	}

	position, err := parsePosition(data)
	if err != nil {
		s.log.Error("Failed to parse ISS position", logger.Error(err))
		return nil
	}

	s.writeCache(ctx, positionCacheKey, position, s.config.PositionTTL)
	return position
}

func parsePosition(data map[string]interface{}) (*models.ISSPosition, error) {
	position := &models.ISSPosition{Visibility: "unknown"}

	fields := []struct {
		key  string
		dest *float64
	}{
		{"latitude", &position.Latitude},
		{"longitude", &position.Longitude},
		{"altitude", &position.Altitude},
		{"velocity", &position.Velocity},
	}
	for _, f := range fields {
		v, ok := extractFloat(data, f.key)
		if !ok {
			return nil, fmt.Errorf("field %q is missing or not a number", f.key)
		}
		*f.dest = v
	}

	timestamp, ok := extractInt(data, "timestamp")
	if !ok {
		return nil, fmt.Errorf("field %q is missing or not an integer", "timestamp")
	}
	position.Timestamp = time.Unix(timestamp, 0).UTC()

	if visibility, ok := extractString(data, "visibility"); ok {
		position.Visibility = visibility
	}

	return position, nil
}

// GetUpcomingFlyovers - грубая оценка пролетов, не орбитальная механика.
// Для одних и тех же координат результат детерминирован относительно now.
func (s *issService) GetUpcomingFlyovers(ctx context.Context, lat, lon float64, passes int) []models.Flyover {
	if math.Abs(lat) > maxVisibleLatitude || passes <= 0 {
		return []models.Flyover{}
	}

	cacheKey := fmt.Sprintf("flyovers_%.4f_%.4f_%d", lat, lon, passes)

	var cached []models.Flyover
	if s.readCache(ctx, cacheKey, &cached) {
		return cached
	}

	if s.GetCurrentPosition(ctx) == nil {
		s.log.Warn("ISS position unavailable, skipping flyover estimate",
			logger.Float64("lat", lat),
			logger.Float64("lon", lon),
		)
		return []models.Flyover{}
	}

	flyovers := generateFlyovers(lat, lon, passes, s.clock.Now().UTC())

	s.writeCache(ctx, cacheKey, flyovers, s.config.FlyoverTTL)
	return flyovers
}

func generateFlyovers(lat, lon float64, passes int, now time.Time) []models.Flyover {
	// Разные координаты могут дать одно и то же зерно
	seed := int64(int32(lat*1000 + lon*100))
	rng := rand.New(rand.NewSource(seed))

	flyovers := make([]models.Flyover, 0, passes)
	for i := 0; i < passes; i++ {
		rise := now.Add(time.Duration(6+i*18+rng.Intn(12)) * time.Hour)
		duration := 180 + 60 + rng.Intn(300)
		elevation := 15 + rng.Intn(70)

		flyovers = append(flyovers, models.Flyover{
			RiseTime:            rise,
			SetTime:             rise.Add(time.Duration(duration) * time.Second),
			DurationSeconds:     duration,
			MaxElevationDegrees: float64(elevation),
		})
	}

	return flyovers
}

func (s *issService) GetPeopleInSpace(ctx context.Context) int {
	var cached int
	if s.readCache(ctx, peopleCacheKey, &cached) {
		return cached
	}

	data, err := s.peopleClient.GetAstros(ctx)
	if err != nil {
		s.log.Error("Failed to fetch people in space", logger.Error(err))
		return 0
	}

	number, ok := extractInt(data, "number")
	if !ok {
		s.log.Error("Astros response has no integer number field")
		return 0
	}

	s.writeCache(ctx, peopleCacheKey, int(number), s.config.PeopleTTL)
	return int(number)
}

func (s *issService) readCache(ctx context.Context, key string, dest interface{}) bool {
	found, err := s.cache.GetJSON(ctx, key, dest)
	if err != nil {
		s.log.Warn("Cache read failed", logger.String("key", key), logger.Error(err))
		return false
	}
	return found
}

func (s *issService) writeCache(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if err := s.cache.SetJSON(ctx, key, value, ttl); err != nil {
		s.log.Warn("Cache write failed", logger.String("key", key), logger.Error(err))
	}
}
