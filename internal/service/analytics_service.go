package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"isstracker/internal/cache"
	"isstracker/internal/logger"
	"isstracker/internal/metrics"
	"isstracker/internal/models"
	"isstracker/internal/repository"

	"github.com/goccy/go-json"
	"github.com/jonboulle/clockwork"
	"gorm.io/datatypes"
)

const (
	analyticsCacheKey = "launch_analytics"

	topProviders = 10
	topMonths    = 12
)

type AnalyticsService interface {
	GetCurrentAnalytics(ctx context.Context) *models.LaunchAnalytics
	// GenerateAndSaveStatistics пересчитывает и перезаписывает снимок за сегодня (UTC)
	GenerateAndSaveStatistics(ctx context.Context) *models.LaunchStatistics
	GetStatisticsForDate(ctx context.Context, date time.Time) *models.LaunchStatistics
	GetStatisticsHistory(ctx context.Context, days int) []models.LaunchStatistics
}

type analyticsService struct {
	launches   repository.LaunchRepository
	statistics repository.StatisticsRepository
	cache      cache.Cache
	clock      clockwork.Clock
	log        logger.Logger
	cacheTTL   time.Duration
}

func NewAnalyticsService(
	launches repository.LaunchRepository,
	statistics repository.StatisticsRepository,
	cache cache.Cache,
	clock clockwork.Clock,
	log logger.Logger,
	cacheTTL time.Duration,
) AnalyticsService {
	return &analyticsService{
		launches:   launches,
		statistics: statistics,
		cache:      cache,
		clock:      clock,
		log:        log,
		cacheTTL:   cacheTTL,
	}
}

func (s *analyticsService) GetCurrentAnalytics(ctx context.Context) *models.LaunchAnalytics {
	var cached models.LaunchAnalytics
	found, err := s.cache.GetJSON(ctx, analyticsCacheKey, &cached)
	if err != nil {
		s.log.Warn("Cache read failed", logger.String("key", analyticsCacheKey), logger.Error(err))
	}
	if found {
		return &cached
	}

	analytics, err := s.calculate(ctx)
	if err != nil {
		s.log.Error("Failed to calculate launch analytics", logger.Error(err))
		return nil
	}

	if err := s.cache.SetJSON(ctx, analyticsCacheKey, analytics, s.cacheTTL); err != nil {
		s.log.Warn("Cache write failed", logger.String("key", analyticsCacheKey), logger.Error(err))
	}
	return analytics
}

func (s *analyticsService) calculate(ctx context.Context) (*models.LaunchAnalytics, error) {
	launches, err := s.launches.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load launches: %w", err)
	}
	return ComputeAnalytics(launches, s.clock.Now().UTC()), nil
}

// ComputeAnalytics считает сводку по переданному набору запусков на момент now
func ComputeAnalytics(launches []models.Launch, now time.Time) *models.LaunchAnalytics {
	analytics := &models.LaunchAnalytics{
		GeneratedAt:   now,
		TotalLaunches: len(launches),
	}

	for _, l := range launches {
		switch l.Status {
		case models.LaunchStatusScheduled:
			analytics.UpcomingLaunches++
		case models.LaunchStatusToBeDetermined:
			analytics.UpcomingLaunches++
			analytics.TbdLaunches++
		case models.LaunchStatusSuccess:
			analytics.SuccessfulLaunches++
		case models.LaunchStatusFailed, models.LaunchStatusPartialFailure:
			analytics.FailedLaunches++
		}
	}

	analytics.LaunchesByProvider = providerBreakdown(launches)
	if len(analytics.LaunchesByProvider) > 0 {
		top := analytics.LaunchesByProvider[0]
		analytics.MostActiveProvider = top.Provider
		analytics.MostActiveProviderCount = top.Count
	}

	var monthCounts []int
	analytics.LaunchesByMonth, monthCounts = monthlyBreakdown(launches)
	if len(monthCounts) > 0 {
		sum := 0
		for _, c := range monthCounts {
			sum += c
		}
		analytics.AverageLaunchesPerMonth = round1(float64(sum) / float64(len(monthCounts)))
	}

	weekAhead := now.AddDate(0, 0, 7)
	weekAgo := now.AddDate(0, 0, -7)
	for _, l := range launches {
		if l.LaunchDate == nil {
			continue
		}
		d := *l.LaunchDate
		if !d.Before(now) && !d.After(weekAhead) {
			analytics.LaunchesNext7Days++
		}
		if !d.Before(weekAgo) && d.Before(now) {
			analytics.LaunchesPrevious7Days++
		}
	}

	return analytics
}

// providerBreakdown - топ провайдеров, при равенстве порядок первого появления
func providerBreakdown(launches []models.Launch) []models.ProviderStat {
	index := make(map[string]int)
	var stats []models.ProviderStat

	for _, l := range launches {
		if l.Provider == nil || *l.Provider == "" {
			continue
		}
		if i, ok := index[*l.Provider]; ok {
			stats[i].Count++
			continue
		}
		index[*l.Provider] = len(stats)
		stats = append(stats, models.ProviderStat{Provider: *l.Provider, Count: 1})
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Count > stats[j].Count
	})
	if len(stats) > topProviders {
		stats = stats[:topProviders]
	}

	total := len(launches)
	for i := range stats {
		if total > 0 {
			stats[i].Percentage = round1(float64(stats[i].Count) / float64(total) * 100)
		}
	}

	if stats == nil {
		stats = []models.ProviderStat{}
	}
	return stats
}

func monthlyBreakdown(launches []models.Launch) ([]models.MonthlyStat, []int) {
	type yearMonth struct {
		year  int
		month time.Month
	}

	counts := make(map[yearMonth]int)
	for _, l := range launches {
		if l.LaunchDate == nil {
			continue
		}
		d := l.LaunchDate.UTC()
		counts[yearMonth{d.Year(), d.Month()}]++
	}

	keys := make([]yearMonth, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year > keys[j].year
		}
		return keys[i].month > keys[j].month
	})
	if len(keys) > topMonths {
		keys = keys[:topMonths]
	}

	stats := make([]models.MonthlyStat, 0, len(keys))
	values := make([]int, 0, len(keys))
	for _, k := range keys {
		stats = append(stats, models.MonthlyStat{
			Month: k.month.String()[:3],
			Year:  k.year,
			Count: counts[k],
		})
		values = append(values, counts[k])
	}
	return stats, values
}

// round1 округляет до одного знака, половину от нуля
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func (s *analyticsService) GenerateAndSaveStatistics(ctx context.Context) *models.LaunchStatistics {
	analytics, err := s.calculate(ctx)
	if err != nil {
		metrics.StatisticsSnapshots.WithLabelValues("failure").Inc()
		s.log.Error("Failed to calculate statistics snapshot", logger.Error(err))
		return nil
	}

	stats, err := buildSnapshot(analytics)
	if err != nil {
		metrics.StatisticsSnapshots.WithLabelValues("failure").Inc()
		s.log.Error("Failed to encode statistics snapshot", logger.Error(err))
		return nil
	}

	if err := s.statistics.Upsert(ctx, stats); err != nil {
		metrics.StatisticsSnapshots.WithLabelValues("failure").Inc()
		s.log.Error("Failed to save statistics snapshot", logger.Error(err))
		return nil
	}

	metrics.StatisticsSnapshots.WithLabelValues("success").Inc()
	s.log.Info("Statistics snapshot saved",
		logger.Time("date", stats.Date),
		logger.Int("total", stats.TotalLaunches),
	)
	return stats
}

func buildSnapshot(analytics *models.LaunchAnalytics) (*models.LaunchStatistics, error) {
	byProvider, err := json.Marshal(analytics.LaunchesByProvider)
	if err != nil {
		return nil, err
	}
	byMonth, err := json.Marshal(analytics.LaunchesByMonth)
	if err != nil {
		return nil, err
	}

	return &models.LaunchStatistics{
		Date:               startOfDay(analytics.GeneratedAt),
		TotalLaunches:      analytics.TotalLaunches,
		UpcomingLaunches:   analytics.UpcomingLaunches,
		SuccessfulLaunches: analytics.SuccessfulLaunches,
		FailedLaunches:     analytics.FailedLaunches,
		TbdLaunches:        analytics.TbdLaunches,
		LaunchesByProvider: datatypes.JSON(byProvider),
		LaunchesByMonth:    datatypes.JSON(byMonth),
	}, nil
}

func (s *analyticsService) GetStatisticsForDate(ctx context.Context, date time.Time) *models.LaunchStatistics {
	stats, err := s.statistics.GetByDate(ctx, date)
	if err != nil {
		s.log.Error("Failed to load statistics", logger.Time("date", date), logger.Error(err))
		return nil
	}
	return stats
}

func (s *analyticsService) GetStatisticsHistory(ctx context.Context, days int) []models.LaunchStatistics {
	since := startOfDay(s.clock.Now()).AddDate(0, 0, -days)

	history, err := s.statistics.GetSince(ctx, since)
	if err != nil {
		s.log.Error("Failed to load statistics history", logger.Int("days", days), logger.Error(err))
		return []models.LaunchStatistics{}
	}
	if history == nil {
		history = []models.LaunchStatistics{}
	}
	return history
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
