package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"isstracker/internal/logger"
	"isstracker/internal/models"
	"isstracker/internal/repository"

	"github.com/goccy/go-json"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func launchWith(provider string, status models.LaunchStatus, date *time.Time) models.Launch {
	l := models.Launch{Status: status, LaunchDate: date}
	if provider != "" {
		l.Provider = strPtr(provider)
	}
	return l
}

func TestComputeAnalytics_Counts(t *testing.T) {
	launches := []models.Launch{
		launchWith("SpaceX", models.LaunchStatusScheduled, nil),
		launchWith("SpaceX", models.LaunchStatusToBeDetermined, nil),
		launchWith("SpaceX", models.LaunchStatusSuccess, nil),
		launchWith("ULA", models.LaunchStatusFailed, nil),
		launchWith("ULA", models.LaunchStatusPartialFailure, nil),
		launchWith("", models.LaunchStatusInFlight, nil),
	}

	a := ComputeAnalytics(launches, testNow)

	assert.Equal(t, 6, a.TotalLaunches)
	assert.Equal(t, 2, a.UpcomingLaunches)
	assert.Equal(t, 1, a.SuccessfulLaunches)
	assert.Equal(t, 2, a.FailedLaunches)
	assert.Equal(t, 1, a.TbdLaunches)
	assert.Equal(t, testNow, a.GeneratedAt)
}

func TestComputeAnalytics_ProviderPercentages(t *testing.T) {
	// 3 SpaceX, 2 ULA, 1 Rocket Lab + 1 без провайдера: 7 запусков всего
	launches := []models.Launch{
		launchWith("ULA", models.LaunchStatusScheduled, nil),
		launchWith("SpaceX", models.LaunchStatusScheduled, nil),
		launchWith("SpaceX", models.LaunchStatusScheduled, nil),
		launchWith("ULA", models.LaunchStatusScheduled, nil),
		launchWith("SpaceX", models.LaunchStatusScheduled, nil),
		launchWith("Rocket Lab", models.LaunchStatusScheduled, nil),
		launchWith("", models.LaunchStatusScheduled, nil),
	}

	a := ComputeAnalytics(launches, testNow)

	require.Len(t, a.LaunchesByProvider, 3)
	assert.Equal(t, models.ProviderStat{Provider: "SpaceX", Count: 3, Percentage: 42.9}, a.LaunchesByProvider[0])
	assert.Equal(t, models.ProviderStat{Provider: "ULA", Count: 2, Percentage: 28.6}, a.LaunchesByProvider[1])
	assert.Equal(t, models.ProviderStat{Provider: "Rocket Lab", Count: 1, Percentage: 14.3}, a.LaunchesByProvider[2])
	assert.Equal(t, "SpaceX", a.MostActiveProvider)
	assert.Equal(t, 3, a.MostActiveProviderCount)
}

func TestComputeAnalytics_ProviderTiesKeepFirstSeenOrder(t *testing.T) {
	launches := []models.Launch{
		launchWith("Beta", models.LaunchStatusScheduled, nil),
		launchWith("Alpha", models.LaunchStatusScheduled, nil),
		launchWith("Gamma", models.LaunchStatusScheduled, nil),
		launchWith("Alpha", models.LaunchStatusScheduled, nil),
		launchWith("Beta", models.LaunchStatusScheduled, nil),
	}

	a := ComputeAnalytics(launches, testNow)

	require.Len(t, a.LaunchesByProvider, 3)
	assert.Equal(t, "Beta", a.LaunchesByProvider[0].Provider)
	assert.Equal(t, "Alpha", a.LaunchesByProvider[1].Provider)
	assert.Equal(t, "Gamma", a.LaunchesByProvider[2].Provider)
}

func TestComputeAnalytics_TopTenProviders(t *testing.T) {
	var launches []models.Launch
	for i := 0; i < 12; i++ {
		launches = append(launches, launchWith(fmt.Sprintf("P%02d", i), models.LaunchStatusScheduled, nil))
	}

	a := ComputeAnalytics(launches, testNow)
	assert.Len(t, a.LaunchesByProvider, 10)
	assert.Equal(t, 8.3, a.LaunchesByProvider[0].Percentage)
}

func TestComputeAnalytics_Empty(t *testing.T) {
	a := ComputeAnalytics(nil, testNow)

	assert.Zero(t, a.TotalLaunches)
	assert.Empty(t, a.LaunchesByProvider)
	assert.Empty(t, a.LaunchesByMonth)
	assert.Empty(t, a.MostActiveProvider)
	assert.Zero(t, a.MostActiveProviderCount)
	assert.Zero(t, a.AverageLaunchesPerMonth)
}

func TestComputeAnalytics_Months(t *testing.T) {
	var launches []models.Launch
	// 14 месяцев назад от марта 2025, по (i%3)+1 запуску в месяц
	for i := 0; i < 14; i++ {
		month := testNow.AddDate(0, -i, 0)
		for j := 0; j <= i%3; j++ {
			launches = append(launches, launchWith("SpaceX", models.LaunchStatusSuccess, timePtr(month)))
		}
	}
	launches = append(launches, launchWith("SpaceX", models.LaunchStatusScheduled, nil))

	a := ComputeAnalytics(launches, testNow)

	require.Len(t, a.LaunchesByMonth, 12)
	assert.Equal(t, models.MonthlyStat{Month: "Mar", Year: 2025, Count: 1}, a.LaunchesByMonth[0])
	assert.Equal(t, models.MonthlyStat{Month: "Feb", Year: 2025, Count: 2}, a.LaunchesByMonth[1])
	assert.Equal(t, models.MonthlyStat{Month: "Jan", Year: 2025, Count: 3}, a.LaunchesByMonth[2])
	assert.Equal(t, models.MonthlyStat{Month: "Dec", Year: 2024, Count: 1}, a.LaunchesByMonth[3])
	assert.Equal(t, "Apr", a.LaunchesByMonth[11].Month)
	assert.Equal(t, 2024, a.LaunchesByMonth[11].Year)

	// Первые 12 групп: 1,2,3 четыре раза подряд -> среднее 2.0
	assert.Equal(t, 2.0, a.AverageLaunchesPerMonth)
}

func TestComputeAnalytics_SevenDayWindows(t *testing.T) {
	launches := []models.Launch{
		launchWith("A", models.LaunchStatusScheduled, timePtr(testNow)),
		launchWith("A", models.LaunchStatusScheduled, timePtr(testNow.Add(7*24*time.Hour))),
		launchWith("A", models.LaunchStatusScheduled, timePtr(testNow.Add(7*24*time.Hour+time.Second))),
		launchWith("A", models.LaunchStatusSuccess, timePtr(testNow.Add(-time.Second))),
		launchWith("A", models.LaunchStatusSuccess, timePtr(testNow.Add(-7*24*time.Hour))),
		launchWith("A", models.LaunchStatusSuccess, timePtr(testNow.Add(-7*24*time.Hour-time.Second))),
		launchWith("A", models.LaunchStatusToBeDetermined, nil),
	}

	a := ComputeAnalytics(launches, testNow)
	assert.Equal(t, 2, a.LaunchesNext7Days)
	assert.Equal(t, 2, a.LaunchesPrevious7Days)
}

func TestRound1(t *testing.T) {
	assert.Equal(t, 33.3, round1(100.0/3))
	assert.Equal(t, 66.7, round1(200.0/3))
	assert.Equal(t, 0.0, round1(0))
	assert.Equal(t, 100.0, round1(100))
}

type analyticsFixture struct {
	svc        AnalyticsService
	launches   repository.LaunchRepository
	statistics repository.StatisticsRepository
	clock      *clockwork.FakeClock
}

func newAnalyticsFixture(t *testing.T) *analyticsFixture {
	t.Helper()

	db := newTestDB(t)
	clock := clockwork.NewFakeClockAt(testNow)
	launches := repository.NewLaunchRepository(db)
	statistics := repository.NewStatisticsRepository(db)

	svc := NewAnalyticsService(launches, statistics, newTestCache(clock), clock, logger.NewNop(), 30*time.Minute)
	return &analyticsFixture{svc: svc, launches: launches, statistics: statistics, clock: clock}
}

func (f *analyticsFixture) seed(t *testing.T, launches ...*models.Launch) {
	t.Helper()
	_, _, err := f.launches.BulkUpsert(context.Background(), launches, f.clock.Now())
	require.NoError(t, err)
}

func TestAnalyticsService_CurrentAnalyticsCached(t *testing.T) {
	ctx := context.Background()
	f := newAnalyticsFixture(t)
	f.seed(t, &models.Launch{ExternalID: "a", Name: "A", Status: models.LaunchStatusSuccess, Provider: strPtr("SpaceX")})

	first := f.svc.GetCurrentAnalytics(ctx)
	require.NotNil(t, first)
	assert.Equal(t, 1, first.TotalLaunches)

	f.seed(t, &models.Launch{ExternalID: "b", Name: "B", Status: models.LaunchStatusScheduled})

	f.clock.Advance(29 * time.Minute)
	assert.Equal(t, 1, f.svc.GetCurrentAnalytics(ctx).TotalLaunches)

	f.clock.Advance(time.Minute)
	assert.Equal(t, 2, f.svc.GetCurrentAnalytics(ctx).TotalLaunches)
}

func TestAnalyticsService_SnapshotUpsertsByDay(t *testing.T) {
	ctx := context.Background()
	f := newAnalyticsFixture(t)
	f.seed(t, &models.Launch{ExternalID: "a", Name: "A", Status: models.LaunchStatusSuccess, Provider: strPtr("SpaceX")})

	first := f.svc.GenerateAndSaveStatistics(ctx)
	require.NotNil(t, first)
	assert.Equal(t, time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC), first.Date)
	assert.Equal(t, 1, first.TotalLaunches)

	f.seed(t, &models.Launch{ExternalID: "b", Name: "B", Status: models.LaunchStatusFailed, Provider: strPtr("ULA")})
	f.clock.Advance(6 * time.Hour)

	second := f.svc.GenerateAndSaveStatistics(ctx)
	require.NotNil(t, second)
	assert.Equal(t, first.ID, second.ID)

	stored := f.svc.GetStatisticsForDate(ctx, time.Date(2025, time.March, 10, 23, 59, 0, 0, time.UTC))
	require.NotNil(t, stored)
	assert.Equal(t, 2, stored.TotalLaunches)
	assert.Equal(t, 1, stored.FailedLaunches)

	var providers []models.ProviderStat
	require.NoError(t, json.Unmarshal(stored.LaunchesByProvider, &providers))
	assert.Len(t, providers, 2)

	history := f.svc.GetStatisticsHistory(ctx, 7)
	assert.Len(t, history, 1)
}

func TestAnalyticsService_History(t *testing.T) {
	ctx := context.Background()
	f := newAnalyticsFixture(t)

	for i := 0; i < 5; i++ {
		require.NotNil(t, f.svc.GenerateAndSaveStatistics(ctx))
		f.clock.Advance(24 * time.Hour)
	}

	// Сейчас 15 марта; снимки за 10..14
	history := f.svc.GetStatisticsHistory(ctx, 3)
	require.Len(t, history, 3)
	assert.Equal(t, 14, history[0].Date.Day())
	assert.Equal(t, 12, history[2].Date.Day())

	assert.Nil(t, f.svc.GetStatisticsForDate(ctx, testNow.AddDate(0, 0, -1)))
	assert.Empty(t, f.svc.GetStatisticsHistory(ctx, -10))
}
