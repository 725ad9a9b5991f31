package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"isstracker/internal/logger"
	"isstracker/internal/models"
	"isstracker/internal/service"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeISSService struct {
	position *models.ISSPosition
	people   int

	mu           sync.Mutex
	lastLat      float64
	lastLon      float64
	lastPasses   int
	flyoverCalls int
}

func (f *fakeISSService) GetCurrentPosition(context.Context) *models.ISSPosition {
	return f.position
}

func (f *fakeISSService) GetUpcomingFlyovers(_ context.Context, lat, lon float64, passes int) []models.Flyover {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastLat, f.lastLon, f.lastPasses = lat, lon, passes
	f.flyoverCalls++

	flyovers := make([]models.Flyover, passes)
	for i := range flyovers {
		flyovers[i] = models.Flyover{DurationSeconds: 300, MaxElevationDegrees: 45}
	}
	return flyovers
}

func (f *fakeISSService) GetPeopleInSpace(context.Context) int {
	return f.people
}

type fakeLaunchService struct {
	launches  []models.LaunchDTO
	result    models.SyncResult
	favErr    error
	lastLimit int
	lastFav   *bool
}

func (f *fakeLaunchService) SyncLaunchesToDatabase(context.Context) models.SyncResult {
	return f.result
}

func (f *fakeLaunchService) GetUpcomingLaunches(_ context.Context, limit int) []models.LaunchDTO {
	f.lastLimit = limit
	if limit < len(f.launches) {
		return f.launches[:limit]
	}
	return f.launches
}

func (f *fakeLaunchService) find(id string) *models.LaunchDTO {
	for i := range f.launches {
		if f.launches[i].ExternalID == id {
			return &f.launches[i]
		}
	}
	return nil
}

func (f *fakeLaunchService) GetLaunchDetails(_ context.Context, id string) *models.LaunchDTO {
	return f.find(id)
}

func (f *fakeLaunchService) SetFavorite(_ context.Context, id string, favorite bool) (*models.LaunchDTO, error) {
	if f.favErr != nil {
		return nil, f.favErr
	}
	f.lastFav = &favorite
	launch := f.find(id)
	if launch != nil {
		launch.IsFavorite = favorite
	}
	return launch, nil
}

type fakeAnalyticsService struct {
	analytics *models.LaunchAnalytics
	snapshots map[string]*models.LaunchStatistics
	history   []models.LaunchStatistics

	mu          sync.Mutex
	generated   int
	historyDays int
}

func (f *fakeAnalyticsService) GetCurrentAnalytics(context.Context) *models.LaunchAnalytics {
	return f.analytics
}

func (f *fakeAnalyticsService) GenerateAndSaveStatistics(context.Context) *models.LaunchStatistics {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.generated++
	return &models.LaunchStatistics{TotalLaunches: 3}
}

func (f *fakeAnalyticsService) Generated() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.generated
}

func (f *fakeAnalyticsService) GetStatisticsForDate(_ context.Context, date time.Time) *models.LaunchStatistics {
	return f.snapshots[date.Format("2006-01-02")]
}

func (f *fakeAnalyticsService) GetStatisticsHistory(_ context.Context, days int) []models.LaunchStatistics {
	f.historyDays = days
	return f.history
}

type fakeReportService struct {
	path string
	err  error
}

func (f *fakeReportService) ExportLaunches(_ context.Context, format string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if format != "csv" && format != "json" {
		return "", service.ErrUnsupportedFormat
	}
	return f.path, nil
}

type fakePinger struct{ err error }

func (f fakePinger) PingContext(context.Context) error { return f.err }

type fakeCounter struct {
	count int64
	err   error
}

func (f fakeCounter) Count(context.Context) (int64, error) { return f.count, f.err }

var errBoom = errors.New("boom")

func perform(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func newRouter(t *testing.T, register func(r *gin.Engine)) *gin.Engine {
	t.Helper()
	r := gin.New()
	register(r)
	return r
}

func nopLogger() logger.Logger {
	return logger.NewNop()
}
