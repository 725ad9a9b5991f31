package service

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"isstracker/internal/logger"
	"isstracker/internal/models"
	"isstracker/internal/repository"

	"github.com/goccy/go-json"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func newTestReportService(t *testing.T) (ReportService, string) {
	t.Helper()

	db := newTestDB(t)
	clock := clockwork.NewFakeClockAt(testNow)
	launches := repository.NewLaunchRepository(db)
	statistics := repository.NewStatisticsRepository(db)

	_, _, err := launches.BulkUpsert(context.Background(), []*models.Launch{
		{ExternalID: "a", Name: "Alpha", Status: models.LaunchStatusSuccess, Provider: strPtr("SpaceX"), LaunchDate: timePtr(testNow.AddDate(0, -1, 0))},
		{ExternalID: "b", Name: "Bravo, \"quoted\"", Status: models.LaunchStatusScheduled, Provider: strPtr("ULA"), LaunchDate: timePtr(testNow.AddDate(0, 0, 3))},
		{ExternalID: "c", Name: "Charlie", Status: models.LaunchStatusToBeDetermined},
	}, testNow)
	require.NoError(t, err)

	analytics := NewAnalyticsService(launches, statistics, newTestCache(clock), clock, logger.NewNop(), 0)
	dir := filepath.Join(t.TempDir(), "exports")
	return NewReportService(launches, analytics, clock, logger.NewNop(), dir), dir
}

func TestReportService_CSV(t *testing.T) {
	svc, dir := newTestReportService(t)

	path, err := svc.ExportLaunches(context.Background(), "csv")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "launches_export_20250310_120000.csv"), path)

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "external_id", rows[0][0])
	assert.Equal(t, "Bravo, \"quoted\"", rows[2][1])
	assert.Equal(t, "", rows[3][2])
}

func TestReportService_JSON(t *testing.T) {
	svc, _ := newTestReportService(t)

	path, err := svc.ExportLaunches(context.Background(), "json")
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var report struct {
		Launches  []models.Launch         `json:"launches"`
		Analytics *models.LaunchAnalytics `json:"analytics"`
	}
	require.NoError(t, json.Unmarshal(raw, &report))
	assert.Len(t, report.Launches, 3)
	require.NotNil(t, report.Analytics)
	assert.Equal(t, 3, report.Analytics.TotalLaunches)
}

func TestReportService_XLSX(t *testing.T) {
	svc, _ := newTestReportService(t)

	path, err := svc.ExportLaunches(context.Background(), "xlsx")
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Launches", "Providers", "Monthly", "Info"}, f.GetSheetList())

	rows, err := f.GetRows("Launches")
	require.NoError(t, err)
	assert.Len(t, rows, 4)

	provider, err := f.GetCellValue("Providers", "A2")
	require.NoError(t, err)
	assert.Equal(t, "SpaceX", provider)
}

func TestReportService_UnsupportedFormat(t *testing.T) {
	svc, _ := newTestReportService(t)

	_, err := svc.ExportLaunches(context.Background(), "pdf")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
