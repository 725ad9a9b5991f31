package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"isstracker/internal/logger"
	"isstracker/internal/models"
	"isstracker/internal/repository"
	"isstracker/internal/utils"

	"github.com/jonboulle/clockwork"
)

var ErrUnsupportedFormat = errors.New("unsupported export format")

type ReportService interface {
	// ExportLaunches пишет отчет в каталог экспорта и возвращает путь к файлу.
	// format: csv, xlsx (или excel), json
	ExportLaunches(ctx context.Context, format string) (string, error)
}

type reportService struct {
	launches  repository.LaunchRepository
	analytics AnalyticsService
	clock     clockwork.Clock
	log       logger.Logger
	outputDir string
}

func NewReportService(
	launches repository.LaunchRepository,
	analytics AnalyticsService,
	clock clockwork.Clock,
	log logger.Logger,
	outputDir string,
) ReportService {
	return &reportService{
		launches:  launches,
		analytics: analytics,
		clock:     clock,
		log:       log,
		outputDir: outputDir,
	}
}

type launchReport struct {
	GeneratedAt time.Time               `json:"generated_at"`
	Launches    []models.Launch         `json:"launches"`
	Analytics   *models.LaunchAnalytics `json:"analytics,omitempty"`
}

func (s *reportService) ExportLaunches(ctx context.Context, format string) (string, error) {
	var ext string
	switch format {
	case "csv":
		ext = "csv"
	case "excel", "xlsx":
		ext = "xlsx"
	case "json":
		ext = "json"
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	launches, err := s.launches.GetAll(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to load launches: %w", err)
	}

	if err := os.MkdirAll(s.outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	now := s.clock.Now()
	filename := fmt.Sprintf("launches_export_%s.%s", utils.ReportTimestamp(now), ext)
	path := filepath.Join(s.outputDir, filename)

	switch ext {
	case "csv":
		err = saveLaunchesCSV(path, launches)
	case "xlsx":
		err = utils.CreateLaunchReport(path, launches, s.analytics.GetCurrentAnalytics(ctx))
	case "json":
		err = utils.SaveAsJSON(path, launchReport{
			GeneratedAt: now.UTC(),
			Launches:    launches,
			Analytics:   s.analytics.GetCurrentAnalytics(ctx),
		})
	}
	if err != nil {
		return "", fmt.Errorf("failed to write %s report: %w", ext, err)
	}

	s.log.Info("Launch report exported",
		logger.String("file", filename),
		logger.Int("launches", len(launches)),
	)
	return path, nil
}

func saveLaunchesCSV(path string, launches []models.Launch) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	header := []string{
		"external_id", "name", "launch_date", "status", "rocket_name",
		"provider", "launch_site", "is_favorite", "updated_at",
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, l := range launches {
		launchDate := ""
		if l.LaunchDate != nil {
			launchDate = l.LaunchDate.UTC().Format(time.RFC3339)
		}

		row := []string{
			l.ExternalID,
			l.Name,
			launchDate,
			string(l.Status),
			derefString(l.RocketName),
			derefString(l.Provider),
			derefString(l.LaunchSite),
			fmt.Sprintf("%t", l.IsFavorite),
			l.UpdatedAt.UTC().Format(time.RFC3339),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
