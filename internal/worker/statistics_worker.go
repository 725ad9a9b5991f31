package worker

import (
	"context"
	"time"

	"isstracker/internal/logger"
	"isstracker/internal/service"

	"github.com/jonboulle/clockwork"
)

const statisticsTimeout = time.Minute

// StatisticsWorker сохраняет снимок аналитики за текущие сутки
type StatisticsWorker struct {
	*loop
	service service.AnalyticsService
}

func NewStatisticsWorker(service service.AnalyticsService, interval time.Duration, clock clockwork.Clock, log logger.Logger) *StatisticsWorker {
	w := &StatisticsWorker{service: service}
	w.loop = newLoop("statistics", interval, statisticsTimeout, clock, log, w.snapshot)
	return w
}

func (w *StatisticsWorker) snapshot(ctx context.Context) {
	stats := w.service.GenerateAndSaveStatistics(ctx)
	if stats == nil {
		w.log.Warn("Statistics snapshot was not saved")
		return
	}

	w.log.Info("Statistics snapshot saved",
		logger.String("date", stats.Date.Format("2006-01-02")),
		logger.Int("total_launches", stats.TotalLaunches),
	)
}
