package worker

import (
	"context"
	"time"

	"isstracker/internal/logger"
	"isstracker/internal/service"

	"github.com/jonboulle/clockwork"
)

const launchSyncTimeout = 2 * time.Minute

// LaunchSyncWorker периодически подтягивает расписание запусков
type LaunchSyncWorker struct {
	*loop
	service service.LaunchService
}

func NewLaunchSyncWorker(service service.LaunchService, interval time.Duration, clock clockwork.Clock, log logger.Logger) *LaunchSyncWorker {
	w := &LaunchSyncWorker{service: service}
	w.loop = newLoop("launch_sync", interval, launchSyncTimeout, clock, log, w.sync)
	return w
}

func (w *LaunchSyncWorker) sync(ctx context.Context) {
	result := w.service.SyncLaunchesToDatabase(ctx)
	if !result.OK() {
		w.log.Warn("Launch sync failed", logger.String("error", result.Error))
		return
	}

	w.log.Info("Launch sync finished",
		logger.Int("fetched", result.Fetched),
		logger.Int("created", result.Created),
		logger.Int("updated", result.Updated),
		logger.Int("skipped", result.Skipped),
	)
}
