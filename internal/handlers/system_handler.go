package handlers

import (
	"context"
	"net/http"
	"time"

	"isstracker/internal/logger"
	redispkg "isstracker/pkg/redis"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

const healthTimeout = 2 * time.Second

// Pinger - то, что умеет проверять соединение (*sql.DB)
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Counter - источник количества записей (любой Repository[T])
type Counter interface {
	Count(ctx context.Context) (int64, error)
}

type SystemHandler struct {
	db       Pinger
	redis    *redis.Client
	counters map[string]Counter
	workers  map[string]bool
	started  time.Time
	log      logger.Logger
}

// NewSystemHandler; redis может быть nil, если кэш в памяти
func NewSystemHandler(
	db Pinger,
	redisClient *redis.Client,
	counters map[string]Counter,
	workers map[string]bool,
	log logger.Logger,
) *SystemHandler {
	return &SystemHandler{
		db:       db,
		redis:    redisClient,
		counters: counters,
		workers:  workers,
		started:  time.Now().UTC(),
		log:      log,
	}
}

// HealthCheck godoc
// @Summary Проверка здоровья сервиса
// @Tags System
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health [get]
func (h *SystemHandler) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	services := gin.H{"database": "connected"}
	healthy := true

	if err := h.db.PingContext(ctx); err != nil {
		h.log.Warn("Database health check failed", logger.Error(err))
		services["database"] = "unavailable"
		healthy = false
	}

	if h.redis != nil {
		services["redis"] = "connected"
		if err := h.redis.Ping(ctx).Err(); err != nil {
			h.log.Warn("Redis health check failed", logger.Error(err))
			services["redis"] = "unavailable"
			healthy = false
		}
	}

	status, code := "ok", http.StatusOK
	if !healthy {
		status, code = "degraded", http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status":    status,
		"services":  services,
		"timestamp": time.Now().UTC(),
	})
}

// GetStats godoc
// @Summary Статистика системы
// @Tags System
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /system/stats [get]
func (h *SystemHandler) GetStats(c *gin.Context) {
	ctx := c.Request.Context()

	records := make(gin.H, len(h.counters))
	for name, counter := range h.counters {
		count, err := counter.Count(ctx)
		if err != nil {
			h.log.Warn("Failed to count records", logger.String("table", name), logger.Error(err))
			records[name] = nil
			continue
		}
		records[name] = count
	}

	stats := gin.H{
		"records":        records,
		"workers":        h.workers,
		"uptime_seconds": int64(time.Since(h.started).Seconds()),
	}

	if h.redis != nil {
		redisStats, err := redispkg.GetStats(ctx, h.redis)
		if err != nil {
			h.log.Warn("Failed to get redis stats", logger.Error(err))
		} else {
			stats["redis"] = redisStats
		}
	}

	c.JSON(http.StatusOK, stats)
}
