package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"isstracker/internal/logger"
	"isstracker/internal/service"

	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	service service.AnalyticsService
	log     logger.Logger

	// фоновые обновления снимка после отдачи аналитики
	pending sync.WaitGroup
}

func NewAnalyticsHandler(service service.AnalyticsService, log logger.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{service: service, log: log}
}

// GetAnalytics отдает текущую сводку и в фоне обновляет снимок за сегодня
func (h *AnalyticsHandler) GetAnalytics(c *gin.Context) {
	ctx := c.Request.Context()

	analytics := h.service.GetCurrentAnalytics(ctx)
	if analytics == nil {
		errorResponse(c, http.StatusInternalServerError, "failed to calculate analytics")
		return
	}

	c.JSON(http.StatusOK, analytics)

	h.pending.Add(1)
	go func() {
		defer h.pending.Done()
		if h.service.GenerateAndSaveStatistics(context.WithoutCancel(ctx)) == nil {
			h.log.Warn("Background statistics snapshot was not saved")
		}
	}()
}

// Wait дожидается фоновых обновлений снимка (при остановке сервера)
func (h *AnalyticsHandler) Wait() {
	h.pending.Wait()
}

func (h *AnalyticsHandler) CreateSnapshot(c *gin.Context) {
	stats := h.service.GenerateAndSaveStatistics(c.Request.Context())
	if stats == nil {
		errorResponse(c, http.StatusInternalServerError, "failed to save statistics snapshot")
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *AnalyticsHandler) GetHistory(c *gin.Context) {
	days := queryInt(c, "days", 7, 1, 365)

	history := h.service.GetStatisticsHistory(c.Request.Context(), days)

	c.JSON(http.StatusOK, gin.H{
		"days":    days,
		"history": history,
		"count":   len(history),
	})
}

func (h *AnalyticsHandler) GetForDate(c *gin.Context) {
	date, err := time.Parse("2006-01-02", c.Param("date"))
	if err != nil {
		errorResponse(c, http.StatusBadRequest, "invalid date format, use YYYY-MM-DD")
		return
	}

	stats := h.service.GetStatisticsForDate(c.Request.Context(), date)
	if stats == nil {
		errorResponse(c, http.StatusNotFound, "no statistics for "+c.Param("date"))
		return
	}

	c.JSON(http.StatusOK, stats)
}
