package handlers

import (
	"errors"
	"net/http"
	"path/filepath"

	"isstracker/internal/logger"
	"isstracker/internal/service"

	"github.com/gin-gonic/gin"
)

type LaunchHandler struct {
	launches service.LaunchService
	reports  service.ReportService
	log      logger.Logger
}

func NewLaunchHandler(launches service.LaunchService, reports service.ReportService, log logger.Logger) *LaunchHandler {
	return &LaunchHandler{
		launches: launches,
		reports:  reports,
		log:      log,
	}
}

func (h *LaunchHandler) GetUpcoming(c *gin.Context) {
	limit := queryInt(c, "limit", 10, 1, 100)

	launches := h.launches.GetUpcomingLaunches(c.Request.Context(), limit)

	c.JSON(http.StatusOK, gin.H{
		"launches": launches,
		"count":    len(launches),
		"limit":    limit,
	})
}

func (h *LaunchHandler) GetLaunch(c *gin.Context) {
	launch := h.launches.GetLaunchDetails(c.Request.Context(), c.Param("id"))
	if launch == nil {
		errorResponse(c, http.StatusNotFound, "launch not found")
		return
	}

	c.JSON(http.StatusOK, launch)
}

func (h *LaunchHandler) MarkFavorite(c *gin.Context) {
	h.setFavorite(c, true)
}

func (h *LaunchHandler) UnmarkFavorite(c *gin.Context) {
	h.setFavorite(c, false)
}

func (h *LaunchHandler) setFavorite(c *gin.Context, favorite bool) {
	launch, err := h.launches.SetFavorite(c.Request.Context(), c.Param("id"), favorite)
	if err != nil {
		h.log.Error("Failed to update favorite", logger.String("id", c.Param("id")), logger.Error(err))
		errorResponse(c, http.StatusInternalServerError, "failed to update favorite")
		return
	}
	if launch == nil {
		errorResponse(c, http.StatusNotFound, "launch not found")
		return
	}

	c.JSON(http.StatusOK, launch)
}

// Sync запускает синхронизацию вручную; 502, если внешний API не ответил
func (h *LaunchHandler) Sync(c *gin.Context) {
	result := h.launches.SyncLaunchesToDatabase(c.Request.Context())

	status := http.StatusOK
	if !result.OK() {
		status = http.StatusBadGateway
	}

	c.JSON(status, gin.H{
		"success": result.OK(),
		"result":  result,
	})
}

func (h *LaunchHandler) Export(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")

	path, err := h.reports.ExportLaunches(c.Request.Context(), format)
	if err != nil {
		if errors.Is(err, service.ErrUnsupportedFormat) {
			errorResponse(c, http.StatusBadRequest, "unsupported format, use 'csv', 'xlsx' or 'json'")
			return
		}
		h.log.Error("Failed to export launches", logger.String("format", format), logger.Error(err))
		errorResponse(c, http.StatusInternalServerError, "failed to export launches")
		return
	}

	var contentType string
	switch filepath.Ext(path) {
	case ".csv":
		contentType = "text/csv"
	case ".xlsx":
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case ".json":
		contentType = "application/json"
	default:
		contentType = "application/octet-stream"
	}

	c.Header("Content-Type", contentType)
	c.FileAttachment(path, filepath.Base(path))
}
