package handlers

import (
	"net/http"
	"strconv"

	"isstracker/internal/logger"
	"isstracker/internal/repository"

	"github.com/gin-gonic/gin"
)

type SatelliteHandler struct {
	repo repository.SatelliteRepository
	log  logger.Logger
}

func NewSatelliteHandler(repo repository.SatelliteRepository, log logger.Logger) *SatelliteHandler {
	return &SatelliteHandler{repo: repo, log: log}
}

func (h *SatelliteHandler) List(c *gin.Context) {
	satellites, err := h.repo.List(c.Request.Context())
	if err != nil {
		h.log.Error("Failed to list satellites", logger.Error(err))
		errorResponse(c, http.StatusInternalServerError, "failed to list satellites")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"satellites": satellites,
		"count":      len(satellites),
	})
}

func (h *SatelliteHandler) GetByNoradID(c *gin.Context) {
	noradID, err := strconv.Atoi(c.Param("norad"))
	if err != nil || noradID <= 0 {
		errorResponse(c, http.StatusBadRequest, "norad id must be a positive integer")
		return
	}

	satellite, err := h.repo.GetByNoradID(c.Request.Context(), noradID)
	if err != nil {
		h.log.Error("Failed to load satellite", logger.Int("norad_id", noradID), logger.Error(err))
		errorResponse(c, http.StatusInternalServerError, "failed to load satellite")
		return
	}
	if satellite == nil {
		errorResponse(c, http.StatusNotFound, "satellite not found")
		return
	}

	c.JSON(http.StatusOK, satellite)
}
