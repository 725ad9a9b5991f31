package handlers

import (
	"net/http"
	"strconv"

	"isstracker/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	defaultPasses = 5
	maxPasses     = 20
)

type ISSHandler struct {
	service service.ISSService
}

func NewISSHandler(service service.ISSService) *ISSHandler {
	return &ISSHandler{service: service}
}

func (h *ISSHandler) GetPosition(c *gin.Context) {
	position := h.service.GetCurrentPosition(c.Request.Context())
	if position == nil {
		errorResponse(c, http.StatusServiceUnavailable, "ISS position is temporarily unavailable")
		return
	}

	c.JSON(http.StatusOK, position)
}

type flyoverRequest struct {
	Latitude  *float64 `json:"latitude" form:"lat" binding:"required,min=-90,max=90"`
	Longitude *float64 `json:"longitude" form:"lon" binding:"required,min=-180,max=180"`
	Passes    int      `json:"passes" form:"passes"`
}

// GetFlyovers принимает координаты из query (GET) или JSON тела (POST)
func (h *ISSHandler) GetFlyovers(c *gin.Context) {
	var req flyoverRequest

	var err error
	if c.Request.Method == http.MethodPost {
		err = c.ShouldBindJSON(&req)
	} else {
		err = c.ShouldBindQuery(&req)
	}
	if err != nil {
		errorResponse(c, http.StatusBadRequest, "latitude must be in [-90, 90] and longitude in [-180, 180]")
		return
	}

	passes := req.Passes
	if passes <= 0 {
		passes = defaultPasses
	}
	if passes > maxPasses {
		passes = maxPasses
	}

	flyovers := h.service.GetUpcomingFlyovers(c.Request.Context(), *req.Latitude, *req.Longitude, passes)

	c.JSON(http.StatusOK, gin.H{
		"latitude":  *req.Latitude,
		"longitude": *req.Longitude,
		"passes":    passes,
		"flyovers":  flyovers,
		"count":     len(flyovers),
	})
}

func (h *ISSHandler) GetPeopleInSpace(c *gin.Context) {
	number := h.service.GetPeopleInSpace(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{
		"number":  number,
		"message": strconv.Itoa(number) + " people are currently in space",
	})
}
