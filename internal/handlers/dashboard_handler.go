package handlers

import (
	"net/http"

	"isstracker/internal/models"
	"isstracker/internal/service"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

const dashboardLaunches = 5

type DashboardHandler struct {
	issService    service.ISSService
	launchService service.LaunchService
}

func NewDashboardHandler(issService service.ISSService, launchService service.LaunchService) *DashboardHandler {
	return &DashboardHandler{
		issService:    issService,
		launchService: launchService,
	}
}

// DashboardResponse структура ответа для дашборда
type DashboardResponse struct {
	Position       *models.ISSPosition `json:"position"`
	PeopleInSpace  int                 `json:"people_in_space"`
	Launches       []models.LaunchDTO  `json:"launches"`
	PositionStatus string              `json:"position_status"`
}

// GetDashboardData godoc
// @Summary Получить данные для дашборда
// @Description Позиция МКС, число людей на орбите и ближайшие запуски в одном запросе
// @Tags Dashboard
// @Produce json
// @Success 200 {object} DashboardResponse
// @Router /dashboard [get]
func (h *DashboardHandler) GetDashboardData(c *gin.Context) {
	var (
		data DashboardResponse
		g    errgroup.Group
	)

	ctx := c.Request.Context()

	// Сервисы не возвращают ошибок, поэтому группа только ждет всех
	g.Go(func() error {
		data.Position = h.issService.GetCurrentPosition(ctx)
		return nil
	})
	g.Go(func() error {
		data.PeopleInSpace = h.issService.GetPeopleInSpace(ctx)
		return nil
	})
	g.Go(func() error {
		data.Launches = h.launchService.GetUpcomingLaunches(ctx, dashboardLaunches)
		return nil
	})
	_ = g.Wait()

	data.PositionStatus = "ok"
	if data.Position == nil {
		data.PositionStatus = "unavailable"
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
	})
}
