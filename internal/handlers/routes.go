package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Handlers struct {
	ISS       *ISSHandler
	Launch    *LaunchHandler
	Analytics *AnalyticsHandler
	Satellite *SatelliteHandler
	Dashboard *DashboardHandler
	System    *SystemHandler
}

func RegisterRoutes(router *gin.Engine, h Handlers) {
	router.GET("/health", h.System.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api/v1")
	{
		api.GET("/health", h.System.HealthCheck)
		api.GET("/dashboard", h.Dashboard.GetDashboardData)
		api.GET("/system/stats", h.System.GetStats)

		iss := api.Group("/iss")
		{
			iss.GET("/position", h.ISS.GetPosition)
			iss.GET("/flyovers", h.ISS.GetFlyovers)
			iss.POST("/flyovers", h.ISS.GetFlyovers)
			iss.GET("/people", h.ISS.GetPeopleInSpace)
		}

		launches := api.Group("/launches")
		{
			launches.GET("", h.Launch.GetUpcoming)
			launches.POST("/sync", h.Launch.Sync)
			launches.GET("/export", h.Launch.Export)
			launches.GET("/:id", h.Launch.GetLaunch)
			launches.PUT("/:id/favorite", h.Launch.MarkFavorite)
			launches.DELETE("/:id/favorite", h.Launch.UnmarkFavorite)
		}

		analytics := api.Group("/analytics")
		{
			analytics.GET("", h.Analytics.GetAnalytics)
			analytics.POST("/snapshot", h.Analytics.CreateSnapshot)
			analytics.GET("/history", h.Analytics.GetHistory)
			analytics.GET("/:date", h.Analytics.GetForDate)
		}

		satellites := api.Group("/satellites")
		{
			satellites.GET("", h.Satellite.List)
			satellites.GET("/:norad", h.Satellite.GetByNoradID)
		}
	}
}
