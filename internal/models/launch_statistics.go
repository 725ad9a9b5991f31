package models

import (
	"time"

	"gorm.io/datatypes"
)

// LaunchStatistics - суточный снимок аналитики, одна строка на дату (UTC)
type LaunchStatistics struct {
	ID                 uint           `gorm:"primaryKey" json:"id"`
	Date               time.Time      `gorm:"not null;uniqueIndex" json:"date"`
	TotalLaunches      int            `gorm:"not null" json:"total_launches"`
	UpcomingLaunches   int            `gorm:"not null" json:"upcoming_launches"`
	SuccessfulLaunches int            `gorm:"not null" json:"successful_launches"`
	FailedLaunches     int            `gorm:"not null" json:"failed_launches"`
	TbdLaunches        int            `gorm:"not null" json:"tbd_launches"`
	LaunchesByProvider datatypes.JSON `json:"launches_by_provider"`
	LaunchesByMonth    datatypes.JSON `json:"launches_by_month"`
	CreatedAt          time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

type LaunchAnalytics struct {
	GeneratedAt time.Time `json:"generated_at"`

	TotalLaunches      int `json:"total_launches"`
	UpcomingLaunches   int `json:"upcoming_launches"`
	SuccessfulLaunches int `json:"successful_launches"`
	FailedLaunches     int `json:"failed_launches"`
	TbdLaunches        int `json:"tbd_launches"`

	LaunchesByProvider []ProviderStat `json:"launches_by_provider"`
	LaunchesByMonth    []MonthlyStat  `json:"launches_by_month"`

	LaunchesNext7Days     int `json:"launches_next_7_days"`
	LaunchesPrevious7Days int `json:"launches_previous_7_days"`

	MostActiveProvider      string `json:"most_active_provider"`
	MostActiveProviderCount int    `json:"most_active_provider_count"`

	AverageLaunchesPerMonth float64 `json:"average_launches_per_month"`
}

type ProviderStat struct {
	Provider   string  `json:"provider"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

type MonthlyStat struct {
	Month string `json:"month"`
	Year  int    `json:"year"`
	Count int    `json:"count"`
}
