package models

import (
	"time"
)

type LaunchStatus string

const (
	LaunchStatusScheduled      LaunchStatus = "Scheduled"
	LaunchStatusInFlight       LaunchStatus = "InFlight"
	LaunchStatusSuccess        LaunchStatus = "Success"
	LaunchStatusFailed         LaunchStatus = "Failed"
	LaunchStatusPartialFailure LaunchStatus = "PartialFailure"
	LaunchStatusToBeDetermined LaunchStatus = "ToBeDetermined"
)

// Launch - запуск из Launch Library, ExternalID неизменяем после создания.
// Временные метки проставляет сервис синхронизации, а не gorm.
type Launch struct {
	ID                 uint         `gorm:"primaryKey" json:"id"`
	ExternalID         string       `gorm:"size:100;not null;uniqueIndex" json:"external_id"`
	Name               string       `gorm:"size:500;not null" json:"name"`
	LaunchDate         *time.Time   `gorm:"index" json:"launch_date"`
	Status             LaunchStatus `gorm:"size:32;not null;index" json:"status"`
	RocketName         *string      `gorm:"size:200" json:"rocket_name,omitempty"`
	Provider           *string      `gorm:"size:200;index" json:"provider,omitempty"`
	MissionDescription *string      `gorm:"size:5000" json:"mission_description,omitempty"`
	ImageURL           *string      `gorm:"size:1000" json:"image_url,omitempty"`
	VideoURL           *string      `gorm:"size:1000" json:"video_url,omitempty"`
	LaunchSite         *string      `gorm:"size:500" json:"launch_site,omitempty"`
	IsFavorite         bool         `gorm:"not null;default:false" json:"is_favorite"`
	CreatedAt          time.Time    `gorm:"not null;autoCreateTime:false" json:"created_at"`
	UpdatedAt          time.Time    `gorm:"not null;autoUpdateTime:false" json:"updated_at"`
}

// ApplyRemote переносит изменяемые поля из свежей записи API.
// ID, ExternalID, CreatedAt и IsFavorite не трогаем.
func (l *Launch) ApplyRemote(remote *Launch, now time.Time) {
	l.Name = remote.Name
	l.LaunchDate = remote.LaunchDate
	l.Status = remote.Status
	l.RocketName = remote.RocketName
	l.Provider = remote.Provider
	l.MissionDescription = remote.MissionDescription
	l.ImageURL = remote.ImageURL
	l.VideoURL = remote.VideoURL
	l.LaunchSite = remote.LaunchSite
	l.UpdatedAt = now
}

type LaunchDTO struct {
	ID                 uint         `json:"id"`
	ExternalID         string       `json:"external_id"`
	Name               string       `json:"name"`
	LaunchDate         *time.Time   `json:"launch_date"`
	Status             LaunchStatus `json:"status"`
	RocketName         *string      `json:"rocket_name,omitempty"`
	Provider           *string      `json:"provider,omitempty"`
	MissionDescription *string      `json:"mission_description,omitempty"`
	ImageURL           *string      `json:"image_url,omitempty"`
	VideoURL           *string      `json:"video_url,omitempty"`
	LaunchSite         *string      `json:"launch_site,omitempty"`
	TimeUntilLaunch    string       `json:"time_until_launch"`
	IsFavorite         bool         `json:"is_favorite"`
}

// SyncResult - итог одного прохода синхронизации
type SyncResult struct {
	Fetched    int       `json:"fetched"`
	Created    int       `json:"created"`
	Updated    int       `json:"updated"`
	Skipped    int       `json:"skipped"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Error      string    `json:"error,omitempty"`
}

func (r SyncResult) OK() bool {
	return r.Error == ""
}
