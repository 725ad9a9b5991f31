package models

import (
	"time"
)

type ISSPosition struct {
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	Altitude   float64   `json:"altitude"`
	Velocity   float64   `json:"velocity"`
	Timestamp  time.Time `json:"timestamp"`
	Visibility string    `json:"visibility"` // daylight / eclipsed
}

// Flyover - приблизительный пролет МКС над точкой наблюдения
type Flyover struct {
	RiseTime            time.Time `json:"rise_time"`
	SetTime             time.Time `json:"set_time"`
	DurationSeconds     int       `json:"duration_seconds"`
	MaxElevationDegrees float64   `json:"max_elevation_degrees"`
}
