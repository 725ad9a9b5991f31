package models

import (
	"time"
)

type SatelliteType string

const (
	SatelliteTypeSpaceStation  SatelliteType = "SpaceStation"
	SatelliteTypeCommunication SatelliteType = "Communication"
	SatelliteTypeWeather       SatelliteType = "Weather"
	SatelliteTypeScientific    SatelliteType = "Scientific"
	SatelliteTypeNavigation    SatelliteType = "Navigation"
	SatelliteTypeOther         SatelliteType = "Other"
)

// ISSNoradID - номер МКС в каталоге NORAD
const ISSNoradID = 25544

type Satellite struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	NoradID     int           `gorm:"not null;uniqueIndex" json:"norad_id"`
	Name        string        `gorm:"size:200;not null" json:"name"`
	Type        SatelliteType `gorm:"size:32;not null" json:"type"`
	LaunchDate  *time.Time    `json:"launch_date,omitempty"`
	Description *string       `gorm:"size:2000" json:"description,omitempty"`
	CreatedAt   time.Time     `gorm:"autoCreateTime" json:"created_at"`
}

// ISSSatellite возвращает эталонную запись, которой засевается таблица
func ISSSatellite() Satellite {
	launchDate := time.Date(1998, time.November, 20, 0, 0, 0, 0, time.UTC)
	description := "The International Space Station is a modular space station in low Earth orbit. " +
		"It is a multinational collaborative project involving five participating space agencies: " +
		"NASA (United States), Roscosmos (Russia), JAXA (Japan), ESA (Europe), and CSA (Canada)."

	return Satellite{
		NoradID:     ISSNoradID,
		Name:        "International Space Station (ISS)",
		Type:        SatelliteTypeSpaceStation,
		LaunchDate:  &launchDate,
		Description: &description,
		CreatedAt:   time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
}
