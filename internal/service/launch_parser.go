package service

import (
	"isstracker/internal/models"

	"github.com/relvacode/iso8601"
)

// statusByID - коды статусов Launch Library 2
var statusByID = map[int64]models.LaunchStatus{
	1: models.LaunchStatusScheduled,      // Go
	2: models.LaunchStatusToBeDetermined, // TBD
	3: models.LaunchStatusSuccess,
	4: models.LaunchStatusFailed,
	5: models.LaunchStatusScheduled, // Hold
	6: models.LaunchStatusInFlight,
	7: models.LaunchStatusPartialFailure,
	8: models.LaunchStatusToBeDetermined, // TBC
}

// MapStatus тотальна: неизвестный код дает ToBeDetermined
func MapStatus(id int64) models.LaunchStatus {
	if status, ok := statusByID[id]; ok {
		return status
	}
	return models.LaunchStatusToBeDetermined
}

// ParseLaunch собирает запуск из сырой записи API. false - в записи нет id или name.
// Отсутствующие необязательные поля остаются nil.
func ParseLaunch(data map[string]interface{}) (*models.Launch, bool) {
	externalID, ok := extractString(data, "id")
	if !ok {
		return nil, false
	}
	name, ok := extractString(data, "name")
	if !ok {
		return nil, false
	}

	launch := &models.Launch{
		ExternalID: externalID,
		Name:       name,
		Status:     models.LaunchStatusToBeDetermined,
	}

	if net, ok := extractString(data, "net"); ok {
		if t, err := iso8601.ParseString(net); err == nil {
			utc := t.UTC()
			launch.LaunchDate = &utc
		}
	}

	if status, ok := extractObject(data, "status"); ok {
		if id, ok := extractInt(status, "id"); ok {
			launch.Status = MapStatus(id)
		}
	}

	if rocket, ok := extractPath(data, "rocket", "configuration", "full_name"); ok {
		launch.RocketName = &rocket
	} else {
		launch.RocketName = stringPtr(extractPath(data, "rocket", "configuration", "name"))
	}

	launch.Provider = stringPtr(extractPath(data, "launch_service_provider", "name"))
	launch.MissionDescription = stringPtr(extractPath(data, "mission", "description"))
	launch.ImageURL = stringPtr(extractString(data, "image"))

	if videos, ok := data["vidURLs"].([]interface{}); ok && len(videos) > 0 {
		if first, ok := videos[0].(map[string]interface{}); ok {
			launch.VideoURL = stringPtr(extractString(first, "url"))
		}
	}

	if pad, ok := extractString(mustObject(data, "pad"), "name"); ok {
		site := pad
		if location, ok := extractPath(data, "pad", "location", "name"); ok {
			site += ", " + location
		}
		launch.LaunchSite = &site
	}

	return launch, true
}

func mustObject(data map[string]interface{}, key string) map[string]interface{} {
	obj, _ := extractObject(data, key)
	return obj
}
