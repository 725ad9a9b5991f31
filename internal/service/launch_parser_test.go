package service

import (
	"testing"
	"time"

	"isstracker/internal/models"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, raw string) map[string]interface{} {
	t.Helper()
	var data map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(raw), &data))
	return data
}

func TestParseLaunch_FullRecord(t *testing.T) {
	data := decode(t, `{
		"id": "e3df2ecd-c239-472f-95e4-2b89b4f75800",
		"name": "Falcon 9 Block 5 | Starlink Group 6-14",
		"net": "2025-03-12T02:30:00Z",
		"status": {"id": 1, "name": "Go for Launch"},
		"rocket": {"configuration": {"name": "Falcon 9", "full_name": "Falcon 9 Block 5"}},
		"launch_service_provider": {"name": "SpaceX"},
		"mission": {"description": "A batch of Starlink satellites."},
		"image": "https://example.com/f9.png",
		"vidURLs": [{"url": "https://youtube.com/watch?v=1"}, {"url": "https://youtube.com/watch?v=2"}],
		"pad": {"name": "Space Launch Complex 40", "location": {"name": "Cape Canaveral, FL, USA"}}
	}`)

	launch, ok := ParseLaunch(data)
	require.True(t, ok)

	assert.Equal(t, "e3df2ecd-c239-472f-95e4-2b89b4f75800", launch.ExternalID)
	assert.Equal(t, "Falcon 9 Block 5 | Starlink Group 6-14", launch.Name)
	require.NotNil(t, launch.LaunchDate)
	assert.Equal(t, time.Date(2025, time.March, 12, 2, 30, 0, 0, time.UTC), *launch.LaunchDate)
	assert.Equal(t, models.LaunchStatusScheduled, launch.Status)
	assert.Equal(t, "Falcon 9 Block 5", *launch.RocketName)
	assert.Equal(t, "SpaceX", *launch.Provider)
	assert.Equal(t, "A batch of Starlink satellites.", *launch.MissionDescription)
	assert.Equal(t, "https://example.com/f9.png", *launch.ImageURL)
	assert.Equal(t, "https://youtube.com/watch?v=1", *launch.VideoURL)
	assert.Equal(t, "Space Launch Complex 40, Cape Canaveral, FL, USA", *launch.LaunchSite)
}

func TestParseLaunch_MinimalRecord(t *testing.T) {
	data := decode(t, `{"id": "abc", "name": "Mystery", "net": null, "mission": null, "image": null, "vidURLs": []}`)

	launch, ok := ParseLaunch(data)
	require.True(t, ok)

	assert.Nil(t, launch.LaunchDate)
	assert.Equal(t, models.LaunchStatusToBeDetermined, launch.Status)
	assert.Nil(t, launch.RocketName)
	assert.Nil(t, launch.Provider)
	assert.Nil(t, launch.MissionDescription)
	assert.Nil(t, launch.ImageURL)
	assert.Nil(t, launch.VideoURL)
	assert.Nil(t, launch.LaunchSite)
}

func TestParseLaunch_RequiredFields(t *testing.T) {
	_, ok := ParseLaunch(decode(t, `{"name": "No id"}`))
	assert.False(t, ok)

	_, ok = ParseLaunch(decode(t, `{"id": "no-name"}`))
	assert.False(t, ok)

	_, ok = ParseLaunch(decode(t, `{"id": "", "name": "Empty id"}`))
	assert.False(t, ok)
}

func TestParseLaunch_Fallbacks(t *testing.T) {
	data := decode(t, `{
		"id": "x",
		"name": "X",
		"net": "not a date",
		"rocket": {"configuration": {"name": "Electron"}},
		"pad": {"name": "LC-1A"}
	}`)

	launch, ok := ParseLaunch(data)
	require.True(t, ok)

	assert.Nil(t, launch.LaunchDate)
	assert.Equal(t, "Electron", *launch.RocketName)
	assert.Equal(t, "LC-1A", *launch.LaunchSite)
}

func TestParseLaunch_OffsetTimestampNormalizedToUTC(t *testing.T) {
	launch, ok := ParseLaunch(decode(t, `{"id": "x", "name": "X", "net": "2025-03-12T05:30:00+03:00"}`))
	require.True(t, ok)
	require.NotNil(t, launch.LaunchDate)
	assert.Equal(t, time.UTC, launch.LaunchDate.Location())
	assert.Equal(t, 2, launch.LaunchDate.Hour())
}

func TestMapStatus(t *testing.T) {
	tests := map[int64]models.LaunchStatus{
		1:  models.LaunchStatusScheduled,
		2:  models.LaunchStatusToBeDetermined,
		3:  models.LaunchStatusSuccess,
		4:  models.LaunchStatusFailed,
		5:  models.LaunchStatusScheduled,
		6:  models.LaunchStatusInFlight,
		7:  models.LaunchStatusPartialFailure,
		8:  models.LaunchStatusToBeDetermined,
		0:  models.LaunchStatusToBeDetermined,
		9:  models.LaunchStatusToBeDetermined,
		-1: models.LaunchStatusToBeDetermined,
	}

	for id, want := range tests {
		assert.Equal(t, want, MapStatus(id), "status id %d", id)
	}
}
