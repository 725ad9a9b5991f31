package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatCountdown(t *testing.T) {
	now := testNow

	tests := []struct {
		name string
		date *time.Time
		want string
	}{
		{name: "no date", date: nil, want: "TBD"},
		{name: "in the past", date: timePtr(now.Add(-time.Second)), want: "Launched"},
		{name: "exactly now", date: timePtr(now), want: "T-0 mins"},
		{name: "one minute", date: timePtr(now.Add(time.Minute + 30*time.Second)), want: "T-1 min"},
		{name: "59 minutes", date: timePtr(now.Add(59*time.Minute + 59*time.Second)), want: "T-59 mins"},
		{name: "one hour", date: timePtr(now.Add(time.Hour)), want: "T-1 hour"},
		{name: "ninety minutes", date: timePtr(now.Add(90 * time.Minute)), want: "T-1 hour"},
		{name: "23 hours", date: timePtr(now.Add(23*time.Hour + 59*time.Minute)), want: "T-23 hours"},
		{name: "one day", date: timePtr(now.Add(24 * time.Hour)), want: "T-1 day"},
		{name: "two and a half days", date: timePtr(now.Add(60 * time.Hour)), want: "T-2 days"},
		{name: "three days", date: timePtr(now.Add(3 * 24 * time.Hour)), want: "T-3 days"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCountdown(tt.date, now))
		})
	}
}
