package service

import (
	"fmt"
	"time"
)

// FormatCountdown - строка обратного отсчета до запуска относительно now
func FormatCountdown(launchDate *time.Time, now time.Time) string {
	if launchDate == nil {
		return "TBD"
	}

	remaining := launchDate.Sub(now)
	if remaining < 0 {
		return "Launched"
	}

	// Целочисленное деление отбрасывает дробную часть
	if days := int(remaining / (24 * time.Hour)); days > 0 {
		return fmt.Sprintf("T-%d day%s", days, plural(days))
	}
	if hours := int(remaining / time.Hour); hours > 0 {
		return fmt.Sprintf("T-%d hour%s", hours, plural(hours))
	}
	minutes := int(remaining / time.Minute)
	return fmt.Sprintf("T-%d min%s", minutes, plural(minutes))
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
