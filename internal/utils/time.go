package utils

import (
	"fmt"
	"time"
)

// StartOfDay truncates t to midnight UTC. Attendance records key on
// this value, so it must be stable regardless of the caller's zone.
func StartOfDay(t time.Time) time.Time {
	t = t.UTC()
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).Add(24*time.Hour - time.Nanosecond)
}

// HoursBetween returns the elapsed time between two instants in
// fractional hours.
func HoursBetween(from, to time.Time) float64 {
	return to.Sub(from).Hours()
}

func FormatTimeISO(t time.Time) string {
	return t.Format(time.RFC3339)
}

func ParseTimeISO(timeStr string) (time.Time, error) {
	return time.Parse(time.RFC3339, timeStr)
}

// ParseLicenseExpiry parses the DD-MM-YYYY date format the vehicle
// registry accepts over the wire.
func ParseLicenseExpiry(s string) (time.Time, error) {
	t, err := time.Parse(LicenseExpiryLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: license_expiry must be DD-MM-YYYY", ErrValidation)
	}
	return t, nil
}

func FormatDuration(duration time.Duration) string {
	hours := int(duration.Hours())
	minutes := int(duration.Minutes()) % 60
	seconds := int(duration.Seconds()) % 60

	if hours > 0 {
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	} else if minutes > 0 {
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}
	return fmt.Sprintf("%ds", seconds)
}
