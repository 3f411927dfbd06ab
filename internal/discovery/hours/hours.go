// internal/discovery/hours/hours.go

// Package hours evaluates a business's weekly schedule against a point in
// time.
package hours

import (
	"strings"
	"time"

	"discovery-service/internal/models"
)

// IsOpenAt reports whether a business with the given weekly schedule is open
// at now.
//
// When the business location carries an IANA time zone the caller should pass
// now already converted via InBusinessZone; otherwise now is evaluated as
// given. The day's window is inclusive on both ends, compared as zero-padded
// "HH:MM" strings (lexicographic order equals numeric order for that format).
// A window whose close time precedes its open time wraps past midnight:
// 22:00-02:00 is open at 23:00 and at 01:00.
func IsOpenAt(h models.OperatingHours, now time.Time) bool {
	if len(h) == 0 {
		return false
	}

	day := strings.ToLower(now.Weekday().String())
	sched, ok := h[day]
	if !ok || !sched.IsOpen {
		return false
	}
	if sched.Is24Hours {
		return true
	}
	if sched.OpenTime == "" || sched.CloseTime == "" {
		return false
	}

	cur := now.Format("15:04")
	if sched.CloseTime < sched.OpenTime {
		// Overnight window wrapping past midnight.
		return cur >= sched.OpenTime || cur <= sched.CloseTime
	}
	return cur >= sched.OpenTime && cur <= sched.CloseTime
}

// InBusinessZone converts now into the location's time zone when one is set.
// An empty or unknown zone leaves now untouched, which matches evaluating
// against the caller's local clock.
func InBusinessZone(loc models.LocationReading, now time.Time) time.Time {
	if loc.Timezone == "" {
		return now
	}
	tz, err := time.LoadLocation(loc.Timezone)
	if err != nil {
		return now
	}
	return now.In(tz)
}
