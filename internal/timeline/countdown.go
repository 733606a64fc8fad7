package timeline

import (
	"time"

	"github.com/cuenta-regresiva/backend/internal/models"
)

const (
	secondsPerDay    = 86400
	secondsPerHour   = 3600
	secondsPerMinute = 60
)

// Decompose splits d into whole days, hours, minutes and seconds.
// Fractions of a second are dropped; negative durations decompose to zero.
func Decompose(d time.Duration) models.Breakdown {
	total := int64(d / time.Second)
	if total <= 0 {
		return models.Breakdown{}
	}
	days := total / secondsPerDay
	rem := total % secondsPerDay
	hours := rem / secondsPerHour
	rem %= secondsPerHour
	return models.Breakdown{
		Days:    days,
		Hours:   int(hours),
		Minutes: int(rem / secondsPerMinute),
		Seconds: int(rem % secondsPerMinute),
	}
}

// Remaining returns the breakdown until event and whether the event has
// already been reached. Past the event the breakdown stays at zero.
func Remaining(now, event time.Time) (models.Breakdown, bool) {
	if !now.Before(event) {
		return models.Breakdown{}, true
	}
	return Decompose(event.Sub(now)), false
}
