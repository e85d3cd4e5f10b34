package schedule

import (
	"time"

	"habitcircle_backend/internal/model"
)

// JST is the application's fixed zone. All calendar math is done against this
// offset, never against the host's local zone.
var JST = time.FixedZone("JST", 9*60*60)

// Windows holds the period starts for the current tick and the recurrence
// frequencies that are due for evaluation on it.
type Windows struct {
	Now          time.Time
	StartOfDay   time.Time
	StartOfWeek  time.Time
	StartOfMonth time.Time
	Active       []model.Frequency
}

// Resolve computes JST calendar windows for the given instant.
//
// DAILY is always active. WEEKLY is active only on Sunday (the week runs
// Monday through Sunday and is judged once, at its end). MONTHLY is active
// only on the last calendar day of the month.
func Resolve(now time.Time) Windows {
	local := now.In(JST)

	startOfDay := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, JST)

	weekday := int(local.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday
	}
	startOfWeek := startOfDay.AddDate(0, 0, -(weekday - 1))

	startOfMonth := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, JST)

	active := []model.Frequency{model.FrequencyDaily}
	if local.Weekday() == time.Sunday {
		active = append(active, model.FrequencyWeekly)
	}
	// Day 0 of the following month normalizes to the last day of this one.
	lastOfMonth := time.Date(local.Year(), local.Month()+1, 0, 0, 0, 0, 0, JST)
	if local.Day() == lastOfMonth.Day() {
		active = append(active, model.FrequencyMonthly)
	}

	return Windows{
		Now:          local,
		StartOfDay:   startOfDay,
		StartOfWeek:  startOfWeek,
		StartOfMonth: startOfMonth,
		Active:       active,
	}
}

// Start returns the window start for a frequency, or false if that frequency
// is not due for evaluation on this tick.
func (w Windows) Start(f model.Frequency) (time.Time, bool) {
	for _, a := range w.Active {
		if a != f {
			continue
		}
		switch f {
		case model.FrequencyDaily:
			return w.StartOfDay, true
		case model.FrequencyWeekly:
			return w.StartOfWeek, true
		case model.FrequencyMonthly:
			return w.StartOfMonth, true
		}
	}
	return time.Time{}, false
}
