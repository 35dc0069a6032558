package agenda

import (
	"time"

	"github.com/promeza/agenda-api/internal/models"
)

// DateKey is the canonical calendar-day representation used to match
// exceptions: YYYY-MM-DD in the business zone.
func DateKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02")
}

// FindException returns the exception row for the calendar day of t, if any.
func FindException(t time.Time, loc *time.Location, exceptions []models.ScheduleException) *models.ScheduleException {
	key := DateKey(t, loc)
	for i := range exceptions {
		if exceptions[i].Date == key {
			return &exceptions[i]
		}
	}
	return nil
}

// HoursForWeekday returns the recurring row for the weekday, if configured.
func HoursForWeekday(day models.Weekday, hours []models.BusinessHours) *models.BusinessHours {
	for i := range hours {
		if NormalizeWeekday(string(hours[i].Weekday)) == day {
			return &hours[i]
		}
	}
	return nil
}

// IsWorkingDay reports whether the calendar day of t is bookable at all.
// A non-working exception always wins; otherwise the day works iff a
// recurring row exists for its weekday. Absence of hours is a normal
// "closed" outcome, never an error.
func IsWorkingDay(t time.Time, loc *time.Location, hours []models.BusinessHours, exceptions []models.ScheduleException) bool {
	if exc := FindException(t, loc, exceptions); exc != nil {
		if exc.IsNonWorking {
			return false
		}
		if exc.StartTime != "" && exc.EndTime != "" {
			return true
		}
	}
	return HoursForWeekday(WeekdayOf(t, loc), hours) != nil
}

// EffectiveWindow resolves the open/close instants for the calendar day of t.
// An exception override takes precedence over the recurring weekly hours.
// ok is false when the day is closed.
func EffectiveWindow(t time.Time, loc *time.Location, hours []models.BusinessHours, exceptions []models.ScheduleException) (start, end time.Time, ok bool) {
	startHM, endHM := "", ""

	if exc := FindException(t, loc, exceptions); exc != nil {
		if exc.IsNonWorking {
			return time.Time{}, time.Time{}, false
		}
		if exc.StartTime != "" && exc.EndTime != "" {
			startHM, endHM = exc.StartTime, exc.EndTime
		}
	}

	if startHM == "" {
		wh := HoursForWeekday(WeekdayOf(t, loc), hours)
		if wh == nil {
			return time.Time{}, time.Time{}, false
		}
		startHM, endHM = wh.StartTime, wh.EndTime
	}

	start, okStart := atWallClock(t, loc, startHM)
	end, okEnd := atWallClock(t, loc, endHM)
	if !okStart || !okEnd || !start.Before(end) {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

// atWallClock pins an HH:MM wall-clock string onto the calendar day of t in
// the given zone.
func atWallClock(t time.Time, loc *time.Location, hm string) (time.Time, bool) {
	parsed, err := time.Parse("15:04", hm)
	if err != nil {
		return time.Time{}, false
	}
	d := t.In(loc)
	return time.Date(
		d.Year(), d.Month(), d.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0,
		loc,
	), true
}
