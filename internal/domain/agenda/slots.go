package agenda

import (
	"time"

	"github.com/promeza/agenda-api/internal/models"
)

// MinLeadTime is the minimum distance between "now" and a bookable slot
// start. Slots about to begin are never offered.
const MinLeadTime = time.Hour

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// CountOverlapping counts active appointments of the given type whose window
// intersects [start, start+duration). Existing appointments occupy the same
// duration as the type being booked.
func CountOverlapping(start time.Time, duration time.Duration, typeID string, appointments []models.Appointment) int {
	end := start.Add(duration)
	count := 0
	for i := range appointments {
		ap := &appointments[i]
		if ap.Status != StatusPendiente {
			continue
		}
		if ap.AppointmentTypeID != typeID {
			continue
		}
		if Overlaps(start, end, ap.Date, ap.Date.Add(duration)) {
			count++
		}
	}
	return count
}

// SlotsForDay walks [dayStart, dayEnd) in duration increments and returns
// the starts that are at least MinLeadTime in the future and still under the
// type's concurrency limit. Results are in ascending order by construction.
func SlotsForDay(
	dayStart, dayEnd time.Time,
	duration time.Duration,
	now time.Time,
	apptType *models.AppointmentType,
	appointments []models.Appointment,
) []time.Time {
	if duration <= 0 || !dayStart.Before(dayEnd) {
		return nil
	}

	minStart := now.Add(MinLeadTime)

	var slots []time.Time
	for cur := dayStart; !cur.Add(duration).After(dayEnd); cur = cur.Add(duration) {
		if cur.Before(minStart) {
			continue
		}
		if CountOverlapping(cur, duration, apptType.ID, appointments) >= apptType.ConcurrencyLimit {
			continue
		}
		slots = append(slots, cur)
	}
	return slots
}
