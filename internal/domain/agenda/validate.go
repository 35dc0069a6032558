package agenda

import (
	"time"

	"github.com/promeza/agenda-api/internal/models"
)

// RejectReason classifies why a single requested instant cannot be booked.
// The zero value means the instant is bookable.
type RejectReason int

const (
	ReasonNone RejectReason = iota
	ReasonPast
	ReasonExceptionClosed
	ReasonClosedWeekday
	ReasonOutsideHours
	ReasonConcurrencyFull
)

// PointCheck is the outcome of validating one instant. Hours carries the
// weekday row that was consulted so callers can tell the user the valid
// range.
type PointCheck struct {
	Reason RejectReason
	Hours  *models.BusinessHours
}

func (p PointCheck) Available() bool {
	return p.Reason == ReasonNone
}

// ValidatePoint runs the ordered availability rules for a single instant,
// short-circuiting on the first failure: past, special-day closure, closed
// weekday, outside hours, concurrency full.
func ValidatePoint(
	instant time.Time,
	now time.Time,
	loc *time.Location,
	apptType *models.AppointmentType,
	hours []models.BusinessHours,
	exceptions []models.ScheduleException,
	appointments []models.Appointment,
) PointCheck {

	if instant.Before(now) {
		return PointCheck{Reason: ReasonPast}
	}

	if exc := FindException(instant, loc, exceptions); exc != nil && exc.IsNonWorking {
		return PointCheck{Reason: ReasonExceptionClosed}
	}

	wh := HoursForWeekday(WeekdayOf(instant, loc), hours)
	if wh == nil {
		return PointCheck{Reason: ReasonClosedWeekday}
	}

	// Wall-clock comparison on HH:MM strings, zone-resolved: within
	// [start, end).
	requested := instant.In(loc).Format("15:04")
	if requested < wh.StartTime || requested >= wh.EndTime {
		return PointCheck{Reason: ReasonOutsideHours, Hours: wh}
	}

	duration := time.Duration(apptType.DurationMinutes) * time.Minute
	if CountOverlapping(instant, duration, apptType.ID, appointments) >= apptType.ConcurrencyLimit {
		return PointCheck{Reason: ReasonConcurrencyFull, Hours: wh}
	}

	return PointCheck{Hours: wh}
}
