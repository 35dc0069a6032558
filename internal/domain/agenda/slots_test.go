package agenda

import (
	"testing"
	"time"

	"github.com/promeza/agenda-api/internal/models"
)

func mustLoc(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Mexico_City")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	return loc
}

// Monday 2026-06-01.
func testDay(loc *time.Location) time.Time {
	return time.Date(2026, 6, 1, 0, 0, 0, 0, loc)
}

func oneHourType() *models.AppointmentType {
	return &models.AppointmentType{
		ID:               "type-1",
		DurationMinutes:  60,
		ConcurrencyLimit: 1,
	}
}

func TestSlotsForDay_FullDay(t *testing.T) {
	loc := mustLoc(t)
	day := testDay(loc)

	dayStart := day.Add(9 * time.Hour)
	dayEnd := day.Add(18 * time.Hour)
	now := day.Add(8 * time.Hour)

	slots := SlotsForDay(dayStart, dayEnd, time.Hour, now, oneHourType(), nil)
	if len(slots) != 9 {
		t.Fatalf("expected 9 slots, got %d", len(slots))
	}
	if !slots[0].Equal(dayStart) {
		t.Fatalf("expected first slot 09:00, got %s", slots[0].Format("15:04"))
	}
	if !slots[8].Equal(day.Add(17 * time.Hour)) {
		t.Fatalf("expected last slot 17:00, got %s", slots[8].Format("15:04"))
	}
}

func TestSlotsForDay_BookedSlotExcluded(t *testing.T) {
	loc := mustLoc(t)
	day := testDay(loc)

	booked := []models.Appointment{
		{
			AppointmentTypeID: "type-1",
			Date:              day.Add(10 * time.Hour),
			Status:            StatusPendiente,
		},
	}

	slots := SlotsForDay(day.Add(9*time.Hour), day.Add(18*time.Hour), time.Hour, day.Add(8*time.Hour), oneHourType(), booked)
	if len(slots) != 8 {
		t.Fatalf("expected 8 slots, got %d", len(slots))
	}
	for _, s := range slots {
		if s.Equal(day.Add(10 * time.Hour)) {
			t.Fatalf("booked slot 10:00 should be excluded")
		}
	}
}

func TestSlotsForDay_CancelledDoesNotBlock(t *testing.T) {
	loc := mustLoc(t)
	day := testDay(loc)

	appointments := []models.Appointment{
		{AppointmentTypeID: "type-1", Date: day.Add(10 * time.Hour), Status: StatusCancelada},
		{AppointmentTypeID: "other-type", Date: day.Add(11 * time.Hour), Status: StatusPendiente},
	}

	slots := SlotsForDay(day.Add(9*time.Hour), day.Add(18*time.Hour), time.Hour, day.Add(8*time.Hour), oneHourType(), appointments)
	if len(slots) != 9 {
		t.Fatalf("cancelled and other-type appointments must not block, got %d slots", len(slots))
	}
}

func TestSlotsForDay_LeadTime(t *testing.T) {
	loc := mustLoc(t)
	day := testDay(loc)

	// now 09:30 -> earliest bookable start is 10:30, so 10:00 is out.
	now := day.Add(9*time.Hour + 30*time.Minute)

	slots := SlotsForDay(day.Add(9*time.Hour), day.Add(18*time.Hour), time.Hour, now, oneHourType(), nil)
	if len(slots) != 7 {
		t.Fatalf("expected 7 slots, got %d", len(slots))
	}
	if !slots[0].Equal(day.Add(11 * time.Hour)) {
		t.Fatalf("expected first slot 11:00, got %s", slots[0].Format("15:04"))
	}
}

func TestSlotsForDay_ConcurrencyLimitTwo(t *testing.T) {
	loc := mustLoc(t)
	day := testDay(loc)

	apptType := &models.AppointmentType{ID: "type-1", DurationMinutes: 60, ConcurrencyLimit: 2}
	appointments := []models.Appointment{
		{AppointmentTypeID: "type-1", Date: day.Add(10 * time.Hour), Status: StatusPendiente},
	}

	slots := SlotsForDay(day.Add(9*time.Hour), day.Add(18*time.Hour), time.Hour, day.Add(8*time.Hour), apptType, appointments)

	// One booking against a limit of two leaves 10:00 offered.
	found := false
	for _, s := range slots {
		if s.Equal(day.Add(10 * time.Hour)) {
			found = true
		}
	}
	if !found {
		t.Fatalf("10:00 should still be offered with concurrency limit 2")
	}
}

func TestSlotsForDay_PartialSlotNotEmitted(t *testing.T) {
	loc := mustLoc(t)
	day := testDay(loc)

	// 9:00-10:30 window with 60-minute duration fits exactly one slot.
	slots := SlotsForDay(day.Add(9*time.Hour), day.Add(10*time.Hour+30*time.Minute), time.Hour, day.Add(8*time.Hour), oneHourType(), nil)
	if len(slots) != 1 {
		t.Fatalf("expected 1 slot, got %d", len(slots))
	}
}

func TestOverlaps_Adjacent(t *testing.T) {
	loc := mustLoc(t)
	day := testDay(loc)

	a := day.Add(9 * time.Hour)
	b := day.Add(10 * time.Hour)

	if Overlaps(a, a.Add(time.Hour), b, b.Add(time.Hour)) {
		t.Fatalf("back-to-back intervals must not overlap")
	}
	if !Overlaps(a, a.Add(90*time.Minute), b, b.Add(time.Hour)) {
		t.Fatalf("intervals sharing 30 minutes must overlap")
	}
}

func TestCountOverlapping_OnlyPendingSameType(t *testing.T) {
	loc := mustLoc(t)
	day := testDay(loc)
	at := day.Add(10 * time.Hour)

	appointments := []models.Appointment{
		{AppointmentTypeID: "type-1", Date: at, Status: StatusPendiente},
		{AppointmentTypeID: "type-1", Date: at, Status: StatusCancelada},
		{AppointmentTypeID: "type-1", Date: at, Status: StatusCompletada},
		{AppointmentTypeID: "type-2", Date: at, Status: StatusPendiente},
		{AppointmentTypeID: "type-1", Date: at.Add(30 * time.Minute), Status: StatusPendiente},
	}

	got := CountOverlapping(at, time.Hour, "type-1", appointments)
	if got != 2 {
		t.Fatalf("expected 2 overlapping, got %d", got)
	}
}
