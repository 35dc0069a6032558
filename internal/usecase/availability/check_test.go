package availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	domain "github.com/promeza/agenda-api/internal/domain/agenda"
	"github.com/promeza/agenda-api/internal/httperr"
	"github.com/promeza/agenda-api/internal/models"
)

func fixtureRepo() *fakeRepo {
	consulta := &models.AppointmentType{
		ID:               "type-consulta",
		BusinessID:       "biz-1",
		Name:             "Consulta",
		DurationMinutes:  60,
		ConcurrencyLimit: 1,
		Active:           true,
	}

	hours := []models.BusinessHours{}
	for _, d := range []models.Weekday{
		models.WeekdayLunes, models.WeekdayMartes, models.WeekdayMiercoles,
		models.WeekdayJueves, models.WeekdayViernes,
	} {
		hours = append(hours, models.BusinessHours{
			BusinessID: "biz-1", Weekday: d, StartTime: "09:00", EndTime: "18:00",
		})
	}

	return &fakeRepo{
		business: &models.Business{
			ID:       "biz-1",
			Name:     "Clínica Centro",
			Slug:     "clinica-centro",
			Timezone: "America/Mexico_City",
		},
		types: map[string]*models.AppointmentType{consulta.ID: consulta},
		hours: hours,
		offers: []models.Offer{
			{
				ID:               "offer-1",
				BusinessID:       "biz-1",
				Name:             "Consultas",
				Active:           true,
				AppointmentTypes: []models.AppointmentType{*consulta},
			},
		},
	}
}

// Monday 2026-06-01 08:00 in the business zone.
func fixedNow(t *testing.T) func(tz string) time.Time {
	t.Helper()
	loc, err := time.LoadLocation("America/Mexico_City")
	require.NoError(t, err)
	now := time.Date(2026, 6, 1, 8, 0, 0, 0, loc)
	return func(string) time.Time { return now }
}

func TestCheck_Week(t *testing.T) {
	repo := fixtureRepo()
	uc := NewCheck(repo, nil)
	uc.now = fixedNow(t)

	res, err := uc.Execute(context.Background(), domain.CheckInput{
		BusinessID:  "biz-1",
		DaysToQuery: 6,
	})
	require.NoError(t, err)
	require.Equal(t, "Clínica Centro", res.Business.Name)
	require.Len(t, res.Offers, 1)
	require.Len(t, res.Offers[0].AppointmentTypes, 1)

	ta := res.Offers[0].AppointmentTypes[0]
	require.Equal(t, "Consulta", ta.Name)
	require.Equal(t, 60, ta.DurationMinutes)

	// Mon-Fri working, weekend closed and absent.
	require.Len(t, ta.AvailableDays, 5)
	require.Equal(t, "2026-06-01", ta.AvailableDays[0].Date)
	require.Equal(t, "lunes", ta.AvailableDays[0].WeekdayName)

	// 09:00 .. 17:00 hourly, all at least an hour ahead of 08:00.
	require.Len(t, ta.AvailableDays[0].Slots, 9)
	require.Equal(t, "09:00", ta.AvailableDays[0].Slots[0].Time)
	require.Equal(t, "2026-06-01T09:00:00-06:00", ta.AvailableDays[0].Slots[0].ISOTimestamp)
	require.Equal(t, "17:00", ta.AvailableDays[0].Slots[8].Time)
}

func TestCheck_BookedSlotMissing(t *testing.T) {
	repo := fixtureRepo()
	loc, _ := time.LoadLocation("America/Mexico_City")
	repo.appointments = []models.Appointment{
		{
			ID:                "ap-1",
			BusinessID:        "biz-1",
			AppointmentTypeID: "type-consulta",
			Date:              time.Date(2026, 6, 1, 10, 0, 0, 0, loc),
			Status:            domain.StatusPendiente,
		},
	}

	uc := NewCheck(repo, nil)
	uc.now = fixedNow(t)

	res, err := uc.Execute(context.Background(), domain.CheckInput{BusinessID: "biz-1", DaysToQuery: 0})
	require.NoError(t, err)

	day := res.Offers[0].AppointmentTypes[0].AvailableDays[0]
	require.Len(t, day.Slots, 8)
	for _, s := range day.Slots {
		require.NotEqual(t, "10:00", s.Time)
	}
}

func TestCheck_FullyBookedDayStaysListed(t *testing.T) {
	repo := fixtureRepo()
	loc, _ := time.LoadLocation("America/Mexico_City")

	// Shrink Tuesday to a single slot and book it.
	repo.exceptions = []models.ScheduleException{
		{BusinessID: "biz-1", Date: "2026-06-02", StartTime: "10:00", EndTime: "11:00"},
	}
	repo.appointments = []models.Appointment{
		{
			ID:                "ap-1",
			BusinessID:        "biz-1",
			AppointmentTypeID: "type-consulta",
			Date:              time.Date(2026, 6, 2, 10, 0, 0, 0, loc),
			Status:            domain.StatusPendiente,
		},
	}

	uc := NewCheck(repo, nil)
	uc.now = fixedNow(t)

	res, err := uc.Execute(context.Background(), domain.CheckInput{BusinessID: "biz-1", DaysToQuery: 1})
	require.NoError(t, err)

	days := res.Offers[0].AppointmentTypes[0].AvailableDays
	require.Len(t, days, 2)
	require.Equal(t, "2026-06-02", days[1].Date)
	require.Empty(t, days[1].Slots)
}

func TestCheck_NonWorkingExceptionDropsDay(t *testing.T) {
	repo := fixtureRepo()
	repo.exceptions = []models.ScheduleException{
		{BusinessID: "biz-1", Date: "2026-06-02", IsNonWorking: true},
	}

	uc := NewCheck(repo, nil)
	uc.now = fixedNow(t)

	res, err := uc.Execute(context.Background(), domain.CheckInput{BusinessID: "biz-1", DaysToQuery: 1})
	require.NoError(t, err)

	days := res.Offers[0].AppointmentTypes[0].AvailableDays
	require.Len(t, days, 1)
	require.Equal(t, "2026-06-01", days[0].Date)
}

func TestCheck_MisconfiguredTypeSkipped(t *testing.T) {
	repo := fixtureRepo()
	repo.offers[0].AppointmentTypes = append(repo.offers[0].AppointmentTypes, models.AppointmentType{
		ID:               "type-broken",
		BusinessID:       "biz-1",
		Name:             "Sin duración",
		DurationMinutes:  0,
		ConcurrencyLimit: 1,
	})

	uc := NewCheck(repo, nil)
	uc.now = fixedNow(t)

	res, err := uc.Execute(context.Background(), domain.CheckInput{BusinessID: "biz-1", DaysToQuery: 0})
	require.NoError(t, err)
	require.Len(t, res.Offers[0].AppointmentTypes, 1)
}

func TestCheck_BusinessNotFound(t *testing.T) {
	uc := NewCheck(fixtureRepo(), nil)
	uc.now = fixedNow(t)

	_, err := uc.Execute(context.Background(), domain.CheckInput{BusinessID: "nope", DaysToQuery: 1})
	require.True(t, httperr.IsBusiness(err, "business_not_found"))
}
