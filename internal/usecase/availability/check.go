package availability

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/promeza/agenda-api/internal/cache"
	domain "github.com/promeza/agenda-api/internal/domain/agenda"
	"github.com/promeza/agenda-api/internal/httperr"
	"github.com/promeza/agenda-api/internal/models"
	"github.com/promeza/agenda-api/internal/timezone"
)

// Check computes the bookable slots for every appointment type a business
// offers, over the next N days.
type Check struct {
	repo  domain.Repository
	cache *cache.ScheduleCache
	now   func(tz string) time.Time
}

func NewCheck(repo domain.Repository, snapCache *cache.ScheduleCache) *Check {
	return &Check{
		repo:  repo,
		cache: snapCache,
		now:   timezone.NowIn,
	}
}

func (uc *Check) Execute(
	ctx context.Context,
	in domain.CheckInput,
) (*domain.CheckResult, error) {

	business, err := uc.repo.GetBusinessByID(ctx, in.BusinessID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("business_not_found")
		}
		return nil, err
	}

	loc := timezone.Location(business.Timezone)
	now := uc.now(business.Timezone)

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	// [today, today+daysToQuery] inclusive
	windowEnd := dayStart.AddDate(0, 0, in.DaysToQuery+1)

	snap, err := uc.loadSnapshot(ctx, business.ID, dayStart, windowEnd)
	if err != nil {
		return nil, err
	}

	result := &domain.CheckResult{
		Business: domain.BusinessRef{ID: business.ID, Name: business.Name},
		Offers:   []domain.OfferAvailability{},
	}

	for i := range snap.Offers {
		offer := &snap.Offers[i]

		oa := domain.OfferAvailability{
			ID:               offer.ID,
			Name:             offer.Name,
			AppointmentTypes: []domain.TypeAvailability{},
		}

		for j := range offer.AppointmentTypes {
			apptType := &offer.AppointmentTypes[j]
			if apptType.DurationMinutes <= 0 || apptType.ConcurrencyLimit <= 0 {
				continue
			}

			oa.AppointmentTypes = append(oa.AppointmentTypes, domain.TypeAvailability{
				ID:              apptType.ID,
				Name:            apptType.Name,
				DurationMinutes: apptType.DurationMinutes,
				AvailableDays:   uc.daysFor(snap, apptType, dayStart, in.DaysToQuery, loc, now),
			})
		}

		result.Offers = append(result.Offers, oa)
	}

	return result, nil
}

// daysFor enumerates the working days of the window and their free slots.
// Closed days are skipped; a working day that is fully booked still appears,
// with an empty slot list.
func (uc *Check) daysFor(
	snap *domain.Snapshot,
	apptType *models.AppointmentType,
	dayStart time.Time,
	daysToQuery int,
	loc *time.Location,
	now time.Time,
) []domain.DayAvailability {

	duration := time.Duration(apptType.DurationMinutes) * time.Minute

	days := []domain.DayAvailability{}
	for i := 0; i <= daysToQuery; i++ {
		day := dayStart.AddDate(0, 0, i)

		if !domain.IsWorkingDay(day, loc, snap.Hours, snap.Exceptions) {
			continue
		}

		winStart, winEnd, ok := domain.EffectiveWindow(day, loc, snap.Hours, snap.Exceptions)
		if !ok {
			continue
		}

		starts := domain.SlotsForDay(winStart, winEnd, duration, now, apptType, snap.Appointments)

		slots := []domain.Slot{}
		for _, s := range starts {
			slots = append(slots, domain.Slot{
				Time:         s.In(loc).Format("15:04"),
				ISOTimestamp: s.In(loc).Format(time.RFC3339),
			})
		}

		days = append(days, domain.DayAvailability{
			Date:        domain.DateKey(day, loc),
			WeekdayName: domain.WeekdayDisplayName(domain.WeekdayOf(day, loc)),
			Slots:       slots,
		})
	}

	return days
}

func (uc *Check) loadSnapshot(
	ctx context.Context,
	businessID string,
	from, to time.Time,
) (*domain.Snapshot, error) {

	key := cache.Key(businessID, from, to)
	if snap, ok := uc.cache.GetSnapshot(ctx, key); ok {
		return snap, nil
	}

	snap, err := uc.repo.LoadSnapshot(ctx, businessID, from, to, true)
	if err != nil {
		return nil, err
	}

	uc.cache.SetSnapshot(ctx, key, snap)
	return snap, nil
}
