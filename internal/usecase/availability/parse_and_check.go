package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/promeza/agenda-api/internal/cache"
	domain "github.com/promeza/agenda-api/internal/domain/agenda"
	"github.com/promeza/agenda-api/internal/httperr"
	"github.com/promeza/agenda-api/internal/nlp/dateparse"
	"github.com/promeza/agenda-api/internal/timezone"
)

// ParseAndCheck resolves a free-text date phrase to an instant in the
// business timezone and validates that single instant against the schedule
// rules. Every rejection is a normal domain outcome with a user-facing
// Spanish message; only repository faults surface as errors.
type ParseAndCheck struct {
	repo     domain.Repository
	resolver dateparse.Resolver
	cache    *cache.ScheduleCache
	now      func(tz string) time.Time
}

func NewParseAndCheck(
	repo domain.Repository,
	resolver dateparse.Resolver,
	snapCache *cache.ScheduleCache,
) *ParseAndCheck {
	return &ParseAndCheck{
		repo:     repo,
		resolver: resolver,
		cache:    snapCache,
		now:      timezone.NowIn,
	}
}

func (uc *ParseAndCheck) Execute(
	ctx context.Context,
	in domain.ParseAndCheckInput,
) (*domain.ParseAndCheckResult, error) {

	business, err := uc.repo.GetBusinessByID(ctx, in.BusinessID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("business_not_found")
		}
		return nil, err
	}

	apptType, err := uc.repo.GetAppointmentType(ctx, in.BusinessID, in.AppointmentTypeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("appointment_type_not_found")
		}
		return nil, err
	}

	loc := timezone.Location(business.Timezone)
	now := uc.now(business.Timezone)

	instant, ok := uc.resolver.Resolve(in.FreeText, now)
	if !ok {
		return &domain.ParseAndCheckResult{
			Available: false,
			Message:   "No pude entender la fecha y hora que mencionaste. ¿Podrías ser más específico?",
		}, nil
	}

	dayStart := time.Date(instant.Year(), instant.Month(), instant.Day(), 0, 0, 0, 0, loc)
	snap, err := uc.loadSnapshot(ctx, business.ID, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	check := domain.ValidatePoint(instant, now, loc, apptType, snap.Hours, snap.Exceptions, snap.Appointments)

	result := &domain.ParseAndCheckResult{Available: check.Available()}

	switch check.Reason {
	case domain.ReasonPast:
		result.Message = fmt.Sprintf(
			"Lo sentimos, la fecha que buscas (%s) ya pasó.",
			formatLongES(instant.In(loc)),
		)

	case domain.ReasonExceptionClosed:
		result.Message = fmt.Sprintf(
			"Lo sentimos, el día %s no estamos disponibles por un evento especial.",
			formatDayES(instant.In(loc)),
		)

	case domain.ReasonClosedWeekday:
		result.Message = fmt.Sprintf(
			"Lo sentimos, no atendemos los %s.",
			domain.WeekdayDisplayName(domain.WeekdayOf(instant, loc)),
		)

	case domain.ReasonOutsideHours:
		result.Message = fmt.Sprintf(
			"Nuestros horarios para los %s son de %s a %s. Por favor, elige una hora dentro de ese rango.",
			domain.WeekdayDisplayName(domain.WeekdayOf(instant, loc)),
			check.Hours.StartTime,
			check.Hours.EndTime,
		)

	case domain.ReasonConcurrencyFull:
		result.Message = "Lo siento, ese horario acaba de ser ocupado. Por favor, elige otro."

	default:
		result.Message = fmt.Sprintf(
			"¡Perfecto! El horario del %s está disponible.",
			formatLongES(instant.In(loc)),
		)
		result.ISOTimestamp = instant.In(loc).Format(time.RFC3339)
	}

	return result, nil
}

func (uc *ParseAndCheck) loadSnapshot(
	ctx context.Context,
	businessID string,
	from, to time.Time,
) (*domain.Snapshot, error) {

	key := cache.Key(businessID, from, to)
	if snap, ok := uc.cache.GetSnapshot(ctx, key); ok {
		return snap, nil
	}

	snap, err := uc.repo.LoadSnapshot(ctx, businessID, from, to, false)
	if err != nil {
		return nil, err
	}

	uc.cache.SetSnapshot(ctx, key, snap)
	return snap, nil
}
