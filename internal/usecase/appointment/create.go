package appointment

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/promeza/agenda-api/internal/audit"
	domain "github.com/promeza/agenda-api/internal/domain/agenda"
	"github.com/promeza/agenda-api/internal/httperr"
	"github.com/promeza/agenda-api/internal/models"
	"github.com/promeza/agenda-api/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	BusinessID string

	AppointmentTypeID string

	LeadName  string
	LeadPhone string
	LeadEmail string

	Date  string // YYYY-MM-DD
	Time  string // HH:mm
	Notes string
}

// ======================================================
// USE CASE
// ======================================================

// CreateAppointment is the write path. The availability endpoints only read
// and hold no reservation, so the same point validation runs again here
// before the insert.
type CreateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   func(tz string) time.Time
}

func NewCreateAppointment(
	repo domain.Repository,
	dispatcher *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: dispatcher,
		now:   timezone.NowIn,
	}
}

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	business, err := uc.repo.GetBusinessByID(ctx, in.BusinessID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("business_not_found")
		}
		return nil, err
	}

	loc := timezone.Location(business.Timezone)

	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		loc,
	)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	now := uc.now(business.Timezone)
	if start.Before(now.Add(domain.MinLeadTime)) {
		return nil, httperr.ErrBusiness("too_soon")
	}

	apptType, err := uc.repo.GetAppointmentType(ctx, in.BusinessID, in.AppointmentTypeID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_type_not_found")
	}

	dayStart := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc)
	snap, err := uc.repo.LoadSnapshot(ctx, business.ID, dayStart, dayStart.AddDate(0, 0, 1), false)
	if err != nil {
		return nil, err
	}

	check := domain.ValidatePoint(start, now, loc, apptType, snap.Hours, snap.Exceptions, snap.Appointments)
	switch check.Reason {
	case domain.ReasonNone:
		// bookable
	case domain.ReasonConcurrencyFull:
		return nil, httperr.ErrBusiness("time_conflict")
	default:
		return nil, httperr.ErrBusiness("outside_working_hours")
	}

	lead, err := uc.repo.GetOrCreateLead(
		ctx,
		in.BusinessID,
		in.LeadName,
		in.LeadPhone,
		in.LeadEmail,
	)
	if err != nil {
		return nil, err
	}

	ap := &models.Appointment{
		BusinessID:        in.BusinessID,
		AppointmentTypeID: apptType.ID,
		LeadID:            lead.ID,
		Subject:           apptType.Name,
		Date:              start,
		Status:            domain.InitialStatus(),
		Notes:             in.Notes,
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BusinessID: in.BusinessID,
		Action:     "appointment_created",
		Entity:     "appointment",
		EntityID:   ap.ID,
	})

	return ap, nil
}
