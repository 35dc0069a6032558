package appointment

import (
	"context"

	"github.com/promeza/agenda-api/internal/audit"
	domain "github.com/promeza/agenda-api/internal/domain/agenda"
	"github.com/promeza/agenda-api/internal/models"
	"github.com/promeza/agenda-api/internal/timezone"
)

type CancelAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCancelAppointment(
	repo domain.Repository,
	dispatcher *audit.Dispatcher,
) *CancelAppointment {
	return &CancelAppointment{
		repo:  repo,
		audit: dispatcher,
	}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	businessID string,
	appointmentID string,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentForBusiness(ctx, appointmentID, businessID)
	if err != nil {
		return nil, err
	}

	if err := domain.Cancel(ap, timezone.Now()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BusinessID: businessID,
		Action:     "appointment_cancelled",
		Entity:     "appointment",
		EntityID:   ap.ID,
	})

	return ap, nil
}
