package appointment

import (
	"context"

	"github.com/promeza/agenda-api/internal/audit"
	domain "github.com/promeza/agenda-api/internal/domain/agenda"
	"github.com/promeza/agenda-api/internal/models"
	"github.com/promeza/agenda-api/internal/timezone"
)

type CompleteAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCompleteAppointment(
	repo domain.Repository,
	dispatcher *audit.Dispatcher,
) *CompleteAppointment {
	return &CompleteAppointment{
		repo:  repo,
		audit: dispatcher,
	}
}

func (uc *CompleteAppointment) Execute(
	ctx context.Context,
	businessID string,
	appointmentID string,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentForBusiness(ctx, appointmentID, businessID)
	if err != nil {
		return nil, err
	}

	if err := domain.Complete(ap, timezone.Now()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BusinessID: businessID,
		Action:     "appointment_completed",
		Entity:     "appointment",
		EntityID:   ap.ID,
	})

	return ap, nil
}
