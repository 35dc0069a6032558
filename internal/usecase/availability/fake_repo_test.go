package availability

import (
	"context"
	"time"

	"gorm.io/gorm"

	domain "github.com/promeza/agenda-api/internal/domain/agenda"
	"github.com/promeza/agenda-api/internal/models"
)

// fakeRepo serves a single business fixture from memory.
type fakeRepo struct {
	business     *models.Business
	types        map[string]*models.AppointmentType
	hours        []models.BusinessHours
	exceptions   []models.ScheduleException
	appointments []models.Appointment
	offers       []models.Offer
}

var _ domain.Repository = (*fakeRepo)(nil)

func (r *fakeRepo) GetBusinessByID(_ context.Context, id string) (*models.Business, error) {
	if r.business == nil || r.business.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return r.business, nil
}

func (r *fakeRepo) GetBusinessBySlug(_ context.Context, slug string) (*models.Business, error) {
	if r.business == nil || r.business.Slug != slug {
		return nil, gorm.ErrRecordNotFound
	}
	return r.business, nil
}

func (r *fakeRepo) GetAppointmentType(_ context.Context, businessID, typeID string) (*models.AppointmentType, error) {
	t, ok := r.types[typeID]
	if !ok || t.BusinessID != businessID {
		return nil, gorm.ErrRecordNotFound
	}
	return t, nil
}

func (r *fakeRepo) LoadSnapshot(_ context.Context, businessID string, from, to time.Time, withOffers bool) (*domain.Snapshot, error) {
	snap := &domain.Snapshot{
		Business:   r.business,
		Hours:      r.hours,
		Exceptions: r.exceptions,
	}
	for _, ap := range r.appointments {
		if ap.Status == domain.StatusPendiente && !ap.Date.Before(from) && ap.Date.Before(to) {
			snap.Appointments = append(snap.Appointments, ap)
		}
	}
	if withOffers {
		snap.Offers = r.offers
	}
	return snap, nil
}

func (r *fakeRepo) GetOrCreateLead(_ context.Context, businessID, name, phone, email string) (*models.Lead, error) {
	return &models.Lead{ID: "lead-1", BusinessID: businessID, Name: name, Phone: phone, Email: email}, nil
}

func (r *fakeRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	r.appointments = append(r.appointments, *ap)
	return nil
}

func (r *fakeRepo) GetAppointmentForBusiness(_ context.Context, appointmentID, businessID string) (*models.Appointment, error) {
	for i := range r.appointments {
		if r.appointments[i].ID == appointmentID && r.appointments[i].BusinessID == businessID {
			return &r.appointments[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	for i := range r.appointments {
		if r.appointments[i].ID == ap.ID {
			r.appointments[i] = *ap
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}
