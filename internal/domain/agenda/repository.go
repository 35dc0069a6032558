package agenda

import (
	"context"
	"time"

	"github.com/promeza/agenda-api/internal/models"
)

// Snapshot is everything the availability core needs, read once per request.
// The core never writes; callers that persist bookings must re-check
// availability at write time.
type Snapshot struct {
	Business     *models.Business
	Hours        []models.BusinessHours
	Exceptions   []models.ScheduleException
	Appointments []models.Appointment
	Offers       []models.Offer
}

type Repository interface {
	// -------- Business --------
	GetBusinessByID(
		ctx context.Context,
		id string,
	) (*models.Business, error)

	GetBusinessBySlug(
		ctx context.Context,
		slug string,
	) (*models.Business, error)

	// -------- Appointment type --------
	GetAppointmentType(
		ctx context.Context,
		businessID string,
		typeID string,
	) (*models.AppointmentType, error)

	// -------- Availability snapshot --------
	// LoadSnapshot fetches hours, exceptions, active appointments in
	// [from, to) and, when withOffers is set, the active offer catalog.
	// The reads are independent and run concurrently.
	LoadSnapshot(
		ctx context.Context,
		businessID string,
		from time.Time,
		to time.Time,
		withOffers bool,
	) (*Snapshot, error)

	// -------- Lead --------
	GetOrCreateLead(
		ctx context.Context,
		businessID string,
		name string,
		phone string,
		email string,
	) (*models.Lead, error)

	// -------- Appointment (write path) --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	GetAppointmentForBusiness(
		ctx context.Context,
		appointmentID string,
		businessID string,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error
}
