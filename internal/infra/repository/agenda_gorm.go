package repository

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	domain "github.com/promeza/agenda-api/internal/domain/agenda"
	"github.com/promeza/agenda-api/internal/models"
)

type AgendaGormRepository struct {
	db *gorm.DB
}

func NewAgendaGormRepository(db *gorm.DB) *AgendaGormRepository {
	return &AgendaGormRepository{db: db}
}

// --------------------------------------------------
// Business
// --------------------------------------------------

func (r *AgendaGormRepository) GetBusinessByID(
	ctx context.Context,
	id string,
) (*models.Business, error) {

	var business models.Business
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&business).Error; err != nil {
		return nil, err
	}
	return &business, nil
}

func (r *AgendaGormRepository) GetBusinessBySlug(
	ctx context.Context,
	slug string,
) (*models.Business, error) {

	var business models.Business
	if err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&business).Error; err != nil {
		return nil, err
	}
	return &business, nil
}

// --------------------------------------------------
// Appointment type
// --------------------------------------------------

func (r *AgendaGormRepository) GetAppointmentType(
	ctx context.Context,
	businessID string,
	typeID string,
) (*models.AppointmentType, error) {

	var t models.AppointmentType
	if err := r.db.WithContext(ctx).
		Where("id = ? AND business_id = ?", typeID, businessID).
		First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// --------------------------------------------------
// Availability snapshot
// --------------------------------------------------

// LoadSnapshot runs the four reads concurrently; they touch disjoint tables
// and the core only needs a consistent-enough view (the write path re-checks
// before committing).
func (r *AgendaGormRepository) LoadSnapshot(
	ctx context.Context,
	businessID string,
	from time.Time,
	to time.Time,
	withOffers bool,
) (*domain.Snapshot, error) {

	snap := &domain.Snapshot{}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var business models.Business
		if err := r.db.WithContext(gctx).
			Where("id = ?", businessID).
			First(&business).Error; err != nil {
			return err
		}
		snap.Business = &business
		return nil
	})

	g.Go(func() error {
		return r.db.WithContext(gctx).
			Where("business_id = ?", businessID).
			Find(&snap.Hours).Error
	})

	g.Go(func() error {
		return r.db.WithContext(gctx).
			Where("business_id = ?", businessID).
			Find(&snap.Exceptions).Error
	})

	g.Go(func() error {
		return r.db.WithContext(gctx).
			Select("id", "appointment_type_id", "date", "status").
			Where(
				"business_id = ? AND status = ? AND date >= ? AND date < ?",
				businessID, domain.StatusPendiente, from, to,
			).
			Order("date ASC").
			Find(&snap.Appointments).Error
	})

	if withOffers {
		g.Go(func() error {
			return r.db.WithContext(gctx).
				Preload("AppointmentTypes", "active = true").
				Where("business_id = ? AND active = true", businessID).
				Order("created_at ASC").
				Find(&snap.Offers).Error
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snap, nil
}

// --------------------------------------------------
// Lead
// --------------------------------------------------

func (r *AgendaGormRepository) GetOrCreateLead(
	ctx context.Context,
	businessID string,
	name string,
	phone string,
	email string,
) (*models.Lead, error) {

	var lead models.Lead
	err := r.db.WithContext(ctx).
		Where("business_id = ? AND phone = ?", businessID, phone).
		First(&lead).Error

	if err == nil {
		return &lead, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	lead = models.Lead{
		BusinessID: businessID,
		Name:       name,
		Phone:      phone,
		Email:      email,
	}

	if err := r.db.WithContext(ctx).Create(&lead).Error; err != nil {
		return nil, err
	}

	return &lead, nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AgendaGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Create(ap).Error
}

func (r *AgendaGormRepository) GetAppointmentForBusiness(
	ctx context.Context,
	appointmentID string,
	businessID string,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("id = ? AND business_id = ?", appointmentID, businessID).
		First(&ap).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *AgendaGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

// Compile-time check
var _ domain.Repository = (*AgendaGormRepository)(nil)
