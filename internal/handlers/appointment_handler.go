package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/promeza/agenda-api/internal/httperr"
	"github.com/promeza/agenda-api/internal/httpresp"
	"github.com/promeza/agenda-api/internal/models"
	"github.com/promeza/agenda-api/internal/timezone"
	ucAppointment "github.com/promeza/agenda-api/internal/usecase/appointment"
)

type AppointmentHandler struct {
	db         *gorm.DB
	createUC   *ucAppointment.CreateAppointment
	cancelUC   *ucAppointment.CancelAppointment
	completeUC *ucAppointment.CompleteAppointment
}

func NewAppointmentHandler(
	db *gorm.DB,
	createUC *ucAppointment.CreateAppointment,
	cancelUC *ucAppointment.CancelAppointment,
	completeUC *ucAppointment.CompleteAppointment,
) *AppointmentHandler {
	return &AppointmentHandler{
		db:         db,
		createUC:   createUC,
		cancelUC:   cancelUC,
		completeUC: completeUC,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicCreateAppointmentRequest struct {
	LeadName          string `json:"lead_name" binding:"required"`
	LeadPhone         string `json:"lead_phone" binding:"required"`
	LeadEmail         string `json:"lead_email"`
	AppointmentTypeID string `json:"appointment_type_id" binding:"required"`
	Date              string `json:"date" binding:"required"` // YYYY-MM-DD
	Time              string `json:"time" binding:"required"` // HH:mm
	Notes             string `json:"notes"`
}

////////////////////////////////////////////////////////
// PUBLIC CATALOG
////////////////////////////////////////////////////////

func (h *AppointmentHandler) ListPublicTypes(c *gin.Context) {
	slug := c.Param("slug")

	var business models.Business
	if err := h.db.Where("slug = ?", slug).First(&business).Error; err != nil {
		httperr.NotFound(c, "business_not_found", "Negocio no encontrado.")
		return
	}

	var types []models.AppointmentType
	if err := h.db.
		Where("business_id = ? AND active = true", business.ID).
		Order("created_at ASC").
		Find(&types).Error; err != nil {

		httperr.Internal(c, "failed_to_list_types", "Error al listar tipos de cita.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"business": gin.H{"id": business.ID, "name": business.Name},
		"types":    types,
	})
}

////////////////////////////////////////////////////////
// PUBLIC CREATE
////////////////////////////////////////////////////////

func (h *AppointmentHandler) CreatePublic(c *gin.Context) {
	slug := c.Param("slug")

	var business models.Business
	if err := h.db.Where("slug = ?", slug).First(&business).Error; err != nil {
		httperr.NotFound(c, "business_not_found", "Negocio no encontrado.")
		return
	}

	var req PublicCreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	ap, err := h.createUC.Execute(
		c.Request.Context(),
		ucAppointment.CreateAppointmentInput{
			BusinessID:        business.ID,
			AppointmentTypeID: req.AppointmentTypeID,
			LeadName:          req.LeadName,
			LeadPhone:         req.LeadPhone,
			LeadEmail:         req.LeadEmail,
			Date:              req.Date,
			Time:              req.Time,
			Notes:             req.Notes,
		},
	)

	if err != nil {
		mapCreateErrors(c, err)
		return
	}

	c.JSON(http.StatusCreated, ap)
}

func mapCreateErrors(c *gin.Context, err error) {
	switch {
	case httperr.IsBusiness(err, "business_not_found"):
		httperr.NotFound(c, "business_not_found", "Negocio no encontrado.")
	case httperr.IsBusiness(err, "appointment_type_not_found"):
		httperr.NotFound(c, "appointment_type_not_found", "Tipo de cita no encontrado.")
	case httperr.IsBusiness(err, "invalid_date_or_time"):
		httperr.BadRequest(c, "invalid_date_or_time", "Fecha u hora inválida.")
	case httperr.IsBusiness(err, "too_soon"):
		httperr.BadRequest(c, "too_soon", "La cita debe agendarse con al menos una hora de anticipación.")
	case httperr.IsBusiness(err, "outside_working_hours"):
		httperr.BadRequest(c, "outside_working_hours", "El horario solicitado está fuera del horario de atención.")
	case httperr.IsBusiness(err, "time_conflict"):
		httperr.BadRequest(c, "time_conflict", "Ese horario acaba de ser ocupado.")
	default:
		httperr.Internal(c, "failed_to_create_appointment", "Error al crear la cita.")
	}
}

////////////////////////////////////////////////////////
// MANAGEMENT
////////////////////////////////////////////////////////

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	businessID := c.Param("id")
	dateStr := c.Query("date")

	var business models.Business
	if err := h.db.Where("id = ?", businessID).First(&business).Error; err != nil {
		httperr.NotFound(c, "business_not_found", "Negocio no encontrado.")
		return
	}

	loc := timezone.Location(business.Timezone)

	day, err := time.ParseInLocation("2006-01-02", dateStr, loc)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Fecha inválida, usa el formato YYYY-MM-DD.")
		return
	}

	var appointments []models.Appointment
	if err := h.db.
		Preload("Lead").
		Preload("AppointmentType").
		Where(
			"business_id = ? AND date >= ? AND date < ?",
			businessID, day, day.AddDate(0, 0, 1),
		).
		Order("date ASC").
		Find(&appointments).Error; err != nil {

		httperr.Internal(c, "failed_to_list_appointments", "Error al listar citas.")
		return
	}

	httpresp.List(c, appointments)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	businessID := c.Param("id")
	appointmentID := c.Param("apptId")

	ap, err := h.cancelUC.Execute(c.Request.Context(), businessID, appointmentID)
	if err != nil {
		if httperr.IsBusiness(err, "invalid_state") {
			httperr.BadRequest(c, "invalid_state", "La cita ya no está pendiente.")
			return
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "appointment_not_found", "Cita no encontrada.")
			return
		}

		httperr.Internal(c, "failed_to_cancel", "Error al cancelar la cita.")
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	businessID := c.Param("id")
	appointmentID := c.Param("apptId")

	ap, err := h.completeUC.Execute(c.Request.Context(), businessID, appointmentID)
	if err != nil {
		if httperr.IsBusiness(err, "invalid_state") {
			httperr.BadRequest(c, "invalid_state", "La cita ya no está pendiente.")
			return
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "appointment_not_found", "Cita no encontrada.")
			return
		}

		httperr.Internal(c, "failed_to_complete", "Error al completar la cita.")
		return
	}

	httpresp.OK(c, ap)
}
