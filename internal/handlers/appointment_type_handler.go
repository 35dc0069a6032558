package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/promeza/agenda-api/internal/httperr"
	"github.com/promeza/agenda-api/internal/httpresp"
	"github.com/promeza/agenda-api/internal/models"
)

type AppointmentTypeHandler struct {
	db *gorm.DB
}

func NewAppointmentTypeHandler(db *gorm.DB) *AppointmentTypeHandler {
	return &AppointmentTypeHandler{db: db}
}

// --------- Requests ---------

type CreateAppointmentTypeRequest struct {
	Name             string `json:"name" binding:"required"`
	Description      string `json:"description"`
	DurationMinutes  int    `json:"duration_minutes" binding:"required,min=1"`
	ConcurrencyLimit int    `json:"concurrency_limit" binding:"required,min=1"`
}

type UpdateAppointmentTypeRequest struct {
	Name             *string `json:"name,omitempty"`
	Description      *string `json:"description,omitempty"`
	DurationMinutes  *int    `json:"duration_minutes,omitempty"`
	ConcurrencyLimit *int    `json:"concurrency_limit,omitempty"`
	Active           *bool   `json:"active,omitempty"`
}

type CreateOfferRequest struct {
	Name               string   `json:"name" binding:"required"`
	Description        string   `json:"description"`
	AppointmentTypeIDs []string `json:"appointment_type_ids"`
}

// --------- Appointment types ---------

func (h *AppointmentTypeHandler) List(c *gin.Context) {
	businessID := c.Param("id")

	var types []models.AppointmentType
	if err := h.db.
		Where("business_id = ?", businessID).
		Order("created_at ASC").
		Find(&types).Error; err != nil {

		httperr.Internal(c, "failed_to_list_types", "Error al listar tipos de cita.")
		return
	}

	httpresp.List(c, types)
}

func (h *AppointmentTypeHandler) Create(c *gin.Context) {
	businessID := c.Param("id")

	var business models.Business
	if err := h.db.Where("id = ?", businessID).First(&business).Error; err != nil {
		httperr.NotFound(c, "business_not_found", "Negocio no encontrado.")
		return
	}

	var req CreateAppointmentTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	apptType := models.AppointmentType{
		BusinessID:       businessID,
		Name:             req.Name,
		Description:      req.Description,
		DurationMinutes:  req.DurationMinutes,
		ConcurrencyLimit: req.ConcurrencyLimit,
		Active:           true,
	}

	if err := h.db.Create(&apptType).Error; err != nil {
		httperr.Internal(c, "failed_to_create_type", "Error al crear el tipo de cita.")
		return
	}

	c.JSON(http.StatusCreated, apptType)
}

func (h *AppointmentTypeHandler) Update(c *gin.Context) {
	businessID := c.Param("id")
	typeID := c.Param("typeId")

	var apptType models.AppointmentType
	if err := h.db.
		Where("id = ? AND business_id = ?", typeID, businessID).
		First(&apptType).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "type_not_found", "Tipo de cita no encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_type", "Error al consultar el tipo de cita.")
		return
	}

	var req UpdateAppointmentTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.Name != nil {
		apptType.Name = *req.Name
	}
	if req.Description != nil {
		apptType.Description = *req.Description
	}
	if req.DurationMinutes != nil {
		apptType.DurationMinutes = *req.DurationMinutes
	}
	if req.ConcurrencyLimit != nil {
		apptType.ConcurrencyLimit = *req.ConcurrencyLimit
	}
	if req.Active != nil {
		apptType.Active = *req.Active
	}

	if err := h.db.Save(&apptType).Error; err != nil {
		httperr.Internal(c, "failed_to_update_type", "Error al actualizar el tipo de cita.")
		return
	}

	c.JSON(http.StatusOK, apptType)
}

// --------- Offers ---------

func (h *AppointmentTypeHandler) ListOffers(c *gin.Context) {
	businessID := c.Param("id")

	var offers []models.Offer
	if err := h.db.
		Preload("AppointmentTypes").
		Where("business_id = ?", businessID).
		Order("created_at ASC").
		Find(&offers).Error; err != nil {

		httperr.Internal(c, "failed_to_list_offers", "Error al listar ofertas.")
		return
	}

	httpresp.List(c, offers)
}

func (h *AppointmentTypeHandler) CreateOffer(c *gin.Context) {
	businessID := c.Param("id")

	var business models.Business
	if err := h.db.Where("id = ?", businessID).First(&business).Error; err != nil {
		httperr.NotFound(c, "business_not_found", "Negocio no encontrado.")
		return
	}

	var req CreateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	var types []models.AppointmentType
	if len(req.AppointmentTypeIDs) > 0 {
		if err := h.db.
			Where("business_id = ? AND id IN ?", businessID, req.AppointmentTypeIDs).
			Find(&types).Error; err != nil {

			httperr.Internal(c, "failed_to_resolve_types", "Error al resolver tipos de cita.")
			return
		}
		if len(types) != len(req.AppointmentTypeIDs) {
			httperr.BadRequest(c, "unknown_appointment_type", "Uno o más tipos de cita no existen.")
			return
		}
	}

	offer := models.Offer{
		BusinessID:       businessID,
		Name:             req.Name,
		Description:      req.Description,
		Active:           true,
		AppointmentTypes: types,
	}

	if err := h.db.Create(&offer).Error; err != nil {
		httperr.Internal(c, "failed_to_create_offer", "Error al crear la oferta.")
		return
	}

	c.JSON(http.StatusCreated, offer)
}
