package handlers

import (
	"net/http"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/promeza/agenda-api/internal/domain/agenda"
	"github.com/promeza/agenda-api/internal/httperr"
	"github.com/promeza/agenda-api/internal/httpresp"
	"github.com/promeza/agenda-api/internal/models"
	"github.com/promeza/agenda-api/internal/timezone"
)

type BusinessHandler struct {
	db *gorm.DB
}

func NewBusinessHandler(db *gorm.DB) *BusinessHandler {
	return &BusinessHandler{db: db}
}

// --------- Requests ---------

type CreateBusinessRequest struct {
	Name     string `json:"name" binding:"required"`
	Slug     string `json:"slug" binding:"required"`
	Phone    string `json:"phone"`
	Timezone string `json:"timezone"`
}

type WeekdayConfig struct {
	Weekday   string `json:"weekday" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

type HoursUpdateRequest struct {
	Days []WeekdayConfig `json:"days" binding:"required"`
}

type CreateExceptionRequest struct {
	Date         string `json:"date" binding:"required"` // YYYY-MM-DD
	IsNonWorking bool   `json:"is_non_working"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	Note         string `json:"note"`
}

// reHHMM enforces the canonical zero-padded wall-clock form. The schedule
// core compares these strings lexicographically, so "9:00" must never reach
// the database.
var reHHMM = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// --------- Business ---------

func (h *BusinessHandler) Create(c *gin.Context) {
	var req CreateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	tz := req.Timezone
	if tz == "" {
		tz = timezone.DefaultTimezone
	}
	if !timezone.IsValid(tz) {
		httperr.BadRequest(c, "invalid_timezone", "Zona horaria inválida.")
		return
	}

	business := models.Business{
		Name:     req.Name,
		Slug:     req.Slug,
		Phone:    req.Phone,
		Timezone: tz,
	}

	if err := h.db.Create(&business).Error; err != nil {
		httperr.Internal(c, "failed_to_create_business", "Error al crear el negocio.")
		return
	}

	c.JSON(http.StatusCreated, business)
}

func (h *BusinessHandler) Get(c *gin.Context) {
	id := c.Param("id")

	var business models.Business
	if err := h.db.Where("id = ?", id).First(&business).Error; err != nil {
		httperr.NotFound(c, "business_not_found", "Negocio no encontrado.")
		return
	}

	c.JSON(http.StatusOK, business)
}

// --------- Weekly hours ---------

func (h *BusinessHandler) GetHours(c *gin.Context) {
	businessID := c.Param("id")

	var hours []models.BusinessHours
	if err := h.db.
		Where("business_id = ?", businessID).
		Find(&hours).Error; err != nil {

		httperr.Internal(c, "failed_to_get_hours", "Error al consultar horarios.")
		return
	}

	httpresp.List(c, hours)
}

// UpdateHours replaces the whole weekly set, one row per weekday.
func (h *BusinessHandler) UpdateHours(c *gin.Context) {
	businessID := c.Param("id")

	var req HoursUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	var toCreate []models.BusinessHours
	seen := map[models.Weekday]bool{}
	for _, d := range req.Days {
		weekday := domain.NormalizeWeekday(d.Weekday)
		if seen[weekday] {
			httperr.BadRequest(c, "duplicate_weekday", "Cada día de la semana solo puede aparecer una vez.")
			return
		}
		seen[weekday] = true

		if !reHHMM.MatchString(d.StartTime) || !reHHMM.MatchString(d.EndTime) {
			httperr.BadRequest(c, "invalid_time_format", "Las horas deben tener el formato HH:MM (por ejemplo 09:00).")
			return
		}
		if d.StartTime >= d.EndTime {
			httperr.BadRequest(c, "invalid_time_range", "La hora de inicio debe ser anterior a la de fin.")
			return
		}

		toCreate = append(toCreate, models.BusinessHours{
			BusinessID: businessID,
			Weekday:    weekday,
			StartTime:  d.StartTime,
			EndTime:    d.EndTime,
		})
	}

	var business models.Business
	if err := h.db.Where("id = ?", businessID).First(&business).Error; err != nil {
		httperr.NotFound(c, "business_not_found", "Negocio no encontrado.")
		return
	}

	if err := h.db.Where("business_id = ?", businessID).Delete(&models.BusinessHours{}).Error; err != nil {
		httperr.Internal(c, "failed_to_clear_hours", "Error al actualizar horarios.")
		return
	}

	if len(toCreate) > 0 {
		if err := h.db.Create(&toCreate).Error; err != nil {
			httperr.Internal(c, "failed_to_save_hours", "Error al guardar horarios.")
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// --------- Exceptions ---------

func (h *BusinessHandler) ListExceptions(c *gin.Context) {
	businessID := c.Param("id")

	var exceptions []models.ScheduleException
	if err := h.db.
		Where("business_id = ?", businessID).
		Order("date ASC").
		Find(&exceptions).Error; err != nil {

		httperr.Internal(c, "failed_to_list_exceptions", "Error al consultar excepciones.")
		return
	}

	httpresp.List(c, exceptions)
}

func (h *BusinessHandler) CreateException(c *gin.Context) {
	businessID := c.Param("id")

	var req CreateExceptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		httperr.BadRequest(c, "invalid_date", "La fecha debe tener el formato YYYY-MM-DD.")
		return
	}

	if !req.IsNonWorking {
		if req.StartTime == "" || req.EndTime == "" {
			httperr.BadRequest(c, "invalid_exception", "Una excepción laborable requiere hora de inicio y fin.")
			return
		}
		if !reHHMM.MatchString(req.StartTime) || !reHHMM.MatchString(req.EndTime) {
			httperr.BadRequest(c, "invalid_time_format", "Las horas deben tener el formato HH:MM (por ejemplo 09:00).")
			return
		}
		if req.StartTime >= req.EndTime {
			httperr.BadRequest(c, "invalid_time_range", "La hora de inicio debe ser anterior a la de fin.")
			return
		}
	}

	var business models.Business
	if err := h.db.Where("id = ?", businessID).First(&business).Error; err != nil {
		httperr.NotFound(c, "business_not_found", "Negocio no encontrado.")
		return
	}

	exc := models.ScheduleException{
		BusinessID:   businessID,
		Date:         req.Date,
		IsNonWorking: req.IsNonWorking,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		Note:         req.Note,
	}

	if err := h.db.Create(&exc).Error; err != nil {
		httperr.Internal(c, "failed_to_create_exception", "Error al crear la excepción.")
		return
	}

	c.JSON(http.StatusCreated, exc)
}

func (h *BusinessHandler) DeleteException(c *gin.Context) {
	businessID := c.Param("id")
	excID := c.Param("excId")

	res := h.db.
		Where("id = ? AND business_id = ?", excID, businessID).
		Delete(&models.ScheduleException{})

	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_exception", "Error al eliminar la excepción.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "exception_not_found", "Excepción no encontrada.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
