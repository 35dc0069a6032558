package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/promeza/agenda-api/internal/domain/agenda"
	"github.com/promeza/agenda-api/internal/httperr"
	"github.com/promeza/agenda-api/internal/metrics"
	"github.com/promeza/agenda-api/internal/usecase/availability"
)

// maxDaysToQuery caps how far ahead a single request may scan.
const maxDaysToQuery = 60

type AvailabilityHandler struct {
	checkUC         *availability.Check
	parseAndCheckUC *availability.ParseAndCheck
}

func NewAvailabilityHandler(
	checkUC *availability.Check,
	parseAndCheckUC *availability.ParseAndCheck,
) *AvailabilityHandler {
	return &AvailabilityHandler{
		checkUC:         checkUC,
		parseAndCheckUC: parseAndCheckUC,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type CheckRequest struct {
	BusinessID  string `json:"business_id" binding:"required"`
	DaysToQuery int    `json:"days_to_query" binding:"required,min=1"`
}

type ParseAndCheckRequest struct {
	FreeText          string `json:"free_text" binding:"required,min=3"`
	AppointmentTypeID string `json:"appointment_type_id" binding:"required"`
	BusinessID        string `json:"business_id" binding:"required"`
}

////////////////////////////////////////////////////////
// SLOT QUERY
////////////////////////////////////////////////////////

// CheckGET serves the widget-embedding use case: all input in the query
// string.
func (h *AvailabilityHandler) CheckGET(c *gin.Context) {
	businessID := c.Query("business_id")
	if businessID == "" {
		httperr.BadRequest(c, "missing_business_id", "El parámetro business_id es requerido.")
		return
	}

	daysToQuery, err := strconv.Atoi(c.DefaultQuery("days_to_query", "7"))
	if err != nil || daysToQuery < 1 {
		httperr.BadRequest(c, "invalid_days_to_query", "days_to_query debe ser un entero positivo.")
		return
	}

	h.check(c, domain.CheckInput{BusinessID: businessID, DaysToQuery: daysToQuery})
}

func (h *AvailabilityHandler) CheckPOST(c *gin.Context) {
	var req CheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	h.check(c, domain.CheckInput{BusinessID: req.BusinessID, DaysToQuery: req.DaysToQuery})
}

func (h *AvailabilityHandler) check(c *gin.Context, in domain.CheckInput) {
	if in.DaysToQuery > maxDaysToQuery {
		in.DaysToQuery = maxDaysToQuery
	}

	result, err := h.checkUC.Execute(c.Request.Context(), in)
	if err != nil {
		if httperr.IsBusiness(err, "business_not_found") {
			metrics.AvailabilityRequests.WithLabelValues("check", "not_found").Inc()
			httperr.NotFound(c, "business_not_found", "Negocio no encontrado.")
			return
		}

		log.Println("availability check error:", err)
		metrics.AvailabilityRequests.WithLabelValues("check", "error").Inc()
		httperr.Internal(c, "availability_failed", "Error al calcular horarios.")
		return
	}

	metrics.AvailabilityRequests.WithLabelValues("check", "ok").Inc()
	metrics.SlotsReturned.Observe(float64(countSlots(result)))

	c.JSON(http.StatusOK, result)
}

func countSlots(result *domain.CheckResult) int {
	total := 0
	for _, offer := range result.Offers {
		for _, t := range offer.AppointmentTypes {
			for _, d := range t.AvailableDays {
				total += len(d.Slots)
			}
		}
	}
	return total
}

////////////////////////////////////////////////////////
// FREE-TEXT PARSE + CHECK
////////////////////////////////////////////////////////

func (h *AvailabilityHandler) ParseAndCheck(c *gin.Context) {
	var req ParseAndCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	result, err := h.parseAndCheckUC.Execute(c.Request.Context(), domain.ParseAndCheckInput{
		BusinessID:        req.BusinessID,
		AppointmentTypeID: req.AppointmentTypeID,
		FreeText:          req.FreeText,
	})

	if err != nil {
		if httperr.IsBusiness(err, "business_not_found") {
			httperr.NotFound(c, "business_not_found", "Negocio no encontrado.")
			return
		}
		if httperr.IsBusiness(err, "appointment_type_not_found") {
			httperr.NotFound(c, "appointment_type_not_found", "Tipo de cita no encontrado.")
			return
		}

		log.Println("parse-and-check error:", err)
		metrics.AvailabilityRequests.WithLabelValues("parse_and_check", "error").Inc()
		httperr.Internal(c, "parse_and_check_failed", "Error interno del servidor.")
		return
	}

	outcome := "unavailable"
	if result.Available {
		outcome = "available"
	}
	metrics.AvailabilityRequests.WithLabelValues("parse_and_check", outcome).Inc()

	// Domain-negative outcomes (unparseable text, day closed, slot taken)
	// are successful responses.
	c.JSON(http.StatusOK, result)
}
