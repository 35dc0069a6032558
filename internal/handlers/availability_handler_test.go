package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	domain "github.com/promeza/agenda-api/internal/domain/agenda"
	"github.com/promeza/agenda-api/internal/models"
	"github.com/promeza/agenda-api/internal/nlp/dateparse"
	"github.com/promeza/agenda-api/internal/usecase/availability"
)

type stubRepo struct {
	business *models.Business
	apptType *models.AppointmentType
	hours    []models.BusinessHours
	offers   []models.Offer
}

var _ domain.Repository = (*stubRepo)(nil)

func (r *stubRepo) GetBusinessByID(_ context.Context, id string) (*models.Business, error) {
	if r.business == nil || r.business.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return r.business, nil
}

func (r *stubRepo) GetBusinessBySlug(_ context.Context, slug string) (*models.Business, error) {
	if r.business == nil || r.business.Slug != slug {
		return nil, gorm.ErrRecordNotFound
	}
	return r.business, nil
}

func (r *stubRepo) GetAppointmentType(_ context.Context, businessID, typeID string) (*models.AppointmentType, error) {
	if r.apptType == nil || r.apptType.ID != typeID || r.apptType.BusinessID != businessID {
		return nil, gorm.ErrRecordNotFound
	}
	return r.apptType, nil
}

func (r *stubRepo) LoadSnapshot(_ context.Context, _ string, _, _ time.Time, withOffers bool) (*domain.Snapshot, error) {
	snap := &domain.Snapshot{Business: r.business, Hours: r.hours}
	if withOffers {
		snap.Offers = r.offers
	}
	return snap, nil
}

func (r *stubRepo) GetOrCreateLead(_ context.Context, businessID, name, phone, email string) (*models.Lead, error) {
	return &models.Lead{ID: "lead-1", BusinessID: businessID, Name: name, Phone: phone, Email: email}, nil
}

func (r *stubRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error { return nil }

func (r *stubRepo) GetAppointmentForBusiness(_ context.Context, _, _ string) (*models.Appointment, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *stubRepo) UpdateAppointment(_ context.Context, _ *models.Appointment) error { return nil }

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	apptType := &models.AppointmentType{
		ID:               "type-consulta",
		BusinessID:       "biz-1",
		Name:             "Consulta",
		DurationMinutes:  60,
		ConcurrencyLimit: 1,
		Active:           true,
	}

	hours := []models.BusinessHours{}
	for _, d := range []models.Weekday{
		models.WeekdayLunes, models.WeekdayMartes, models.WeekdayMiercoles,
		models.WeekdayJueves, models.WeekdayViernes,
	} {
		hours = append(hours, models.BusinessHours{
			BusinessID: "biz-1", Weekday: d, StartTime: "09:00", EndTime: "18:00",
		})
	}

	repo := &stubRepo{
		business: &models.Business{
			ID:       "biz-1",
			Name:     "Clínica Centro",
			Slug:     "clinica-centro",
			Timezone: "America/Mexico_City",
		},
		apptType: apptType,
		hours:    hours,
		offers: []models.Offer{
			{
				ID:               "offer-1",
				BusinessID:       "biz-1",
				Name:             "Consultas",
				Active:           true,
				AppointmentTypes: []models.AppointmentType{*apptType},
			},
		},
	}

	checkUC := availability.NewCheck(repo, nil)
	parseUC := availability.NewParseAndCheck(repo, dateparse.NewSpanishParser(), nil)
	h := NewAvailabilityHandler(checkUC, parseUC)

	r := gin.New()
	r.GET("/api/public/availability/check", h.CheckGET)
	r.POST("/api/public/availability/check", h.CheckPOST)
	r.POST("/api/public/availability/parse-and-check", h.ParseAndCheck)
	return r
}

func TestCheckGET_OK(t *testing.T) {
	r := testRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/public/availability/check?business_id=biz-1&days_to_query=7", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var res domain.CheckResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.Equal(t, "biz-1", res.Business.ID)
	require.Len(t, res.Offers, 1)
	require.NotEmpty(t, res.Offers[0].AppointmentTypes[0].AvailableDays)
}

func TestCheckGET_MissingBusinessID(t *testing.T) {
	r := testRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/public/availability/check", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckGET_UnknownBusiness(t *testing.T) {
	r := testRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/public/availability/check?business_id=nope", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestParseAndCheck_DomainNegativeIs200(t *testing.T) {
	r := testRouter(t)

	body := `{"business_id":"biz-1","appointment_type_id":"type-consulta","free_text":"el domingo a las 10:00"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/public/availability/parse-and-check", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	// Closed Sunday is a domain outcome, not an HTTP failure.
	require.Equal(t, http.StatusOK, w.Code)

	var res domain.ParseAndCheckResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.False(t, res.Available)
	require.Contains(t, res.Message, "no atendemos")
}

func TestParseAndCheck_UnknownTypeIs404(t *testing.T) {
	r := testRouter(t)

	body := `{"business_id":"biz-1","appointment_type_id":"nope","free_text":"mañana a las 10:00"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/public/availability/parse-and-check", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestParseAndCheck_MissingFieldsIs400(t *testing.T) {
	r := testRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/public/availability/parse-and-check", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}
