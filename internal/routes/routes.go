package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/promeza/agenda-api/internal/audit"
	"github.com/promeza/agenda-api/internal/cache"
	"github.com/promeza/agenda-api/internal/handlers"
	infraRepo "github.com/promeza/agenda-api/internal/infra/repository"
	"github.com/promeza/agenda-api/internal/metrics"
	"github.com/promeza/agenda-api/internal/middleware"
	"github.com/promeza/agenda-api/internal/nlp/dateparse"
	ucAppointment "github.com/promeza/agenda-api/internal/usecase/appointment"
	ucAvailability "github.com/promeza/agenda-api/internal/usecase/availability"
)

const snapshotTTL = 30 * time.Second

func RegisterRoutes(r *gin.Engine, db *gorm.DB, rdb *redis.Client) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	agendaRepo := infraRepo.NewAgendaGormRepository(db)
	snapCache := cache.New(rdb, snapshotTTL)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	resolver := dateparse.NewSpanishParser()

	// ======================================================
	// 🧠 USE CASES
	// ======================================================
	checkUC := ucAvailability.NewCheck(agendaRepo, snapCache)
	parseAndCheckUC := ucAvailability.NewParseAndCheck(agendaRepo, resolver, snapCache)

	createAppointmentUC := ucAppointment.NewCreateAppointment(agendaRepo, auditDispatcher)
	cancelAppointmentUC := ucAppointment.NewCancelAppointment(agendaRepo, auditDispatcher)
	completeAppointmentUC := ucAppointment.NewCompleteAppointment(agendaRepo, auditDispatcher)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	availabilityHandler := handlers.NewAvailabilityHandler(checkUC, parseAndCheckUC)
	appointmentHandler := handlers.NewAppointmentHandler(db, createAppointmentUC, cancelAppointmentUC, completeAppointmentUC)
	businessHandler := handlers.NewBusinessHandler(db)
	appointmentTypeHandler := handlers.NewAppointmentTypeHandler(db)

	// ======================================================
	// 📈 OBSERVABILIDAD
	// ======================================================
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 API PÚBLICA
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/availability/check", availabilityHandler.CheckGET)
			publicAPI.POST("/availability/check", availabilityHandler.CheckPOST)
			publicAPI.POST("/availability/parse-and-check", availabilityHandler.ParseAndCheck)

			publicAPI.GET("/:slug/appointment-types", appointmentHandler.ListPublicTypes)
			publicAPI.POST("/:slug/appointments", appointmentHandler.CreatePublic)
		}

		// ------------------------------
		// 🗂️ API DE GESTIÓN
		// ------------------------------
		api.POST("/businesses", businessHandler.Create)
		api.GET("/businesses/:id", businessHandler.Get)

		api.GET("/businesses/:id/hours", businessHandler.GetHours)
		api.PUT("/businesses/:id/hours", businessHandler.UpdateHours)

		api.GET("/businesses/:id/exceptions", businessHandler.ListExceptions)
		api.POST("/businesses/:id/exceptions", businessHandler.CreateException)
		api.DELETE("/businesses/:id/exceptions/:excId", businessHandler.DeleteException)

		api.GET("/businesses/:id/appointment-types", appointmentTypeHandler.List)
		api.POST("/businesses/:id/appointment-types", appointmentTypeHandler.Create)
		api.PATCH("/businesses/:id/appointment-types/:typeId", appointmentTypeHandler.Update)

		api.GET("/businesses/:id/offers", appointmentTypeHandler.ListOffers)
		api.POST("/businesses/:id/offers", appointmentTypeHandler.CreateOffer)

		api.GET("/businesses/:id/appointments", appointmentHandler.ListByDate)
		api.PATCH("/businesses/:id/appointments/:apptId/cancel", appointmentHandler.Cancel)
		api.PATCH("/businesses/:id/appointments/:apptId/complete", appointmentHandler.Complete)
	}
}
