package routes

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/stilevo/stilevo-api/internal/audit"
	"github.com/stilevo/stilevo-api/internal/config"
	"github.com/stilevo/stilevo-api/internal/domain/schedule"
	"github.com/stilevo/stilevo-api/internal/handlers"
	"github.com/stilevo/stilevo-api/internal/infra/appointmentstore"
	"github.com/stilevo/stilevo-api/internal/middleware"
	"github.com/stilevo/stilevo-api/internal/state"
	ucBooking "github.com/stilevo/stilevo-api/internal/usecase/booking"
)

// RegisterRoutes wires the whole graph and mounts the routes. The returned
// stop func tears down the appointment change subscription.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, rdb *redis.Client, st *state.Store, cfg *config.Config) func() {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	resolver := schedule.NewResolver(cfg.StrictDateLabels)
	appointmentStore := appointmentstore.NewGormStore(db, rdb, resolver)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// USE CASES — BOOKINGS
	// ======================================================
	submitBookingUC := ucBooking.NewSubmitBooking(
		appointmentStore,
		st,
		resolver,
		auditDispatcher,
	)

	cancelAppointmentUC := ucBooking.NewCancelAppointment(
		appointmentStore,
		auditDispatcher,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(cfg, st)
	catalogHandler := handlers.NewCatalogHandler(resolver)
	bookingHandler := handlers.NewBookingHandler(submitBookingUC)
	assistantHandler := handlers.NewAssistantHandler(submitBookingUC, st)
	appointmentHandler := handlers.NewAppointmentHandler(appointmentStore, st, cancelAppointmentUC)
	clientHandler := handlers.NewClientHandler(st)
	transactionHandler := handlers.NewTransactionHandler(st, rdb)
	analyticsHandler := handlers.NewAnalyticsHandler(st, rdb, cfg)
	reminderHandler := handlers.NewReminderHandler(st)

	stop, err := appointmentStore.Subscribe(appointmentHandler.Refresh)
	if err != nil {
		log.Fatalf("failed to subscribe to appointment changes: %v", err)
	}

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC API (mini-app + assistant)
		// ------------------------------
		api.POST("/auth/telegram", authHandler.TelegramAuth)
		api.GET("/catalog", catalogHandler.Get)
		api.POST("/bookings", bookingHandler.Create)
		api.POST("/assistant/bookings", assistantHandler.CreateBooking)
		api.GET("/appointments", appointmentHandler.List)
		api.DELETE("/appointments/:id", appointmentHandler.Cancel)
		api.GET("/clients/:id/loyalty", clientHandler.Loyalty)
		api.POST("/clients/:id/reviews", clientHandler.AddReview)

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PRIVATE API (master dashboard)
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me/clients", clientHandler.List)
			secured.GET("/me/clients/:id", clientHandler.Get)
			secured.PATCH("/me/clients/:id", clientHandler.Update)

			secured.GET("/me/transactions", transactionHandler.List)
			secured.POST("/me/transactions", transactionHandler.Create)

			secured.GET("/me/analytics", analyticsHandler.Get)

			secured.GET("/me/reminders", reminderHandler.List)
			secured.PATCH("/me/reminders/:id/processed", reminderHandler.MarkProcessed)

			secured.PATCH("/me/appointments/:id/reminder", appointmentHandler.ToggleReminder)
		}
	}

	return stop
}
