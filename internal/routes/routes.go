package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/config"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	loyaltyDomain "github.com/BruksfildServices01/barber-booking/internal/domain/loyalty"
	"github.com/BruksfildServices01/barber-booking/internal/handlers"
	"github.com/BruksfildServices01/barber-booking/internal/infra/media"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/session"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/usecase/catalog"
	ucLoyalty "github.com/BruksfildServices01/barber-booking/internal/usecase/loyalty"
	"github.com/BruksfildServices01/barber-booking/internal/usecase/reminder"
)

// Deps are the long-lived collaborators built in main. Tests pass in-memory
// repositories.
type Deps struct {
	Config *config.Config
	Clock  timezone.Clock

	Appointments  domain.Repository
	Loyalty       loyaltyDomain.Repository
	Catalog       catalog.Repository
	Notifications handlers.NotificationLogs

	Notifier ucAppointment.Notifier
	Sender   reminder.Sender
	Images   media.Store
	Audit    *audit.Dispatcher
	Sessions *session.Manager

	AuditLogs handlers.AuditLogs
}

// UseCases exposes what the scheduler needs outside HTTP.
type UseCases struct {
	Reminders *reminder.ProcessReminders
}

func RegisterRoutes(r *gin.Engine, d Deps) *UseCases {
	cfg := d.Config

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(metrics.Middleware())
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins))

	// ======================================================
	// USE CASES
	// ======================================================
	ledger := ucLoyalty.NewLedger(d.Loyalty, cfg.LoyaltyAwardOn, d.Clock, d.Audit)

	availabilityUC := ucAppointment.NewGetAvailability(d.Appointments, cfg.SlotTemplate, d.Clock)
	createUC := ucAppointment.NewCreateAppointment(d.Appointments, ledger, d.Notifier, d.Audit, d.Clock)
	statusUC := ucAppointment.NewUpdateAppointmentStatus(d.Appointments, ledger, d.Audit, d.Clock)
	deleteUC := ucAppointment.NewDeleteAppointment(d.Appointments, d.Audit)
	bulkUC := ucAppointment.NewBulkAppointments(deleteUC, statusUC, d.Audit)
	listUC := ucAppointment.NewListAppointments(d.Appointments, d.Clock)
	statsUC := ucAppointment.NewDashboardStats(d.Appointments, d.Clock)
	remindersUC := reminder.NewProcessReminders(d.Appointments, d.Sender, d.Audit, d.Clock)

	catalogUC := catalog.New(d.Catalog, media.NewEncoder(), d.Images, d.Audit)

	// ======================================================
	// HANDLERS
	// ======================================================
	publicHandler := handlers.NewPublicHandler(availabilityUC, createUC, catalogUC, d.Clock)
	appointmentHandler := handlers.NewAppointmentHandler(
		listUC,
		statusUC,
		deleteUC,
		bulkUC,
		statsUC,
		remindersUC,
		d.Notifications,
		d.Clock,
	)
	catalogHandler := handlers.NewCatalogHandler(catalogUC)
	loyaltyHandler := handlers.NewLoyaltyHandler(ledger)
	authHandler := handlers.NewAuthHandler(d.Sessions, d.Audit)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.AuditLogs, d.Clock)

	// ======================================================
	// OPS
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", metrics.Handler())

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.GET("/services", publicHandler.ListServices)
		api.GET("/barbers", publicHandler.ListBarbers)

		api.GET("/bookings/availability", publicHandler.Availability)
		api.GET("/bookings/booked-slots", publicHandler.BookedSlots)
		api.POST("/bookings", publicHandler.CreateBooking)

		loyaltyAPI := api.Group("/loyalty")
		{
			loyaltyAPI.GET("/customers/phone/:phone", loyaltyHandler.Lookup)
			loyaltyAPI.POST("/customers", loyaltyHandler.Join)
			loyaltyAPI.GET("/customers/:id/transactions", loyaltyHandler.Transactions)
			loyaltyAPI.GET("/customers/:id/redemptions", loyaltyHandler.Redemptions)
			loyaltyAPI.GET("/rewards", loyaltyHandler.Rewards)
			loyaltyAPI.POST("/redeem", loyaltyHandler.Redeem)
		}

		// ------------------------------
		// ADMIN
		// ------------------------------
		api.POST("/admin/login", authHandler.Login)

		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware(d.Sessions))
		{
			admin.POST("/logout", authHandler.Logout)

			admin.GET("/bookings", appointmentHandler.List)
			admin.GET("/bookings/today", appointmentHandler.Today)
			admin.GET("/bookings/completed", appointmentHandler.Completed)
			admin.PATCH("/bookings/:id/status", appointmentHandler.UpdateStatus)
			admin.DELETE("/bookings/:id", appointmentHandler.Delete)
			admin.POST("/bookings/bulk", appointmentHandler.Bulk)
			admin.GET("/bookings/:id/notifications", appointmentHandler.Notifications)
			admin.GET("/dashboard/stats", appointmentHandler.Stats)

			admin.POST("/reminders/process", appointmentHandler.ProcessReminders)
			admin.POST("/reminders/:id", appointmentHandler.SendReminder)

			admin.GET("/barbers", catalogHandler.ListBarbers)
			admin.POST("/barbers", catalogHandler.CreateBarber)
			admin.PATCH("/barbers/:id/deactivate", catalogHandler.DeactivateBarber)
			admin.POST("/barbers/:id/photo", catalogHandler.UploadBarberPhoto)
			admin.GET("/barbers/:id/clients", catalogHandler.ListClients)
			admin.POST("/barbers/:id/clients", catalogHandler.CreateClient)

			admin.GET("/services", catalogHandler.ListServices)
			admin.POST("/services", catalogHandler.CreateService)
			admin.PATCH("/services/:id/deactivate", catalogHandler.DeactivateService)
			admin.POST("/services/:id/image", catalogHandler.UploadServiceImage)

			admin.GET("/loyalty/customers", loyaltyHandler.Customers)
			admin.POST("/loyalty/points", loyaltyHandler.AddPoints)
			admin.POST("/loyalty/customers/:id/rebuild", loyaltyHandler.Rebuild)
			admin.POST("/loyalty/rewards", loyaltyHandler.CreateReward)

			admin.GET("/audit-logs", auditLogsHandler.List)
		}
	}

	return &UseCases{Reminders: remindersUC}
}
