package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/usecase/reminder"
)

// ======================================================
// HANDLER
// ======================================================

type NotificationLogs interface {
	ListForAppointment(ctx context.Context, appointmentID uint) ([]models.NotificationLog, error)
}

type AppointmentHandler struct {
	list          *ucAppointment.ListAppointments
	status        *ucAppointment.UpdateAppointmentStatus
	del           *ucAppointment.DeleteAppointment
	bulk          *ucAppointment.BulkAppointments
	stats         *ucAppointment.DashboardStats
	reminders     *reminder.ProcessReminders
	notifications NotificationLogs
	clock         timezone.Clock
}

func NewAppointmentHandler(
	list *ucAppointment.ListAppointments,
	status *ucAppointment.UpdateAppointmentStatus,
	del *ucAppointment.DeleteAppointment,
	bulk *ucAppointment.BulkAppointments,
	stats *ucAppointment.DashboardStats,
	reminders *reminder.ProcessReminders,
	notifications NotificationLogs,
	clock timezone.Clock,
) *AppointmentHandler {
	return &AppointmentHandler{
		list:          list,
		status:        status,
		del:           del,
		bulk:          bulk,
		stats:         stats,
		reminders:     reminders,
		notifications: notifications,
		clock:         clock,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type UpdateStatusRequest struct {
	Status string  `json:"status" binding:"required"`
	Notes  *string `json:"notes"`
}

type BulkRequest struct {
	Action string `json:"action" binding:"required"`
	IDs    []uint `json:"ids" binding:"required"`
	Status string `json:"status"`
}

// ======================================================
// LISTING
// ======================================================

// List serves the calendar: from and to are shop-local days, to inclusive.
func (h *AppointmentHandler) List(c *gin.Context) {
	from, err := queryDay(c, "from", h.clock)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	to, err := queryDay(c, "to", h.clock)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	if to != nil {
		end := to.AddDate(0, 0, 1)
		to = &end
	}

	barberID, err := queryBarberID(c)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	aps, err := h.list.Calendar(c.Request.Context(), ucAppointment.ListInput{
		From:     from,
		To:       to,
		BarberID: barberID,
		Status:   c.Query("status"),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, dto.AppointmentList(aps))
}

func (h *AppointmentHandler) Today(c *gin.Context) {
	barberID, err := queryBarberID(c)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	aps, err := h.list.Today(c.Request.Context(), barberID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, dto.AppointmentList(aps))
}

func (h *AppointmentHandler) Completed(c *gin.Context) {
	barberID, err := queryBarberID(c)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	aps, err := h.list.Completed(c.Request.Context(), barberID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, dto.AppointmentList(aps))
}

func (h *AppointmentHandler) Stats(c *gin.Context) {
	stats, err := h.stats.Execute(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, stats)
}

// ======================================================
// STATE CHANGES
// ======================================================

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "status is required.")
		return
	}

	ap, err := h.status.Execute(c.Request.Context(), ucAppointment.UpdateStatusInput{
		ID:     id,
		Status: req.Status,
		Notes:  req.Notes,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	ap, err := h.del.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Bulk(c *gin.Context) {
	var req BulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "action and ids are required.")
		return
	}

	res, err := h.bulk.Execute(c.Request.Context(), ucAppointment.BulkInput{
		Action: req.Action,
		IDs:    req.IDs,
		Status: req.Status,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, res)
}

// ======================================================
// NOTIFICATIONS AND REMINDERS
// ======================================================

func (h *AppointmentHandler) Notifications(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	logs, err := h.notifications.ListForAppointment(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, logs)
}

func (h *AppointmentHandler) ProcessReminders(c *gin.Context) {
	res, err := h.reminders.Execute(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, res)
}

func (h *AppointmentHandler) SendReminder(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	ap, err := h.reminders.SendOne(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, ap)
}
