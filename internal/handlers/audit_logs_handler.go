package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

type AuditLogs interface {
	ListAuditLogs(ctx context.Context, f audit.Filter) ([]models.AuditLog, int64, error)
}

type AuditLogsHandler struct {
	logs  AuditLogs
	clock timezone.Clock
}

func NewAuditLogsHandler(logs AuditLogs, clock timezone.Clock) *AuditLogsHandler {
	return &AuditLogsHandler{logs: logs, clock: clock}
}

// List filters by action, entity, actor, entity_id and a from/to day range
// (both inclusive, shop time).
func (h *AuditLogsHandler) List(c *gin.Context) {
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
		next := to.AddDate(0, 0, 1)
		to = &next
	}

	f := audit.Filter{
		Action: c.Query("action"),
		Entity: c.Query("entity"),
		Actor:  c.Query("actor"),
		From:   from,
		To:     to,
	}
	f.Page, _ = strconv.Atoi(c.Query("page"))
	f.Limit, _ = strconv.Atoi(c.Query("limit"))

	if raw := c.Query("entity_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_entity_id", "entity_id must be a positive integer.")
			return
		}
		entityID := uint(id)
		f.EntityID = &entityID
	}

	f = f.Normalize()

	logs, total, err := h.logs.ListAuditLogs(c.Request.Context(), f)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"page":  f.Page,
		"limit": f.Limit,
		"total": total,
		"logs":  logs,
	})
}
