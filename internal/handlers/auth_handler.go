package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/session"
)

type AuthHandler struct {
	sessions *session.Manager
	audit    *audit.Dispatcher
}

func NewAuthHandler(sessions *session.Manager, audit *audit.Dispatcher) *AuthHandler {
	return &AuthHandler{sessions: sessions, audit: audit}
}

// --------- Requests ---------

type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "password is required.")
		return
	}

	token, err := h.sessions.Login(c.Request.Context(), req.Password)
	if err != nil {
		log.Warn().Str("ip", c.ClientIP()).Msg("admin login rejected")
		h.audit.Dispatch(audit.Event{
			Actor:    audit.ActorAdmin,
			Action:   "login_failed",
			Entity:   "session",
			Metadata: map[string]any{"ip": c.ClientIP()},
		})
		httperr.Respond(c, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		Actor:    audit.ActorAdmin,
		Action:   "login",
		Entity:   "session",
		Metadata: map[string]any{"ip": c.ClientIP()},
	})

	c.JSON(http.StatusOK, token)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	raw := c.GetString(middleware.ContextToken)

	if err := h.sessions.Logout(c.Request.Context(), raw); err != nil {
		httperr.Respond(c, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		Actor:  audit.ActorAdmin,
		Action: "logout",
		Entity: "session",
	})

	c.JSON(http.StatusOK, gin.H{"logged_out": true})
}
