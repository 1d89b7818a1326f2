package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/usecase/catalog"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	availability *ucAppointment.GetAvailability
	create       *ucAppointment.CreateAppointment
	catalog      *catalog.Catalog
	clock        timezone.Clock
}

func NewPublicHandler(
	availability *ucAppointment.GetAvailability,
	create *ucAppointment.CreateAppointment,
	catalog *catalog.Catalog,
	clock timezone.Clock,
) *PublicHandler {
	return &PublicHandler{
		availability: availability,
		create:       create,
		catalog:      catalog,
		clock:        clock,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type CreateBookingRequest struct {
	CustomerName    string `json:"customerName"`
	CustomerPhone   string `json:"customerPhone"`
	CustomerEmail   string `json:"customerEmail"`
	ServiceID       uint   `json:"serviceId"`
	BarberID        uint   `json:"barberId"`
	AppointmentDate string `json:"appointmentDate"`
	Notes           string `json:"notes"`
}

////////////////////////////////////////////////////////
// CATALOG
////////////////////////////////////////////////////////

func (h *PublicHandler) ListServices(c *gin.Context) {
	barberID, err := queryBarberID(c)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	services, err := h.catalog.Services(c.Request.Context(), barberID, true)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, services)
}

func (h *PublicHandler) ListBarbers(c *gin.Context) {
	barbers, err := h.catalog.Barbers(c.Request.Context(), true)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, barbers)
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) availabilityInput(c *gin.Context) (domain.AvailabilityInput, error) {
	day, err := queryDay(c, "date", h.clock)
	if err != nil {
		return domain.AvailabilityInput{}, err
	}
	if day == nil {
		return domain.AvailabilityInput{}, httperr.Validation("missing_date", "date is required.")
	}

	barberID, err := queryBarberID(c)
	if err != nil {
		return domain.AvailabilityInput{}, err
	}
	if barberID == nil {
		return domain.AvailabilityInput{}, httperr.Validation("missing_barber_id", "barberId is required.")
	}

	return domain.AvailabilityInput{BarberID: *barberID, Date: *day}, nil
}

func (h *PublicHandler) Availability(c *gin.Context) {
	in, err := h.availabilityInput(c)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	slots, err := h.availability.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, slots)
}

func (h *PublicHandler) BookedSlots(c *gin.Context) {
	in, err := h.availabilityInput(c)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	booked, err := h.availability.Booked(c.Request.Context(), in)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, booked)
}

////////////////////////////////////////////////////////
// BOOKING
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		// A past date is reported as such even when other fields are unusable.
		var fields struct {
			AppointmentDate string `json:"appointmentDate"`
		}
		if c.ShouldBindBodyWith(&fields, binding.JSON) == nil && fields.AppointmentDate != "" {
			if _, dateErr := h.create.CheckDate(fields.AppointmentDate); dateErr != nil {
				httperr.Respond(c, dateErr)
				return
			}
		}
		httperr.BadRequest(c, "invalid_request", "Request body must be valid JSON.")
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		CustomerEmail:   req.CustomerEmail,
		ServiceID:       req.ServiceID,
		BarberID:        req.BarberID,
		AppointmentDate: req.AppointmentDate,
		Notes:           req.Notes,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, ap)
}
