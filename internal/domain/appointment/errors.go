package appointment

import "github.com/BruksfildServices01/barber-booking/internal/httperr"

var (
	ErrDuplicateSlot = httperr.New(
		httperr.KindConflict,
		"duplicate_slot",
		"This barber already has a booking at the selected time.",
	)
	ErrPastDate = httperr.New(
		httperr.KindPastDate,
		"past_date",
		"The appointment must be in the future.",
	)
	ErrAppointmentNotFound = httperr.New(
		httperr.KindNotFound,
		"appointment_not_found",
		"Appointment not found.",
	)
	ErrInvalidTransition = httperr.New(
		httperr.KindInvalidTransition,
		"invalid_transition",
		"Completed and cancelled appointments cannot change status.",
	)
	ErrServiceNotFound = httperr.New(
		httperr.KindNotFound,
		"service_not_found",
		"Service not found.",
	)
	ErrBarberNotFound = httperr.New(
		httperr.KindNotFound,
		"barber_not_found",
		"Barber not found.",
	)
	ErrClientExists = httperr.New(
		httperr.KindConflict,
		"client_exists",
		"This barber already has a client with that phone number.",
	)
)
