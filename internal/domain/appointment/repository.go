package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type ListFilter struct {
	From     *time.Time
	To       *time.Time
	BarberID *uint
	Status   *Status

	// NewestFirst orders by appointment date descending.
	NewestFirst bool
}

// Mutator is applied to a locked appointment row. Returning changed=false
// leaves the row untouched.
type Mutator func(ap *models.Appointment) (changed bool, err error)

type Repository interface {
	// -------- Catalog --------
	GetService(
		ctx context.Context,
		id uint,
	) (*models.Service, error)

	GetBarber(
		ctx context.Context,
		id uint,
	) (*models.Barber, error)

	// -------- Availability --------
	ListBookedTimes(
		ctx context.Context,
		barberID uint,
		from time.Time,
		to time.Time,
	) ([]time.Time, error)

	// -------- Appointment (create) --------

	// CreateAppointment fails with ErrDuplicateSlot when another
	// non-cancelled appointment holds the same barber and instant. The check
	// is backed by the storage layer, not only by a prior read.
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Appointment (state change) --------
	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		id uint,
		fn Mutator,
	) (*models.Appointment, bool, error)

	// DeleteAppointment removes the row and its notification logs.
	DeleteAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	// -------- Listing --------
	ListAppointments(
		ctx context.Context,
		filter ListFilter,
	) ([]models.Appointment, error)

	// -------- Reminders --------
	ListDueReminders(
		ctx context.Context,
		from time.Time,
		to time.Time,
	) ([]models.Appointment, error)

	MarkReminderSent(
		ctx context.Context,
		id uint,
		at time.Time,
	) error

	// -------- Barber clients --------

	// EnsureBarberClient creates the (barber, phone) entry with zero visits
	// when missing and leaves an existing entry alone.
	EnsureBarberClient(
		ctx context.Context,
		client *models.BarberClient,
	) error

	// RecordVisit increments total visits by one, creating the entry with one
	// visit when missing.
	RecordVisit(
		ctx context.Context,
		client *models.BarberClient,
		at time.Time,
	) error
}
