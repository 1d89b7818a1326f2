package appointment

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/domain/loyalty"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/infra/notify"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
	"github.com/BruksfildServices01/barber-booking/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	CustomerName  string
	CustomerPhone string
	CustomerEmail string

	ServiceID uint
	BarberID  uint

	AppointmentDate string
	Notes           string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo     domain.Repository
	loyalty  Loyalty
	notifier Notifier
	audit    *audit.Dispatcher
	clock    timezone.Clock
}

func NewCreateAppointment(
	repo domain.Repository,
	loyalty Loyalty,
	notifier Notifier,
	audit *audit.Dispatcher,
	clock timezone.Clock,
) *CreateAppointment {
	return &CreateAppointment{
		repo:     repo,
		loyalty:  loyalty,
		notifier: notifier,
		audit:    audit,
		clock:    clock,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// CheckDate parses a requested start and rejects anything not strictly after
// now. Callers may run it on its own when the rest of a request is unusable.
func (uc *CreateAppointment) CheckDate(raw string) (time.Time, error) {
	now := uc.clock()

	start, err := domain.ParseAppointmentDate(raw, now.Location())
	if err != nil {
		return time.Time{}, err
	}
	if !start.After(now) {
		return time.Time{}, domain.ErrPastDate
	}
	return start, nil
}

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1. Date, checked before anything else
	// --------------------------------------------------
	start, err := uc.CheckDate(in.AppointmentDate)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2. Customer fields
	// --------------------------------------------------
	name := strings.TrimSpace(in.CustomerName)
	phone := validators.NormalizePhone(in.CustomerPhone)
	email := strings.ToLower(strings.TrimSpace(in.CustomerEmail))

	if err := validateCustomer(name, phone, email); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3. Service and barber
	// --------------------------------------------------
	svc, barber, err := uc.resolveCatalog(ctx, in.ServiceID, in.BarberID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 4. Insert, guarded by the slot uniqueness rule
	// --------------------------------------------------
	ap := &models.Appointment{
		CustomerName:    name,
		CustomerPhone:   phone,
		CustomerEmail:   email,
		ServiceID:       svc.ID,
		BarberID:        barber.ID,
		AppointmentDate: start,
		Notes:           strings.TrimSpace(in.Notes),
		Status:          string(domain.InitialStatus()),
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		if errors.Is(err, domain.ErrDuplicateSlot) {
			metrics.BookingConflicts.Inc()
		}
		return nil, err
	}

	ap.Service = svc
	ap.Barber = barber
	metrics.BookingsCreated.Inc()

	// --------------------------------------------------
	// 5. Best-effort side effects
	// --------------------------------------------------
	uc.afterCreate(detach(ctx), ap)

	return ap, nil
}

func validateCustomer(name, phone, email string) error {
	switch {
	case name == "":
		return httperr.Validation("missing_customer_name", "Customer name is required.")
	case len(name) > 100:
		return httperr.Validation("invalid_customer_name", "Customer name is too long.")
	case phone == "":
		return httperr.Validation("missing_customer_phone", "Customer phone is required.")
	case !validators.IsPhoneValid(phone):
		return httperr.Validation("invalid_customer_phone", "Customer phone is not a valid number.")
	case email == "":
		return httperr.Validation("missing_customer_email", "Customer email is required.")
	case !validators.IsEmailFormatValid(email):
		return httperr.Validation("invalid_customer_email", "Customer email is not valid.")
	}
	return nil
}

func (uc *CreateAppointment) resolveCatalog(
	ctx context.Context,
	serviceID uint,
	barberID uint,
) (*models.Service, *models.Barber, error) {

	if serviceID == 0 {
		return nil, nil, httperr.Validation("missing_service", "Service is required.")
	}
	if barberID == 0 {
		return nil, nil, httperr.Validation("missing_barber", "Barber is required.")
	}

	svc, err := uc.repo.GetService(ctx, serviceID)
	if errors.Is(err, domain.ErrServiceNotFound) || (err == nil && !svc.Active) {
		return nil, nil, httperr.Validation("unknown_service", "The selected service is not available.")
	}
	if err != nil {
		return nil, nil, err
	}

	barber, err := uc.repo.GetBarber(ctx, barberID)
	if errors.Is(err, domain.ErrBarberNotFound) || (err == nil && !barber.Active) {
		return nil, nil, httperr.Validation("unknown_barber", "The selected barber is not available.")
	}
	if err != nil {
		return nil, nil, err
	}

	if svc.BarberID != nil && *svc.BarberID != barber.ID {
		return nil, nil, httperr.Validation("service_not_offered", "This barber does not offer the selected service.")
	}

	return svc, barber, nil
}

func (uc *CreateAppointment) afterCreate(ctx context.Context, ap *models.Appointment) {
	if _, err := uc.loyalty.EnsureCustomer(ctx, ap.CustomerName, ap.CustomerPhone, ap.CustomerEmail); err != nil {
		sideEffect("loyalty_customer", ap.ID, err)
	}

	sideEffect("loyalty_award", ap.ID, uc.loyalty.AwardForAppointment(ctx, ap, loyalty.AwardOnBooking))

	sideEffect("barber_client", ap.ID, uc.repo.EnsureBarberClient(ctx, &models.BarberClient{
		BarberID: ap.BarberID,
		Phone:    ap.CustomerPhone,
		Name:     ap.CustomerName,
		Email:    ap.CustomerEmail,
	}))

	summary := notify.SummaryOf(ap)
	uc.notifier.Notify(notify.KindConfirmation, summary)
	uc.notifier.Notify(notify.KindOwnerAlert, summary)

	uc.audit.Dispatch(audit.Event{
		Actor:    audit.ActorCustomer,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"barber_id":        ap.BarberID,
			"service_id":       ap.ServiceID,
			"appointment_date": ap.AppointmentDate,
		},
	})
}
