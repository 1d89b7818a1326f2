package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/domain/loyalty"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

type UpdateStatusInput struct {
	ID     uint
	Status string
	Notes  *string
}

type UpdateAppointmentStatus struct {
	repo    domain.Repository
	loyalty Loyalty
	audit   *audit.Dispatcher
	clock   timezone.Clock
}

func NewUpdateAppointmentStatus(
	repo domain.Repository,
	loyalty Loyalty,
	audit *audit.Dispatcher,
	clock timezone.Clock,
) *UpdateAppointmentStatus {
	return &UpdateAppointmentStatus{
		repo:    repo,
		loyalty: loyalty,
		audit:   audit,
		clock:   clock,
	}
}

func (uc *UpdateAppointmentStatus) Execute(
	ctx context.Context,
	in UpdateStatusInput,
) (*models.Appointment, error) {
	ap, _, err := uc.apply(ctx, in)
	return ap, err
}

// apply reports whether the status actually moved. Side effects run only for
// the request that moved it; the row lock makes that exactly one request.
func (uc *UpdateAppointmentStatus) apply(
	ctx context.Context,
	in UpdateStatusInput,
) (*models.Appointment, bool, error) {

	target, err := domain.ParseStatus(in.Status)
	if err != nil {
		return nil, false, err
	}

	now := uc.clock()
	var (
		moved bool
		from  domain.Status
	)

	ap, _, err := uc.repo.UpdateAppointment(ctx, in.ID, func(ap *models.Appointment) (bool, error) {
		from = domain.Status(ap.Status)

		changed, err := domain.Apply(ap, target, in.Notes, now)
		if err != nil {
			return false, err
		}

		moved = changed
		return changed || in.Notes != nil, nil
	})
	if err != nil {
		return nil, false, err
	}

	if moved {
		metrics.StatusTransitions.WithLabelValues(string(target)).Inc()
		uc.afterTransition(detach(ctx), ap, from, target, now)
	}

	return ap, moved, nil
}

func (uc *UpdateAppointmentStatus) afterTransition(
	ctx context.Context,
	ap *models.Appointment,
	from domain.Status,
	to domain.Status,
	now time.Time,
) {
	switch to {
	case domain.StatusCompleted:
		sideEffect("barber_client", ap.ID, uc.repo.RecordVisit(ctx, &models.BarberClient{
			BarberID: ap.BarberID,
			Phone:    ap.CustomerPhone,
			Name:     ap.CustomerName,
			Email:    ap.CustomerEmail,
		}, now))

		sideEffect("loyalty_award", ap.ID, uc.loyalty.AwardForAppointment(ctx, ap, loyalty.AwardOnCompletion))

	case domain.StatusCancelled:
		sideEffect("loyalty_reversal", ap.ID, uc.loyalty.ReverseForAppointment(ctx, ap))
	}

	uc.audit.Dispatch(audit.Event{
		Actor:    audit.ActorAdmin,
		Action:   "appointment_" + string(to),
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{"from": from, "to": to},
	})
}
