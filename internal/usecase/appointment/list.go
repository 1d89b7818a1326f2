package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

const defaultCalendarDays = 30

type ListInput struct {
	From     *time.Time
	To       *time.Time
	BarberID *uint
	Status   string
}

type ListAppointments struct {
	repo  domain.Repository
	clock timezone.Clock
}

func NewListAppointments(
	repo domain.Repository,
	clock timezone.Clock,
) *ListAppointments {
	return &ListAppointments{
		repo:  repo,
		clock: clock,
	}
}

// Calendar lists bookings in [from, to). Missing bounds default to now and
// thirty days after from.
func (uc *ListAppointments) Calendar(
	ctx context.Context,
	in ListInput,
) ([]models.Appointment, error) {

	from := uc.clock()
	if in.From != nil {
		from = *in.From
	}

	to := from.AddDate(0, 0, defaultCalendarDays)
	if in.To != nil {
		to = *in.To
	}

	if !to.After(from) {
		return nil, httperr.Validation("invalid_range", "End date must be after start date.")
	}

	filter := domain.ListFilter{
		From:     &from,
		To:       &to,
		BarberID: in.BarberID,
	}

	if in.Status != "" {
		st, err := domain.ParseStatus(in.Status)
		if err != nil {
			return nil, err
		}
		filter.Status = &st
	}

	return uc.repo.ListAppointments(ctx, filter)
}

func (uc *ListAppointments) Today(
	ctx context.Context,
	barberID *uint,
) ([]models.Appointment, error) {

	now := uc.clock()
	from, to := domain.DayBounds(now, now.Location())

	return uc.repo.ListAppointments(ctx, domain.ListFilter{
		From:     &from,
		To:       &to,
		BarberID: barberID,
	})
}

func (uc *ListAppointments) Completed(
	ctx context.Context,
	barberID *uint,
) ([]models.Appointment, error) {

	st := domain.StatusCompleted
	return uc.repo.ListAppointments(ctx, domain.ListFilter{
		BarberID:    barberID,
		Status:      &st,
		NewestFirst: true,
	})
}
