package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

type GetAvailability struct {
	repo  domain.Repository
	slots []string
	clock timezone.Clock
}

func NewGetAvailability(
	repo domain.Repository,
	slots []string,
	clock timezone.Clock,
) *GetAvailability {
	if len(slots) == 0 {
		slots = domain.DefaultSlots
	}
	return &GetAvailability{
		repo:  repo,
		slots: slots,
		clock: clock,
	}
}

// Execute lists open slots for the barber on the given day. An unknown or
// inactive barber simply has no bookings, so the whole template comes back.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]string, error) {

	now := uc.clock()
	from, _ := domain.DayBounds(in.Date, now.Location())

	booked, err := uc.booked(ctx, in.BarberID, in.Date, now.Location())
	if err != nil {
		return nil, err
	}

	return domain.AvailableSlots(uc.slots, from, now, booked), nil
}

// Booked lists the HH:MM times already held on that day.
func (uc *GetAvailability) Booked(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]string, error) {

	loc := uc.clock().Location()

	booked, err := uc.booked(ctx, in.BarberID, in.Date, loc)
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(booked))
	for _, b := range booked {
		out = append(out, b.In(loc).Format("15:04"))
	}
	return out, nil
}

func (uc *GetAvailability) booked(
	ctx context.Context,
	barberID uint,
	date time.Time,
	loc *time.Location,
) ([]time.Time, error) {

	from, to := domain.DayBounds(date, loc)
	return uc.repo.ListBookedTimes(ctx, barberID, from, to)
}
