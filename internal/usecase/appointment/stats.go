package appointment

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

type DashboardStats struct {
	repo  domain.Repository
	clock timezone.Clock
}

func NewDashboardStats(
	repo domain.Repository,
	clock timezone.Clock,
) *DashboardStats {
	return &DashboardStats{
		repo:  repo,
		clock: clock,
	}
}

// Execute counts non-cancelled bookings for today, the current week (Monday
// start) and the current month, plus every confirmed booking still ahead.
// Revenue sums service prices of completed bookings this month.
func (uc *DashboardStats) Execute(ctx context.Context) (*dto.DashboardStatsDTO, error) {
	now := uc.clock()
	loc := now.Location()

	dayStart, dayEnd := domain.DayBounds(now, loc)

	weekStart := dayStart.AddDate(0, 0, -((int(dayStart.Weekday()) + 6) % 7))
	weekEnd := weekStart.AddDate(0, 0, 7)

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
	monthEnd := monthStart.AddDate(0, 1, 0)

	// One query covers the widest window; the rest is counted in memory.
	from := weekStart
	if monthStart.Before(from) {
		from = monthStart
	}
	to := weekEnd
	if monthEnd.After(to) {
		to = monthEnd
	}

	aps, err := uc.repo.ListAppointments(ctx, domain.ListFilter{From: &from, To: &to})
	if err != nil {
		return nil, err
	}

	out := &dto.DashboardStatsDTO{MonthRevenue: decimal.Zero}

	for i := range aps {
		ap := &aps[i]
		at := ap.AppointmentDate
		st := domain.Status(ap.Status)
		inMonth := within(at, monthStart, monthEnd)

		switch st {
		case domain.StatusCancelled:
			if inMonth {
				out.CancelledThisMonth++
			}
			continue
		case domain.StatusCompleted:
			if inMonth {
				out.CompletedThisMonth++
				if ap.Service != nil {
					out.MonthRevenue = out.MonthRevenue.Add(ap.Service.Price)
				}
			}
		}

		if within(at, dayStart, dayEnd) {
			out.Today++
		}
		if within(at, weekStart, weekEnd) {
			out.ThisWeek++
		}
		if inMonth {
			out.ThisMonth++
		}
	}

	confirmed := domain.StatusConfirmed
	upcoming, err := uc.repo.ListAppointments(ctx, domain.ListFilter{From: &now, Status: &confirmed})
	if err != nil {
		return nil, err
	}
	out.Upcoming = len(upcoming)

	return out, nil
}

func within(t, from, to time.Time) bool {
	return !t.Before(from) && t.Before(to)
}
