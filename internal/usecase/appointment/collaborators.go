package appointment

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/barber-booking/internal/domain/loyalty"
	"github.com/BruksfildServices01/barber-booking/internal/infra/notify"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// Loyalty is the part of the point ledger that booking transitions drive.
type Loyalty interface {
	EnsureCustomer(ctx context.Context, name, phone, email string) (*models.LoyaltyCustomer, error)
	AwardForAppointment(ctx context.Context, ap *models.Appointment, event loyalty.AwardPolicy) error
	ReverseForAppointment(ctx context.Context, ap *models.Appointment) error
}

// Notifier must return immediately; delivery happens elsewhere.
type Notifier interface {
	Notify(kind notify.Kind, s notify.Summary)
}

// sideEffect logs a failed best-effort step. The primary operation has
// already committed and is never rolled back.
func sideEffect(dependency string, appointmentID uint, err error) {
	if err == nil {
		return
	}

	metrics.Failure(dependency)
	log.Error().
		Err(err).
		Str("dependency", dependency).
		Uint("appointment_id", appointmentID).
		Msg("side effect failed")
}

// detach keeps side effects running when the client goes away mid-request.
func detach(ctx context.Context) context.Context {
	return context.WithoutCancel(ctx)
}
