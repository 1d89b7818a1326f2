package reminder

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/infra/notify"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

// Sender delivers one reminder and reports whether it went out.
type Sender interface {
	Reminder(ctx context.Context, s notify.Summary) error
}

type Result struct {
	Due    int    `json:"due"`
	Sent   int    `json:"sent"`
	Failed []uint `json:"failed"`
}

var ErrNotRemindable = httperr.New(
	httperr.KindUnprocessable,
	"not_remindable",
	"Only confirmed appointments get reminders.",
)

type ProcessReminders struct {
	repo   domain.Repository
	sender Sender
	audit  *audit.Dispatcher
	clock  timezone.Clock
}

func NewProcessReminders(
	repo domain.Repository,
	sender Sender,
	audit *audit.Dispatcher,
	clock timezone.Clock,
) *ProcessReminders {
	return &ProcessReminders{
		repo:   repo,
		sender: sender,
		audit:  audit,
		clock:  clock,
	}
}

// Execute reminds every confirmed booking on tomorrow's shop-local date that
// has not been reminded yet. A booking is flagged only after its send
// succeeds, so failures are retried on the next run.
func (uc *ProcessReminders) Execute(ctx context.Context) (*Result, error) {
	now := uc.clock()
	from, to := domain.DayBounds(now.AddDate(0, 0, 1), now.Location())

	due, err := uc.repo.ListDueReminders(ctx, from, to)
	if err != nil {
		return nil, err
	}

	res := &Result{Due: len(due), Failed: []uint{}}

	for i := range due {
		if err := uc.send(ctx, &due[i]); err != nil {
			metrics.Failure("reminder")
			log.Warn().Err(err).Uint("appointment_id", due[i].ID).Msg("reminder failed")
			res.Failed = append(res.Failed, due[i].ID)
			continue
		}
		res.Sent++
	}

	if res.Due > 0 {
		log.Info().
			Int("due", res.Due).
			Int("sent", res.Sent).
			Int("failed", len(res.Failed)).
			Msg("reminders processed")

		uc.audit.Dispatch(audit.Event{
			Actor:    audit.ActorSystem,
			Action:   "reminders_processed",
			Entity:   "appointment",
			Metadata: res,
		})
	}

	return res, nil
}

// SendOne reminds a single booking regardless of its date or flag.
func (uc *ProcessReminders) SendOne(ctx context.Context, id uint) (*models.Appointment, error) {
	ap, err := uc.repo.GetAppointment(ctx, id)
	if err != nil {
		return nil, err
	}

	if domain.Status(ap.Status) != domain.StatusConfirmed {
		return nil, ErrNotRemindable
	}

	if err := uc.send(ctx, ap); err != nil {
		return nil, httperr.New(httperr.KindUnavailable, "reminder_failed", err.Error())
	}

	uc.audit.Dispatch(audit.Event{
		Actor:    audit.ActorAdmin,
		Action:   "reminder_sent",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return uc.repo.GetAppointment(ctx, id)
}

func (uc *ProcessReminders) send(ctx context.Context, ap *models.Appointment) error {
	if err := uc.sender.Reminder(ctx, notify.SummaryOf(ap)); err != nil {
		return err
	}
	return uc.repo.MarkReminderSent(ctx, ap.ID, uc.clock())
}
