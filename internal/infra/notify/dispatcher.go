package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/barber-booking/internal/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

const sendTimeout = 15 * time.Second

// Dispatcher fans booking events out to the configured channels. Notify
// queues work for background workers and never blocks; Deliver sends
// synchronously for callers that must know the outcome.
type Dispatcher struct {
	channels   map[string]Channel
	logs       LogStore
	recipients Recipients
	queue      chan Message
	now        func() time.Time

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

func NewDispatcher(
	channels []Channel,
	logs LogStore,
	recipients Recipients,
	queueSize int,
	workers int,
) *Dispatcher {
	if queueSize <= 0 {
		queueSize = 100
	}
	if workers <= 0 {
		workers = 1
	}

	d := &Dispatcher{
		channels:   make(map[string]Channel, len(channels)),
		logs:       logs,
		recipients: recipients,
		queue:      make(chan Message, queueSize),
		now:        time.Now,
	}
	for _, ch := range channels {
		d.channels[ch.Name()] = ch
	}

	d.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go d.worker()
	}

	return d
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()

	for msg := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		if err := d.Deliver(ctx, msg); err != nil {
			log.Warn().
				Err(err).
				Uint("appointment_id", msg.AppointmentID).
				Str("channel", msg.Channel).
				Str("kind", string(msg.Kind)).
				Msg("notification failed")
		}
		cancel()
	}
}

// Notify composes and queues messages for kind. A full queue drops the
// message; the booking it describes is unaffected.
func (d *Dispatcher) Notify(kind Kind, s Summary) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return
	}

	for _, msg := range Compose(kind, s, d.recipients) {
		select {
		case d.queue <- msg:
		default:
			metrics.NotificationsDropped.Inc()
			log.Warn().
				Uint("appointment_id", msg.AppointmentID).
				Str("channel", msg.Channel).
				Msg("notification queue full, dropping message")
		}
	}
}

// Deliver sends msg on its channel and records the attempt.
func (d *Dispatcher) Deliver(ctx context.Context, msg Message) error {
	ch, ok := d.channels[msg.Channel]
	if !ok {
		return fmt.Errorf("no %s channel configured", msg.Channel)
	}

	ref, err := ch.Send(ctx, msg)

	entry := &models.NotificationLog{
		AppointmentID: msg.AppointmentID,
		Channel:       msg.Channel,
		Kind:          string(msg.Kind),
		Recipient:     msg.To,
		Message:       msg.Body,
		Status:        StatusSent,
		ProviderRef:   ref,
		SentAt:        d.now(),
	}
	if err != nil {
		entry.Status = StatusFailed
		entry.ErrorMessage = err.Error()
	}
	metrics.NotificationsSent.WithLabelValues(msg.Channel, string(msg.Kind), entry.Status).Inc()

	if d.logs != nil {
		if logErr := d.logs.SaveNotificationLog(ctx, entry); logErr != nil {
			log.Error().Err(logErr).Uint("appointment_id", msg.AppointmentID).Msg("notification log write failed")
		}
	}

	if err != nil {
		return fmt.Errorf("send %s to %s: %w", msg.Channel, msg.To, err)
	}
	return nil
}

// Reminder composes the reminder for s and delivers it synchronously.
func (d *Dispatcher) Reminder(ctx context.Context, s Summary) error {
	msgs := Compose(KindReminder, s, d.recipients)
	if len(msgs) == 0 {
		return fmt.Errorf("appointment %d has no reminder recipient", s.AppointmentID)
	}

	for _, msg := range msgs {
		if err := d.Deliver(ctx, msg); err != nil {
			return err
		}
	}
	return nil
}

// Close stops accepting messages and waits for queued ones.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	d.wg.Wait()
}
