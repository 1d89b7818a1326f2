package notify

import (
	"context"

	"github.com/rs/zerolog/log"
)

// LogChannel stands in for a provider that is not configured. Messages are
// logged and reported as sent.
type LogChannel struct {
	name string
}

func NewLogChannel(name string) *LogChannel {
	return &LogChannel{name: name}
}

func (l *LogChannel) Name() string {
	return l.name
}

func (l *LogChannel) Send(_ context.Context, msg Message) (string, error) {
	log.Info().
		Str("channel", l.name).
		Str("kind", string(msg.Kind)).
		Str("to", msg.To).
		Uint("appointment_id", msg.AppointmentID).
		Msg("notification (no provider configured)")
	return "log", nil
}
