package audit

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type recordingSink struct {
	mu      sync.Mutex
	entries []*models.AuditLog
	err     error
}

func (s *recordingSink) Write(_ context.Context, entry *models.AuditLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return s.err
}

func TestDispatcherDrainsOnClose(t *testing.T) {
	sink := &recordingSink{}
	d := NewDispatcher(sink, 10)

	id := uint(7)
	d.Dispatch(Event{Actor: ActorAdmin, Action: "appointment_completed", Entity: "appointment", EntityID: &id, Metadata: map[string]any{"from": "confirmed"}})
	d.Dispatch(Event{Action: "appointment_created", Entity: "appointment"})
	d.Close()

	require.Len(t, sink.entries, 2)
	assert.Equal(t, "admin", sink.entries[0].Actor)
	assert.JSONEq(t, `{"from":"confirmed"}`, sink.entries[0].Metadata)
	assert.Equal(t, ActorSystem, sink.entries[1].Actor)

	// after close events are ignored
	d.Dispatch(Event{Action: "late"})
	assert.Len(t, sink.entries, 2)
}

func TestDispatcherSurvivesSinkErrors(t *testing.T) {
	sink := &recordingSink{err: errors.New("db down")}
	d := NewDispatcher(sink, 1)

	d.Dispatch(Event{Action: "a"})
	d.Close()

	assert.Len(t, sink.entries, 1)
}

func TestNilDispatcher(t *testing.T) {
	var d *Dispatcher
	assert.NotPanics(t, func() {
		d.Dispatch(Event{Action: "x"})
		d.Close()
	})
}
