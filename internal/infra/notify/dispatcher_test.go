package notify

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type fakeChannel struct {
	name string
	err  error

	mu   sync.Mutex
	sent []Message
	gate chan struct{}
}

func (f *fakeChannel) Name() string { return f.name }

func (f *fakeChannel) Send(_ context.Context, msg Message) (string, error) {
	if f.gate != nil {
		<-f.gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, msg)
	if f.err != nil {
		return "", f.err
	}
	return "ref-" + msg.To, nil
}

type fakeLogs struct {
	mu      sync.Mutex
	entries []*models.NotificationLog
}

func (f *fakeLogs) SaveNotificationLog(_ context.Context, e *models.NotificationLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, e)
	return nil
}

func testSummary() Summary {
	return Summary{
		AppointmentID: 42,
		CustomerName:  "Ivan",
		CustomerPhone: "+359888123456",
		CustomerEmail: "ivan@example.com",
		ServiceName:   "Haircut",
		BarberName:    "Georgi",
		Price:         decimal.RequireFromString("40.00"),
		When:          time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestComposeSkipsMissingRecipients(t *testing.T) {
	s := testSummary()
	s.CustomerEmail = ""

	msgs := Compose(KindConfirmation, s, Recipients{})
	require.Len(t, msgs, 1)
	assert.Equal(t, ChannelSMS, msgs[0].Channel)
	assert.Contains(t, msgs[0].Body, "10:00")

	owner := Compose(KindOwnerAlert, s, Recipients{OwnerPhone: "+359700", OwnerEmail: "owner@example.com"})
	require.Len(t, owner, 2)
	assert.Equal(t, "+359700", owner[0].To)
	assert.Equal(t, "owner@example.com", owner[1].To)

	assert.Empty(t, Compose(KindOwnerAlert, s, Recipients{}))
}

func TestNotifyDeliversInBackgroundAndLogs(t *testing.T) {
	sms := &fakeChannel{name: ChannelSMS}
	email := &fakeChannel{name: ChannelEmail, err: errors.New("smtp refused")}
	logs := &fakeLogs{}

	d := NewDispatcher([]Channel{sms, email}, logs, Recipients{}, 10, 2)
	d.Notify(KindConfirmation, testSummary())
	d.Close()

	assert.Len(t, sms.sent, 1)
	assert.Len(t, email.sent, 1)
	require.Len(t, logs.entries, 2)

	byChannel := map[string]*models.NotificationLog{}
	for _, e := range logs.entries {
		byChannel[e.Channel] = e
	}
	assert.Equal(t, StatusSent, byChannel[ChannelSMS].Status)
	assert.Equal(t, "ref-+359888123456", byChannel[ChannelSMS].ProviderRef)
	assert.Equal(t, StatusFailed, byChannel[ChannelEmail].Status)
	assert.Contains(t, byChannel[ChannelEmail].ErrorMessage, "smtp refused")
	assert.Equal(t, uint(42), byChannel[ChannelEmail].AppointmentID)
}

func TestNotifyNeverBlocksWhenQueueIsFull(t *testing.T) {
	gate := make(chan struct{})
	sms := &fakeChannel{name: ChannelSMS, gate: gate}

	d := NewDispatcher([]Channel{sms}, nil, Recipients{OwnerPhone: "+1000000"}, 1, 1)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 20; i++ {
			d.Notify(KindOwnerAlert, testSummary())
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Notify blocked on a full queue")
	}

	close(gate)
	d.Close()
	assert.LessOrEqual(t, len(sms.sent), 2)
}

func TestReminderIsSynchronous(t *testing.T) {
	sms := &fakeChannel{name: ChannelSMS}
	logs := &fakeLogs{}
	d := NewDispatcher([]Channel{sms}, logs, Recipients{}, 1, 1)
	defer d.Close()

	require.NoError(t, d.Reminder(context.Background(), testSummary()))
	require.Len(t, sms.sent, 1)
	assert.Equal(t, KindReminder, sms.sent[0].Kind)
	assert.Len(t, logs.entries, 1)

	sms.err = errors.New("twilio down")
	assert.Error(t, d.Reminder(context.Background(), testSummary()))

	noPhone := testSummary()
	noPhone.CustomerPhone = ""
	assert.Error(t, d.Reminder(context.Background(), noPhone))
}

func TestDeliverWithoutChannel(t *testing.T) {
	d := NewDispatcher(nil, nil, Recipients{}, 1, 1)
	defer d.Close()

	err := d.Deliver(context.Background(), Message{Channel: ChannelEmail, To: "x@example.com"})
	assert.Error(t, err)
}

func TestSMTPEmailBuildsMessage(t *testing.T) {
	e := NewSMTPEmail("smtp.example.com", 587, "user", "pw", "shop@example.com")

	var gotAddr string
	var gotTo []string
	var gotBody string
	e.send = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotTo, gotBody = addr, to, string(msg)
		return nil
	}

	ref, err := e.Send(context.Background(), Message{To: "ivan@example.com", Subject: "Hello", Body: "line1\nline2"})
	require.NoError(t, err)

	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.Equal(t, []string{"ivan@example.com"}, gotTo)
	assert.True(t, strings.HasSuffix(ref, "@smtp.example.com>"))
	assert.Contains(t, gotBody, "Subject: Hello\r\n")
	assert.Contains(t, gotBody, "line1\r\nline2")
}
