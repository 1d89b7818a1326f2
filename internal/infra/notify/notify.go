package notify

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type Kind string

const (
	KindConfirmation Kind = "booking_confirmation"
	KindOwnerAlert   Kind = "owner_alert"
	KindReminder     Kind = "reminder"
)

const (
	ChannelSMS   = "sms"
	ChannelEmail = "email"
)

const (
	StatusSent   = "sent"
	StatusFailed = "failed"
)

// Summary is everything a notification may say about one booking.
type Summary struct {
	AppointmentID uint
	CustomerName  string
	CustomerPhone string
	CustomerEmail string
	ServiceName   string
	BarberName    string
	Price         decimal.Decimal
	When          time.Time
	Notes         string
}

func SummaryOf(ap *models.Appointment) Summary {
	s := Summary{
		AppointmentID: ap.ID,
		CustomerName:  ap.CustomerName,
		CustomerPhone: ap.CustomerPhone,
		CustomerEmail: ap.CustomerEmail,
		When:          ap.AppointmentDate,
		Notes:         ap.Notes,
	}
	if ap.Service != nil {
		s.ServiceName = ap.Service.Name
		s.Price = ap.Service.Price
	}
	if ap.Barber != nil {
		s.BarberName = ap.Barber.Name
	}
	return s
}

type Message struct {
	AppointmentID uint
	Kind          Kind
	Channel       string
	To            string
	Subject       string
	Body          string
}

// Channel delivers one message and returns a provider reference.
type Channel interface {
	Name() string
	Send(ctx context.Context, msg Message) (string, error)
}

type LogStore interface {
	SaveNotificationLog(ctx context.Context, entry *models.NotificationLog) error
}

type Recipients struct {
	OwnerPhone string
	OwnerEmail string
}
