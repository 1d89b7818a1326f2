package notify

import (
	"fmt"
	"strings"
)

const (
	shopName   = "Blacksea Barber"
	dateLayout = "02.01.2006"
	timeLayout = "15:04"
)

// Compose turns a booking event into concrete messages. Recipients without
// an address on a channel are skipped.
func Compose(kind Kind, s Summary, r Recipients) []Message {
	var out []Message

	add := func(channel, to, subject, body string) {
		if strings.TrimSpace(to) == "" {
			return
		}
		out = append(out, Message{
			AppointmentID: s.AppointmentID,
			Kind:          kind,
			Channel:       channel,
			To:            to,
			Subject:       subject,
			Body:          body,
		})
	}

	switch kind {
	case KindConfirmation:
		add(ChannelSMS, s.CustomerPhone, "", confirmationSMS(s))
		add(ChannelEmail, s.CustomerEmail, shopName+": booking confirmed", confirmationEmail(s))
	case KindOwnerAlert:
		add(ChannelSMS, r.OwnerPhone, "", ownerSMS(s))
		add(ChannelEmail, r.OwnerEmail, "New booking #"+fmt.Sprint(s.AppointmentID), ownerEmail(s))
	case KindReminder:
		add(ChannelSMS, s.CustomerPhone, "", reminderSMS(s))
	}

	return out
}

func confirmationSMS(s Summary) string {
	return fmt.Sprintf(
		"Hi %s! Your %s with %s is booked for %s at %s. %s",
		s.CustomerName, s.ServiceName, s.BarberName,
		s.When.Format(dateLayout), s.When.Format(timeLayout), shopName,
	)
}

func confirmationEmail(s Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\n", s.CustomerName)
	fmt.Fprintf(&b, "Your appointment is confirmed.\n\n")
	fmt.Fprintf(&b, "Service: %s\n", s.ServiceName)
	fmt.Fprintf(&b, "Barber: %s\n", s.BarberName)
	fmt.Fprintf(&b, "Date: %s\n", s.When.Format(dateLayout))
	fmt.Fprintf(&b, "Time: %s\n", s.When.Format(timeLayout))
	if !s.Price.IsZero() {
		fmt.Fprintf(&b, "Price: %s\n", s.Price.StringFixed(2))
	}
	fmt.Fprintf(&b, "\nSee you soon,\n%s\n", shopName)
	return b.String()
}

func ownerSMS(s Summary) string {
	return fmt.Sprintf(
		"New booking #%d: %s (%s), %s with %s on %s %s",
		s.AppointmentID, s.CustomerName, s.CustomerPhone, s.ServiceName, s.BarberName,
		s.When.Format(dateLayout), s.When.Format(timeLayout),
	)
}

func ownerEmail(s Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Booking #%d\n\n", s.AppointmentID)
	fmt.Fprintf(&b, "Customer: %s\nPhone: %s\nEmail: %s\n", s.CustomerName, s.CustomerPhone, s.CustomerEmail)
	fmt.Fprintf(&b, "Service: %s\nBarber: %s\n", s.ServiceName, s.BarberName)
	fmt.Fprintf(&b, "When: %s %s\n", s.When.Format(dateLayout), s.When.Format(timeLayout))
	if s.Notes != "" {
		fmt.Fprintf(&b, "Notes: %s\n", s.Notes)
	}
	return b.String()
}

func reminderSMS(s Summary) string {
	return fmt.Sprintf(
		"Hi %s! Reminder: tomorrow at %s you have %s with %s. %s",
		s.CustomerName, s.When.Format(timeLayout), s.ServiceName, s.BarberName, shopName,
	)
}
