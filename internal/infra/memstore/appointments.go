package memstore

import (
	"context"
	"sort"
	"time"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

func (s *Store) GetService(_ context.Context, id uint) (*models.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	svc, ok := s.services[id]
	if !ok {
		return nil, domain.ErrServiceNotFound
	}
	out := *svc
	return &out, nil
}

func (s *Store) GetBarber(_ context.Context, id uint) (*models.Barber, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.barbers[id]
	if !ok {
		return nil, domain.ErrBarberNotFound
	}
	out := *b
	return &out, nil
}

func (s *Store) ListBookedTimes(_ context.Context, barberID uint, from, to time.Time) ([]time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []time.Time
	for _, ap := range s.appointments {
		if ap.BarberID != barberID || ap.Status == string(domain.StatusCancelled) {
			continue
		}
		if ap.AppointmentDate.Before(from) || !ap.AppointmentDate.Before(to) {
			continue
		}
		out = append(out, ap.AppointmentDate)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out, nil
}

// slotTaken mirrors the partial unique index on (barber_id, appointment_date)
// for non-cancelled rows.
func (s *Store) slotTaken(ap *models.Appointment) bool {
	if ap.Status == string(domain.StatusCancelled) {
		return false
	}
	for id, other := range s.appointments {
		if id == ap.ID || other.Status == string(domain.StatusCancelled) {
			continue
		}
		if other.BarberID == ap.BarberID && other.AppointmentDate.Equal(ap.AppointmentDate) {
			return true
		}
	}
	return false
}

func (s *Store) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.slotTaken(ap) {
		return domain.ErrDuplicateSlot
	}

	ap.ID = s.nextID()
	now := time.Now()
	ap.CreatedAt = now
	ap.UpdatedAt = now

	row := *ap
	row.Service = nil
	row.Barber = nil
	s.appointments[ap.ID] = &row
	return nil
}

// hydrate copies a row and attaches its service and barber. Callers hold mu.
func (s *Store) hydrate(ap *models.Appointment) models.Appointment {
	out := *ap
	if svc, ok := s.services[ap.ServiceID]; ok {
		cp := *svc
		out.Service = &cp
	}
	if b, ok := s.barbers[ap.BarberID]; ok {
		cp := *b
		out.Barber = &cp
	}
	return out
}

func (s *Store) GetAppointment(_ context.Context, id uint) (*models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ap, ok := s.appointments[id]
	if !ok {
		return nil, domain.ErrAppointmentNotFound
	}
	out := s.hydrate(ap)
	return &out, nil
}

func (s *Store) UpdateAppointment(_ context.Context, id uint, fn domain.Mutator) (*models.Appointment, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ap, ok := s.appointments[id]
	if !ok {
		return nil, false, domain.ErrAppointmentNotFound
	}

	work := *ap
	changed, err := fn(&work)
	if err != nil {
		return nil, false, err
	}

	if changed {
		if s.slotTaken(&work) {
			return nil, false, domain.ErrDuplicateSlot
		}
		work.UpdatedAt = time.Now()
		s.appointments[id] = &work
	}

	out := s.hydrate(s.appointments[id])
	return &out, changed, nil
}

func (s *Store) DeleteAppointment(_ context.Context, id uint) (*models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ap, ok := s.appointments[id]
	if !ok {
		return nil, domain.ErrAppointmentNotFound
	}

	out := s.hydrate(ap)
	delete(s.appointments, id)

	kept := s.notifications[:0]
	for _, n := range s.notifications {
		if n.AppointmentID != id {
			kept = append(kept, n)
		}
	}
	s.notifications = kept

	return &out, nil
}

func (s *Store) ListAppointments(_ context.Context, f domain.ListFilter) ([]models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.Appointment{}
	for _, ap := range s.appointments {
		if f.From != nil && ap.AppointmentDate.Before(*f.From) {
			continue
		}
		if f.To != nil && !ap.AppointmentDate.Before(*f.To) {
			continue
		}
		if f.BarberID != nil && ap.BarberID != *f.BarberID {
			continue
		}
		if f.Status != nil && ap.Status != string(*f.Status) {
			continue
		}
		out = append(out, s.hydrate(ap))
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].AppointmentDate, out[j].AppointmentDate
		if a.Equal(b) {
			return out[i].ID < out[j].ID
		}
		if f.NewestFirst {
			return a.After(b)
		}
		return a.Before(b)
	})
	return out, nil
}

func (s *Store) ListDueReminders(ctx context.Context, from, to time.Time) ([]models.Appointment, error) {
	st := domain.StatusConfirmed
	all, err := s.ListAppointments(ctx, domain.ListFilter{From: &from, To: &to, Status: &st})
	if err != nil {
		return nil, err
	}

	out := all[:0]
	for _, ap := range all {
		if !ap.ReminderSent {
			out = append(out, ap)
		}
	}
	return out, nil
}

func (s *Store) MarkReminderSent(_ context.Context, id uint, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ap, ok := s.appointments[id]
	if !ok {
		return domain.ErrAppointmentNotFound
	}
	ap.ReminderSent = true
	ap.ReminderSentAt = &at
	return nil
}

// findClient is keyed like ux_barber_clients_phone. Callers hold mu.
func (s *Store) findClient(barberID uint, phone string) *models.BarberClient {
	for _, c := range s.barberClients {
		if c.BarberID == barberID && c.Phone == phone {
			return c
		}
	}
	return nil
}

func (s *Store) EnsureBarberClient(_ context.Context, client *models.BarberClient) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findClient(client.BarberID, client.Phone) != nil {
		return nil
	}

	row := *client
	row.ID = s.nextID()
	row.CreatedAt = time.Now()
	s.barberClients[row.ID] = &row
	client.ID = row.ID
	return nil
}

func (s *Store) RecordVisit(_ context.Context, client *models.BarberClient, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c := s.findClient(client.BarberID, client.Phone); c != nil {
		c.TotalVisits++
		c.LastVisit = &at
		c.UpdatedAt = at
		return nil
	}

	row := *client
	row.ID = s.nextID()
	row.TotalVisits = 1
	row.LastVisit = &at
	row.CreatedAt = at
	s.barberClients[row.ID] = &row
	return nil
}

var _ domain.Repository = (*Store)(nil)
