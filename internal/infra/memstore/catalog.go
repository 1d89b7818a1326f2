package memstore

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

func (s *Store) ListServices(_ context.Context, barberID *uint, activeOnly bool) ([]models.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.Service{}
	for _, svc := range s.services {
		if activeOnly && !svc.Active {
			continue
		}
		if barberID != nil && svc.BarberID != nil && *svc.BarberID != *barberID {
			continue
		}
		out = append(out, *svc)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Price.Equal(out[j].Price) {
			return out[i].ID < out[j].ID
		}
		return out[i].Price.LessThan(out[j].Price)
	})
	return out, nil
}

func (s *Store) CreateService(_ context.Context, svc *models.Service) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	svc.ID = s.nextID()
	row := *svc
	s.services[svc.ID] = &row
	return nil
}

func (s *Store) SetServiceActive(ctx context.Context, id uint, active bool) (*models.Service, error) {
	s.mu.Lock()
	svc, ok := s.services[id]
	if ok {
		svc.Active = active
	}
	s.mu.Unlock()

	if !ok {
		return nil, domain.ErrServiceNotFound
	}
	return s.GetService(ctx, id)
}

func (s *Store) SetServiceImage(ctx context.Context, id uint, url string) (*models.Service, error) {
	s.mu.Lock()
	svc, ok := s.services[id]
	if ok {
		svc.ImageURL = url
	}
	s.mu.Unlock()

	if !ok {
		return nil, domain.ErrServiceNotFound
	}
	return s.GetService(ctx, id)
}

func (s *Store) ListBarbers(_ context.Context, activeOnly bool) ([]models.Barber, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.Barber{}
	for _, b := range s.barbers {
		if activeOnly && !b.Active {
			continue
		}
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) CreateBarber(_ context.Context, b *models.Barber) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b.ID = s.nextID()
	row := *b
	s.barbers[b.ID] = &row
	return nil
}

func (s *Store) SetBarberActive(ctx context.Context, id uint, active bool) (*models.Barber, error) {
	s.mu.Lock()
	b, ok := s.barbers[id]
	if ok {
		b.Active = active
	}
	s.mu.Unlock()

	if !ok {
		return nil, domain.ErrBarberNotFound
	}
	return s.GetBarber(ctx, id)
}

func (s *Store) SetBarberImage(ctx context.Context, id uint, url string) (*models.Barber, error) {
	s.mu.Lock()
	b, ok := s.barbers[id]
	if ok {
		b.ImageURL = url
	}
	s.mu.Unlock()

	if !ok {
		return nil, domain.ErrBarberNotFound
	}
	return s.GetBarber(ctx, id)
}

func (s *Store) ListBarberClients(_ context.Context, barberID uint, query string) ([]models.BarberClient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query = strings.ToLower(strings.TrimSpace(query))

	out := []models.BarberClient{}
	for _, c := range s.barberClients {
		if c.BarberID != barberID {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(c.Name), query) &&
			!strings.Contains(c.Phone, query) &&
			!strings.Contains(strings.ToLower(c.Email), query) {
			continue
		}
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) CreateBarberClient(_ context.Context, c *models.BarberClient) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findClient(c.BarberID, c.Phone) != nil {
		return domain.ErrClientExists
	}

	c.ID = s.nextID()
	c.CreatedAt = time.Now()
	row := *c
	s.barberClients[c.ID] = &row
	return nil
}

// --------------------------------------------------
// Notification and audit sinks
// --------------------------------------------------

func (s *Store) SaveNotificationLog(_ context.Context, entry *models.NotificationLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry.ID = s.nextID()
	s.notifications = append(s.notifications, *entry)
	return nil
}

func (s *Store) ListForAppointment(_ context.Context, appointmentID uint) ([]models.NotificationLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.NotificationLog{}
	for i := len(s.notifications) - 1; i >= 0; i-- {
		if s.notifications[i].AppointmentID == appointmentID {
			out = append(out, s.notifications[i])
		}
	}
	return out, nil
}

func (s *Store) Write(_ context.Context, entry *models.AuditLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry.ID = s.nextID()
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	s.auditLogs = append(s.auditLogs, *entry)
	return nil
}

func (s *Store) ListAuditLogs(_ context.Context, f audit.Filter) ([]models.AuditLog, int64, error) {
	f = f.Normalize()

	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []models.AuditLog
	for i := len(s.auditLogs) - 1; i >= 0; i-- {
		if f.Matches(s.auditLogs[i]) {
			matched = append(matched, s.auditLogs[i])
		}
	}

	total := int64(len(matched))
	start := f.Offset()
	if start >= len(matched) {
		return []models.AuditLog{}, total, nil
	}
	end := start + f.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}
