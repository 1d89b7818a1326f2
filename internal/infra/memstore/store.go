// Package memstore keeps every repository in process memory and enforces the
// same uniqueness rules as the database schema.
//
// It is for tests only. cmd/api wires the gorm repositories from
// internal/infra/repository and never imports this package.
package memstore

import (
	"sync"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type Store struct {
	mu sync.Mutex

	seq uint

	services      map[uint]*models.Service
	barbers       map[uint]*models.Barber
	appointments  map[uint]*models.Appointment
	barberClients map[uint]*models.BarberClient
	notifications []models.NotificationLog
	auditLogs     []models.AuditLog

	customers    map[uint]*models.LoyaltyCustomer
	transactions []models.PointTransaction
	rewards      map[uint]*models.LoyaltyReward
	redemptions  []models.RewardRedemption
}

func New() *Store {
	return &Store{
		services:      map[uint]*models.Service{},
		barbers:       map[uint]*models.Barber{},
		appointments:  map[uint]*models.Appointment{},
		barberClients: map[uint]*models.BarberClient{},
		customers:     map[uint]*models.LoyaltyCustomer{},
		rewards:       map[uint]*models.LoyaltyReward{},
	}
}

// nextID is shared by every table; callers hold mu.
func (s *Store) nextID() uint {
	s.seq++
	return s.seq
}

// AddService and AddBarber seed fixtures. A zero ID is assigned.
func (s *Store) AddService(svc models.Service) *models.Service {
	s.mu.Lock()
	defer s.mu.Unlock()

	if svc.ID == 0 {
		svc.ID = s.nextID()
	} else if svc.ID > s.seq {
		s.seq = svc.ID
	}
	s.services[svc.ID] = &svc
	out := svc
	return &out
}

func (s *Store) AddBarber(b models.Barber) *models.Barber {
	s.mu.Lock()
	defer s.mu.Unlock()

	if b.ID == 0 {
		b.ID = s.nextID()
	} else if b.ID > s.seq {
		s.seq = b.ID
	}
	s.barbers[b.ID] = &b
	out := b
	return &out
}

func (s *Store) NotificationLogs() []models.NotificationLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.NotificationLog(nil), s.notifications...)
}

func (s *Store) AuditLogs() []models.AuditLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.AuditLog(nil), s.auditLogs...)
}

func (s *Store) Transactions() []models.PointTransaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.PointTransaction(nil), s.transactions...)
}
