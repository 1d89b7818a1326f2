package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Catalog
// --------------------------------------------------

func (r *AppointmentGormRepository) GetService(
	ctx context.Context,
	id uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).First(&svc, id).Error; err != nil {
		return nil, notFound(err, domain.ErrServiceNotFound)
	}
	return &svc, nil
}

func (r *AppointmentGormRepository) GetBarber(
	ctx context.Context,
	id uint,
) (*models.Barber, error) {

	var barber models.Barber
	if err := r.db.WithContext(ctx).First(&barber, id).Error; err != nil {
		return nil, notFound(err, domain.ErrBarberNotFound)
	}
	return &barber, nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *AppointmentGormRepository) ListBookedTimes(
	ctx context.Context,
	barberID uint,
	from time.Time,
	to time.Time,
) ([]time.Time, error) {

	var times []time.Time
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"barber_id = ? AND status <> ? AND appointment_date >= ? AND appointment_date < ?",
			barberID, string(domain.StatusCancelled), from, to,
		).
		Order("appointment_date ASC").
		Pluck("appointment_date", &times).Error; err != nil {
		return nil, err
	}

	return times, nil
}

// --------------------------------------------------
// Appointment (create)
// --------------------------------------------------

// CreateAppointment reads before inserting for a friendly error, but the
// partial unique index ux_appointments_barber_slot is what closes the race
// between concurrent submissions.
func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.
			Model(&models.Appointment{}).
			Where(
				"barber_id = ? AND appointment_date = ? AND status <> ?",
				ap.BarberID, ap.AppointmentDate, string(domain.StatusCancelled),
			).
			Count(&count).Error; err != nil {
			return err
		}

		if count > 0 {
			return domain.ErrDuplicateSlot
		}

		if err := tx.Omit(clause.Associations).Create(ap).Error; err != nil {
			if isUniqueViolation(err) {
				return domain.ErrDuplicateSlot
			}
			return err
		}

		return nil
	})
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Preload("Barber").
		First(&ap, id).Error; err != nil {
		return nil, notFound(err, domain.ErrAppointmentNotFound)
	}

	return &ap, nil
}

// UpdateAppointment runs fn against the row while holding FOR UPDATE, so
// concurrent status changes on one appointment serialize and only one of
// them observes the confirmed state.
func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	id uint,
	fn domain.Mutator,
) (*models.Appointment, bool, error) {

	var dirty bool

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ap models.Appointment
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&ap, id).Error; err != nil {
			return notFound(err, domain.ErrAppointmentNotFound)
		}

		changed, err := fn(&ap)
		if err != nil {
			return err
		}
		if !changed {
			return nil
		}

		dirty = true
		return tx.Omit(clause.Associations).Save(&ap).Error
	})
	if err != nil {
		return nil, false, err
	}

	ap, err := r.GetAppointment(ctx, id)
	if err != nil {
		return nil, false, err
	}

	return ap, dirty, nil
}

func (r *AppointmentGormRepository) DeleteAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var deleted models.Appointment

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Preload("Service").
			Preload("Barber").
			First(&deleted, id).Error; err != nil {
			return notFound(err, domain.ErrAppointmentNotFound)
		}

		if err := tx.
			Where("appointment_id = ?", id).
			Delete(&models.NotificationLog{}).Error; err != nil {
			return err
		}

		res := tx.Delete(&models.Appointment{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrAppointmentNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &deleted, nil
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

func (r *AppointmentGormRepository) ListAppointments(
	ctx context.Context,
	f domain.ListFilter,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Service").
		Preload("Barber")

	if f.From != nil {
		q = q.Where("appointment_date >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("appointment_date < ?", *f.To)
	}
	if f.BarberID != nil {
		q = q.Where("barber_id = ?", *f.BarberID)
	}
	if f.Status != nil {
		q = q.Where("status = ?", string(*f.Status))
	}

	order := "appointment_date ASC"
	if f.NewestFirst {
		order = "appointment_date DESC"
	}

	var apps []models.Appointment
	if err := q.Order(order).Order("id ASC").Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

// --------------------------------------------------
// Reminders
// --------------------------------------------------

func (r *AppointmentGormRepository) ListDueReminders(
	ctx context.Context,
	from time.Time,
	to time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Preload("Barber").
		Where(
			"status = ? AND reminder_sent = ? AND appointment_date >= ? AND appointment_date < ?",
			string(domain.StatusConfirmed), false, from, to,
		).
		Order("appointment_date ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *AppointmentGormRepository) MarkReminderSent(
	ctx context.Context,
	id uint,
	at time.Time,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"reminder_sent":    true,
			"reminder_sent_at": at,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrAppointmentNotFound
	}
	return nil
}

// --------------------------------------------------
// Barber clients
// --------------------------------------------------

var barberClientKey = []clause.Column{{Name: "barber_id"}, {Name: "phone"}}

func (r *AppointmentGormRepository) EnsureBarberClient(
	ctx context.Context,
	client *models.BarberClient,
) error {

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: barberClientKey, DoNothing: true}).
		Create(client).Error
}

func (r *AppointmentGormRepository) RecordVisit(
	ctx context.Context,
	client *models.BarberClient,
	at time.Time,
) error {

	client.TotalVisits = 1
	client.LastVisit = &at

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: barberClientKey,
			DoUpdates: clause.Assignments(map[string]any{
				"total_visits": gorm.Expr("barber_clients.total_visits + 1"),
				"last_visit":   at,
				"updated_at":   at,
			}),
		}).
		Create(client).Error
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
