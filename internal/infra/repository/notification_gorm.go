package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type NotificationGormRepository struct {
	db *gorm.DB
}

func NewNotificationGormRepository(db *gorm.DB) *NotificationGormRepository {
	return &NotificationGormRepository{db: db}
}

func (r *NotificationGormRepository) SaveNotificationLog(ctx context.Context, entry *models.NotificationLog) error {
	return r.db.WithContext(ctx).Omit("Appointment").Create(entry).Error
}

func (r *NotificationGormRepository) ListForAppointment(ctx context.Context, appointmentID uint) ([]models.NotificationLog, error) {
	var out []models.NotificationLog
	if err := r.db.WithContext(ctx).
		Where("appointment_id = ?", appointmentID).
		Order("sent_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
