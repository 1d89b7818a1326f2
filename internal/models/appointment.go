package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CustomerName  string `gorm:"size:100;not null" json:"customer_name"`
	CustomerPhone string `gorm:"size:30;not null;index" json:"customer_phone"`
	CustomerEmail string `gorm:"size:100" json:"customer_email"`

	ServiceID uint     `gorm:"not null" json:"service_id"`
	Service   *Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"service,omitempty"`

	BarberID uint    `gorm:"not null;index:idx_appointments_barber_date,priority:1" json:"barber_id"`
	Barber   *Barber `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"barber,omitempty"`

	AppointmentDate time.Time `gorm:"not null;index:idx_appointments_barber_date,priority:2" json:"appointment_date"`

	Notes  string `gorm:"type:text" json:"notes"`
	Status string `gorm:"size:20;not null;default:'confirmed'" json:"status"`

	ReminderSent   bool       `gorm:"not null;default:false" json:"reminder_sent"`
	ReminderSentAt *time.Time `json:"reminder_sent_at"`

	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
