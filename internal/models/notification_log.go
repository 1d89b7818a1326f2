package models

import "time"

type NotificationLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AppointmentID uint         `gorm:"not null;index" json:"appointment_id"`
	Appointment   *Appointment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Channel   string `gorm:"size:20;not null" json:"channel"`
	Kind      string `gorm:"size:30;not null" json:"kind"`
	Recipient string `gorm:"size:100;not null" json:"recipient"`
	Message   string `gorm:"type:text" json:"message"`

	Status       string `gorm:"size:20;not null" json:"status"`
	ProviderRef  string `gorm:"size:100" json:"provider_ref"`
	ErrorMessage string `gorm:"type:text" json:"error_message"`

	SentAt time.Time `json:"sent_at"`
}
