package models

import "time"

// BarberClient is a barber's own address book entry, separate from the
// loyalty program.
type BarberClient struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BarberID uint   `gorm:"not null;uniqueIndex:ux_barber_clients_phone,priority:1" json:"barber_id"`
	Phone    string `gorm:"size:30;not null;uniqueIndex:ux_barber_clients_phone,priority:2" json:"phone"`

	Name  string `gorm:"size:100;not null" json:"name"`
	Email string `gorm:"size:100" json:"email"`
	Notes string `gorm:"type:text" json:"notes"`

	TotalVisits int        `gorm:"not null;default:0" json:"total_visits"`
	LastVisit   *time.Time `json:"last_visit"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
