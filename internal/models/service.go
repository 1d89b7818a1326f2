package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Service is a bookable offering. A nil BarberID means every barber offers it.
type Service struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string          `gorm:"size:100;not null" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	DurationMin int             `gorm:"not null" json:"duration_min"`
	Category    string          `gorm:"size:50" json:"category"`
	ImageURL    string          `gorm:"size:255" json:"image_url"`
	Active      bool            `gorm:"default:true" json:"active"`

	BarberID *uint   `gorm:"index" json:"barber_id"`
	Barber   *Barber `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
