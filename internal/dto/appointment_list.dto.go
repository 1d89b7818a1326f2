package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type AppointmentListDTO struct {
	ID              uint            `json:"id"`
	AppointmentDate time.Time       `json:"appointment_date"`
	Status          string          `json:"status"`
	CustomerName    string          `json:"customer_name"`
	CustomerPhone   string          `json:"customer_phone"`
	CustomerEmail   string          `json:"customer_email"`
	ServiceID       uint            `json:"service_id"`
	ServiceName     string          `json:"service_name"`
	Price           decimal.Decimal `json:"price"`
	BarberID        uint            `json:"barber_id"`
	BarberName      string          `json:"barber_name"`
	Notes           string          `json:"notes"`
	ReminderSent    bool            `json:"reminder_sent"`
	CompletedAt     *time.Time      `json:"completed_at,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

func AppointmentList(aps []models.Appointment) []AppointmentListDTO {
	out := make([]AppointmentListDTO, 0, len(aps))
	for i := range aps {
		ap := &aps[i]
		row := AppointmentListDTO{
			ID:              ap.ID,
			AppointmentDate: ap.AppointmentDate,
			Status:          ap.Status,
			CustomerName:    ap.CustomerName,
			CustomerPhone:   ap.CustomerPhone,
			CustomerEmail:   ap.CustomerEmail,
			ServiceID:       ap.ServiceID,
			BarberID:        ap.BarberID,
			Notes:           ap.Notes,
			ReminderSent:    ap.ReminderSent,
			CompletedAt:     ap.CompletedAt,
			CreatedAt:       ap.CreatedAt,
		}
		if ap.Service != nil {
			row.ServiceName = ap.Service.Name
			row.Price = ap.Service.Price
		}
		if ap.Barber != nil {
			row.BarberName = ap.Barber.Name
		}
		out = append(out, row)
	}
	return out
}

type DashboardStatsDTO struct {
	Today              int             `json:"today"`
	ThisWeek           int             `json:"this_week"`
	ThisMonth          int             `json:"this_month"`
	Upcoming           int             `json:"upcoming"`
	CompletedThisMonth int             `json:"completed_this_month"`
	CancelledThisMonth int             `json:"cancelled_this_month"`
	MonthRevenue       decimal.Decimal `json:"month_revenue"`
}
