package dto

import (
	"time"

	domainbooking "fleetrent/internal/domain/booking"
)

type Booking struct {
	ID              string           `json:"id"`
	VehicleID       string           `json:"vehicle_id"`
	CustomerID      string           `json:"customer_id"`
	PickupAt        time.Time        `json:"pickup_at"`
	ScheduledDropAt time.Time        `json:"scheduled_drop_at"`
	ActualDropAt    *time.Time       `json:"actual_drop_at,omitempty"`
	Status          string           `json:"status"`
	Overdue         bool             `json:"overdue"`
	Quote           ChargeBreakdown  `json:"quote"`
	FinalCharge     *ChargeBreakdown `json:"final_charge,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

func BookingFromDomain(b *domainbooking.Booking) Booking {
	out := Booking{
		ID:              string(b.ID),
		VehicleID:       string(b.VehicleID),
		CustomerID:      string(b.CustomerID),
		PickupAt:        b.Window.PickupAt,
		ScheduledDropAt: b.Window.ScheduledDropAt,
		Status:          string(b.Status),
		Overdue:         b.Overdue,
		Quote:           ChargeBreakdownFromDomain(b.Quote),
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
	if !b.Window.ActualDropAt.IsZero() {
		dropAt := b.Window.ActualDropAt
		out.ActualDropAt = &dropAt
	}
	if b.Status == domainbooking.StatusCompleted {
		final := ChargeBreakdownFromDomain(b.FinalCharge)
		out.FinalCharge = &final
	}
	return out
}
