package booking

import (
	"time"

	"fleetrent/internal/domain/customer"
	"fleetrent/internal/domain/pricing"
	"fleetrent/internal/domain/shared/money"
	"fleetrent/internal/domain/vehicle"
)

type BookingReserved struct {
	BookingID  BookingID
	VehicleID  vehicle.VehicleID
	CustomerID customer.ID
	Window     pricing.RentalWindow
	Quoted     money.Money
	At         time.Time
}

func (e BookingReserved) EventName() string     { return "booking.reserved" }
func (e BookingReserved) AggregateID() string   { return string(e.BookingID) }
func (e BookingReserved) OccurredAt() time.Time { return e.At }

type RentalStarted struct {
	BookingID BookingID
	VehicleID vehicle.VehicleID
	At        time.Time
}

func (e RentalStarted) EventName() string     { return "booking.rental_started" }
func (e RentalStarted) AggregateID() string   { return string(e.BookingID) }
func (e RentalStarted) OccurredAt() time.Time { return e.At }

type RentalCompleted struct {
	BookingID    BookingID
	VehicleID    vehicle.VehicleID
	ActualDropAt time.Time
	Total        money.Money
	At           time.Time
}

func (e RentalCompleted) EventName() string     { return "booking.rental_completed" }
func (e RentalCompleted) AggregateID() string   { return string(e.BookingID) }
func (e RentalCompleted) OccurredAt() time.Time { return e.At }

type BookingCancelled struct {
	BookingID BookingID
	VehicleID vehicle.VehicleID
	Reason    string
	At        time.Time
}

func (e BookingCancelled) EventName() string     { return "booking.cancelled" }
func (e BookingCancelled) AggregateID() string   { return string(e.BookingID) }
func (e BookingCancelled) OccurredAt() time.Time { return e.At }

type RentalOverdue struct {
	BookingID       BookingID
	VehicleID       vehicle.VehicleID
	ScheduledDropAt time.Time
	At              time.Time
}

func (e RentalOverdue) EventName() string     { return "booking.rental_overdue" }
func (e RentalOverdue) AggregateID() string   { return string(e.BookingID) }
func (e RentalOverdue) OccurredAt() time.Time { return e.At }
