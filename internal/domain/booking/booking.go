package booking

import (
	"context"
	"errors"
	"time"

	"fleetrent/internal/domain/availability"
	"fleetrent/internal/domain/customer"
	"fleetrent/internal/domain/pricing"
	"fleetrent/internal/domain/shared/events"
	"fleetrent/internal/domain/vehicle"
)

var (
	ErrInvalidState    = errors.New("booking: invalid state transition")
	ErrCustomerMissing = errors.New("booking: customer id required")
	ErrBookingNotFound = errors.New("booking: not found")
	ErrVehicleBusy     = errors.New("booking: vehicle is not available for the requested window")
)

type BookingID string

type Status string

const (
	StatusReserved  Status = "RESERVED"
	StatusActive    Status = "ACTIVE"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

type Booking struct {
	ID          BookingID
	VehicleID   vehicle.VehicleID
	CustomerID  customer.ID
	Window      pricing.RentalWindow
	Quote       pricing.ChargeBreakdown
	FinalCharge pricing.ChargeBreakdown
	Status      Status
	Overdue     bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Version     int64
	events.EventRecorder
}

type Repository interface {
	ByID(ctx context.Context, id BookingID) (*Booking, error)
	Save(ctx context.Context, b *Booking) error
	ListByVehicle(ctx context.Context, vehicleID vehicle.VehicleID) ([]*Booking, error)
	ListByCustomer(ctx context.Context, customerID customer.ID) ([]*Booking, error)
	ListActiveDueBefore(ctx context.Context, deadline time.Time) ([]*Booking, error)
}

type CreateParams struct {
	ID         BookingID
	VehicleID  vehicle.VehicleID
	CustomerID customer.ID
	Window     pricing.RentalWindow
	Quote      pricing.ChargeBreakdown
	CreatedAt  time.Time
}

func NewBooking(params CreateParams) (*Booking, error) {
	if params.CustomerID == "" {
		return nil, ErrCustomerMissing
	}
	if err := params.Window.Validate(); err != nil {
		return nil, err
	}
	if params.Quote.Total.IsNegative() {
		return nil, errors.New("booking: quoted total cannot be negative")
	}
	now := params.CreatedAt.UTC()
	b := &Booking{
		ID:         params.ID,
		VehicleID:  params.VehicleID,
		CustomerID: params.CustomerID,
		Window:     params.Window,
		Quote:      params.Quote,
		Status:     StatusReserved,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	b.Record(BookingReserved{
		BookingID:  b.ID,
		VehicleID:  b.VehicleID,
		CustomerID: b.CustomerID,
		Window:     b.Window,
		Quoted:     b.Quote.Total,
		At:         now,
	})
	return b, nil
}

// IntervalView exposes the booking as the read-only interval the
// availability checker consumes.
func (b *Booking) IntervalView() availability.BookingInterval {
	return availability.BookingInterval{
		VehicleID: b.VehicleID,
		Span:      b.Window.Span(),
		Status:    availability.BookingStatus(b.Status),
	}
}

// Start marks the vehicle as picked up.
func (b *Booking) Start(now time.Time) error {
	if b.Status != StatusReserved {
		return ErrInvalidState
	}
	b.Status = StatusActive
	b.UpdatedAt = now.UTC()
	b.Record(RentalStarted{BookingID: b.ID, VehicleID: b.VehicleID, At: b.UpdatedAt})
	return nil
}

// Complete records the actual return and the final settled charge.
func (b *Booking) Complete(actualDropAt time.Time, final pricing.ChargeBreakdown, now time.Time) error {
	if b.Status != StatusActive {
		return ErrInvalidState
	}
	b.Window = b.Window.WithActualDrop(actualDropAt)
	b.FinalCharge = final
	b.Status = StatusCompleted
	b.UpdatedAt = now.UTC()
	b.Record(RentalCompleted{
		BookingID:    b.ID,
		VehicleID:    b.VehicleID,
		ActualDropAt: b.Window.ActualDropAt,
		Total:        final.Total,
		At:           b.UpdatedAt,
	})
	return nil
}

func (b *Booking) Cancel(reason string, now time.Time) error {
	if b.Status != StatusReserved && b.Status != StatusActive {
		return ErrInvalidState
	}
	b.Status = StatusCancelled
	b.UpdatedAt = now.UTC()
	b.Record(BookingCancelled{BookingID: b.ID, VehicleID: b.VehicleID, Reason: reason, At: b.UpdatedAt})
	return nil
}

// FlagOverdue marks an active rental past its scheduled drop. Idempotent:
// the event fires once per booking.
func (b *Booking) FlagOverdue(now time.Time) bool {
	if b.Status != StatusActive || b.Overdue {
		return false
	}
	if !now.UTC().After(b.Window.ScheduledDropAt) {
		return false
	}
	b.Overdue = true
	b.UpdatedAt = now.UTC()
	b.Record(RentalOverdue{BookingID: b.ID, VehicleID: b.VehicleID, ScheduledDropAt: b.Window.ScheduledDropAt, At: b.UpdatedAt})
	return true
}
