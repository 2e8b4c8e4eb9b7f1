package availability

import (
	"fleetrent/internal/domain/shared/timespan"
	"fleetrent/internal/domain/vehicle"
)

type BookingStatus string

const (
	StatusReserved  BookingStatus = "RESERVED"
	StatusActive    BookingStatus = "ACTIVE"
	StatusCompleted BookingStatus = "COMPLETED"
	StatusCancelled BookingStatus = "CANCELLED"
)

// BookingInterval is the read-only view of an existing booking the checker
// needs: which vehicle it holds, for which half-open span, and whether it
// still blocks the fleet.
type BookingInterval struct {
	VehicleID vehicle.VehicleID
	Span      timespan.Span
	Status    BookingStatus
}

// Blocks reports whether the booking still occupies its vehicle. Completed
// and cancelled bookings never conflict with a new window.
func (b BookingInterval) Blocks() bool {
	return b.Status == StatusReserved || b.Status == StatusActive
}

// IsAvailable decides whether candidate can be booked on vehicleID without
// conflicting with any existing booking. Intervals are half-open
// [pickup, drop), so a window starting exactly when another ends is free.
//
// The function is pure and offers no mutual exclusion: between a positive
// answer and the booking write a concurrent request may observe the same
// gap. Serializing conflicting writes is the storage layer's job.
func IsAvailable(vehicleID vehicle.VehicleID, candidate timespan.Span, existing []BookingInterval) (bool, error) {
	if err := candidate.Validate(); err != nil {
		return false, err
	}
	for _, b := range existing {
		if b.VehicleID != vehicleID || !b.Blocks() {
			continue
		}
		if candidate.Overlaps(b.Span) {
			return false, nil
		}
	}
	return true, nil
}
