package availability

import (
	"context"
	"time"

	"fleetrent/internal/app/dto"
	"fleetrent/internal/app/handlers/support"
	"fleetrent/internal/app/queries"
	"fleetrent/internal/app/uow"
	domainavailability "fleetrent/internal/domain/availability"
	"fleetrent/internal/domain/shared/timespan"
	domainvehicle "fleetrent/internal/domain/vehicle"
)

const checkKey = "availability.check"

type CheckQuery struct {
	VehicleID string
	PickupAt  time.Time
	DropAt    time.Time
}

func (q CheckQuery) Key() string { return checkKey }

type CheckHandler struct {
	UoWFactory uow.UoWFactory
}

// Handle answers whether the vehicle is free for the candidate window,
// consulting both open bookings and the maintenance schedule.
func (h *CheckHandler) Handle(ctx context.Context, q CheckQuery) (dto.AvailabilityResult, error) {
	unit, ctx, cleanup, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.AvailabilityResult{}, err
	}
	defer cleanup()

	candidate, err := timespan.New(q.PickupAt, q.DropAt)
	if err != nil {
		return dto.AvailabilityResult{}, err
	}
	vehicleID := domainvehicle.VehicleID(q.VehicleID)

	existing, err := unit.Bookings().ListByVehicle(ctx, vehicleID)
	if err != nil {
		return dto.AvailabilityResult{}, err
	}
	intervals := make([]domainavailability.BookingInterval, 0, len(existing))
	for _, b := range existing {
		intervals = append(intervals, b.IntervalView())
	}
	free, err := domainavailability.IsAvailable(vehicleID, candidate, intervals)
	if err != nil {
		return dto.AvailabilityResult{}, err
	}
	if free {
		schedule, err := unit.Schedules().Schedule(ctx, vehicleID)
		if err != nil {
			return dto.AvailabilityResult{}, err
		}
		free = schedule.CanReserve(candidate)
	}

	return dto.AvailabilityResult{
		VehicleID: q.VehicleID,
		PickupAt:  candidate.Start,
		DropAt:    candidate.End,
		Available: free,
	}, nil
}

var _ queries.Handler[CheckQuery, dto.AvailabilityResult] = (*CheckHandler)(nil)
