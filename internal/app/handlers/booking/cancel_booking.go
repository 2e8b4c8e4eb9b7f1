package booking

import (
	"context"
	"time"

	"fleetrent/internal/app/commands"
	"fleetrent/internal/app/handlers/support"
	"fleetrent/internal/app/outbox"
	"fleetrent/internal/app/uow"
	domainbooking "fleetrent/internal/domain/booking"
	domainvehicle "fleetrent/internal/domain/vehicle"
)

const cancelBookingKey = "booking.cancel"

type CancelBookingCommand struct {
	BookingID string
	Reason    string
}

func (c CancelBookingCommand) Key() string { return cancelBookingKey }

type CancelBookingResult struct {
	BookingID string `json:"booking_id"`
	Status    string `json:"status"`
}

type CancelBookingHandler struct {
	UoWFactory uow.UoWFactory
	Outbox     outbox.Outbox
	Encoder    outbox.EventEncoder
}

func (h *CancelBookingHandler) Handle(ctx context.Context, cmd CancelBookingCommand) (_ *CancelBookingResult, err error) {
	unit, ctx, done, err := support.BeginUnit(ctx, h.UoWFactory, uow.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { err = done(err) }()

	now := time.Now().UTC()
	bkg, err := unit.Bookings().ByID(ctx, domainbooking.BookingID(cmd.BookingID))
	if err != nil {
		return nil, err
	}
	wasActive := bkg.Status == domainbooking.StatusActive
	if err := bkg.Cancel(cmd.Reason, now); err != nil {
		return nil, err
	}

	// A cancelled active rental puts the vehicle back on the lot.
	if wasActive {
		veh, err := unit.Vehicles().ByID(ctx, bkg.VehicleID)
		if err != nil {
			return nil, err
		}
		if veh.Status == domainvehicle.StatusRented {
			if err := veh.MarkReturned(now); err != nil {
				return nil, err
			}
			if err := unit.Vehicles().Save(ctx, veh); err != nil {
				return nil, err
			}
			veh.ClearEvents()
		}
	}

	schedule, err := unit.Schedules().Schedule(ctx, bkg.VehicleID)
	if err != nil {
		return nil, err
	}
	if err := schedule.Release(string(bkg.ID), now); err == nil {
		if err := unit.Schedules().Save(ctx, schedule); err != nil {
			return nil, err
		}
	}

	if err := unit.Bookings().Save(ctx, bkg); err != nil {
		return nil, err
	}

	pending := bkg.PendingEvents()
	bkg.ClearEvents()
	if err := outbox.RecordDomainEvents(ctx, h.Outbox, encoderOrDefault(h.Encoder), pending); err != nil {
		return nil, err
	}

	return &CancelBookingResult{BookingID: string(bkg.ID), Status: string(bkg.Status)}, nil
}

var _ commands.Handler[CancelBookingCommand, *CancelBookingResult] = (*CancelBookingHandler)(nil)
