package booking

import (
	"context"
	"time"

	"fleetrent/internal/app/commands"
	"fleetrent/internal/app/handlers/support"
	"fleetrent/internal/app/outbox"
	"fleetrent/internal/app/uow"
	domainbooking "fleetrent/internal/domain/booking"
)

const startRentalKey = "booking.start"

type StartRentalCommand struct {
	BookingID string
	Odometer  int64
}

func (c StartRentalCommand) Key() string { return startRentalKey }

type StartRentalResult struct {
	BookingID string `json:"booking_id"`
	Status    string `json:"status"`
}

type StartRentalHandler struct {
	UoWFactory uow.UoWFactory
	Outbox     outbox.Outbox
	Encoder    outbox.EventEncoder
}

func (h *StartRentalHandler) Handle(ctx context.Context, cmd StartRentalCommand) (_ *StartRentalResult, err error) {
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
	if err := bkg.Start(now); err != nil {
		return nil, err
	}

	veh, err := unit.Vehicles().ByID(ctx, bkg.VehicleID)
	if err != nil {
		return nil, err
	}
	if err := veh.MarkRented(now); err != nil {
		return nil, err
	}
	if cmd.Odometer > 0 {
		if err := veh.RecordOdometer(cmd.Odometer, now); err != nil {
			return nil, err
		}
	}

	if err := unit.Bookings().Save(ctx, bkg); err != nil {
		return nil, err
	}
	if err := unit.Vehicles().Save(ctx, veh); err != nil {
		return nil, err
	}

	pending := append(bkg.PendingEvents(), veh.PendingEvents()...)
	bkg.ClearEvents()
	veh.ClearEvents()
	if err := outbox.RecordDomainEvents(ctx, h.Outbox, encoderOrDefault(h.Encoder), pending); err != nil {
		return nil, err
	}

	return &StartRentalResult{BookingID: string(bkg.ID), Status: string(bkg.Status)}, nil
}

func encoderOrDefault(enc outbox.EventEncoder) outbox.EventEncoder {
	if enc != nil {
		return enc
	}
	return outbox.JSONEventEncoder{}
}

var _ commands.Handler[StartRentalCommand, *StartRentalResult] = (*StartRentalHandler)(nil)
