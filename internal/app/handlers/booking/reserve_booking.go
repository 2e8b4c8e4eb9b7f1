package booking

import (
	"context"
	"errors"
	"time"

	"fleetrent/internal/app/commands"
	"fleetrent/internal/app/handlers/support"
	"fleetrent/internal/app/middleware"
	"fleetrent/internal/app/outbox"
	"fleetrent/internal/app/policies"
	"fleetrent/internal/app/uow"
	domainavailability "fleetrent/internal/domain/availability"
	domainbooking "fleetrent/internal/domain/booking"
	domaincustomer "fleetrent/internal/domain/customer"
	domainpricing "fleetrent/internal/domain/pricing"
	domainvehicle "fleetrent/internal/domain/vehicle"
)

const reserveBookingKey = "booking.reserve"

var ErrVehicleNotRentable = errors.New("booking: vehicle is not rentable")

type ReserveBookingCommand struct {
	CommandID       string
	VehicleID       string
	CustomerID      string
	PickupAt        time.Time
	ScheduledDropAt time.Time
	IdempotencyKeyV string
}

func (c ReserveBookingCommand) Key() string { return reserveBookingKey }

func (c ReserveBookingCommand) IdempotencyKey() string { return c.IdempotencyKeyV }

func (c ReserveBookingCommand) ResultPrototype() any { return &ReserveBookingResult{} }

type ReserveBookingResult struct {
	BookingID string `json:"booking_id"`
	Total     int64  `json:"total"`
	Currency  string `json:"currency"`
}

type ReserveBookingHandler struct {
	UoWFactory uow.UoWFactory
	Pricing    policies.PricingPort
	Outbox     outbox.Outbox
	Encoder    outbox.EventEncoder
}

func (h *ReserveBookingHandler) Handle(ctx context.Context, cmd ReserveBookingCommand) (_ *ReserveBookingResult, err error) {
	unit, ctx, done, err := support.BeginUnit(ctx, h.UoWFactory, uow.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { err = done(err) }()

	window, err := domainpricing.NewRentalWindow(cmd.PickupAt, cmd.ScheduledDropAt)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()

	veh, err := unit.Vehicles().ByID(ctx, domainvehicle.VehicleID(cmd.VehicleID))
	if err != nil {
		return nil, err
	}
	if veh.Status == domainvehicle.StatusRetired || veh.Status == domainvehicle.StatusInService {
		return nil, ErrVehicleNotRentable
	}

	cust, err := unit.Customers().ByID(ctx, domaincustomer.ID(cmd.CustomerID))
	if err != nil {
		return nil, err
	}
	if err := cust.CanRentAt(window.PickupAt); err != nil {
		return nil, err
	}

	existing, err := unit.Bookings().ListByVehicle(ctx, veh.ID)
	if err != nil {
		return nil, err
	}
	intervals := make([]domainavailability.BookingInterval, 0, len(existing))
	for _, b := range existing {
		intervals = append(intervals, b.IntervalView())
	}
	free, err := domainavailability.IsAvailable(veh.ID, window.Span(), intervals)
	if err != nil {
		return nil, err
	}
	if !free {
		return nil, domainbooking.ErrVehicleBusy
	}

	schedule, err := unit.Schedules().Schedule(ctx, veh.ID)
	if err != nil {
		return nil, err
	}
	if !schedule.CanReserve(window.Span()) {
		return nil, domainbooking.ErrVehicleBusy
	}

	quote, err := h.Pricing.Quote(ctx, veh, window, nil)
	if err != nil {
		return nil, err
	}

	bkg, err := domainbooking.NewBooking(domainbooking.CreateParams{
		ID:         domainbooking.BookingID(cmd.CommandID),
		VehicleID:  veh.ID,
		CustomerID: cust.ID,
		Window:     window,
		Quote:      quote,
		CreatedAt:  now,
	})
	if err != nil {
		return nil, err
	}

	if err := unit.Bookings().Save(ctx, bkg); err != nil {
		return nil, err
	}
	if err := schedule.Reserve(window.Span(), string(bkg.ID), now); err != nil {
		return nil, err
	}
	if err := unit.Schedules().Save(ctx, schedule); err != nil {
		return nil, err
	}

	pending := bkg.PendingEvents()
	bkg.ClearEvents()
	if err := outbox.RecordDomainEvents(ctx, h.Outbox, encoderOrDefault(h.Encoder), pending); err != nil {
		return nil, err
	}

	return &ReserveBookingResult{
		BookingID: string(bkg.ID),
		Total:     quote.Total.Amount,
		Currency:  quote.Total.Currency,
	}, nil
}

var _ commands.Handler[ReserveBookingCommand, *ReserveBookingResult] = (*ReserveBookingHandler)(nil)
var _ middleware.IdempotentCommand = (*ReserveBookingCommand)(nil)
