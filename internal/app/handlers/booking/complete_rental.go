package booking

import (
	"context"
	"time"

	"fleetrent/internal/app/commands"
	"fleetrent/internal/app/dto"
	"fleetrent/internal/app/handlers/support"
	"fleetrent/internal/app/middleware"
	"fleetrent/internal/app/outbox"
	"fleetrent/internal/app/policies"
	"fleetrent/internal/app/uow"
	domainbooking "fleetrent/internal/domain/booking"
	domainpayment "fleetrent/internal/domain/payment"
	domainpricing "fleetrent/internal/domain/pricing"
	"fleetrent/internal/domain/shared/money"
)

const completeRentalKey = "booking.complete"

type CompleteRentalCommand struct {
	CommandID       string
	BookingID       string
	ActualDropAt    time.Time
	StartOdometer   *int64
	EndOdometer     *int64
	FuelLevelStart  *float64
	FuelLevelEnd    *float64
	DamageCharge    int64
	SecurityDeposit int64
	PaymentMethod   string
	IdempotencyKeyV string
}

func (c CompleteRentalCommand) Key() string { return completeRentalKey }

func (c CompleteRentalCommand) IdempotencyKey() string { return c.IdempotencyKeyV }

func (c CompleteRentalCommand) ResultPrototype() any { return &CompleteRentalResult{} }

type CompleteRentalResult struct {
	BookingID string              `json:"booking_id"`
	PaymentID string              `json:"payment_id"`
	Charge    dto.ChargeBreakdown `json:"charge"`
}

type CompleteRentalHandler struct {
	UoWFactory uow.UoWFactory
	Pricing    policies.PricingPort
	Outbox     outbox.Outbox
	Encoder    outbox.EventEncoder
}

// Handle settles a rental: it recomputes the charge from the actual drop
// time and inspection readings, closes the booking, frees the vehicle and
// opens a pending payment for the final total.
func (h *CompleteRentalHandler) Handle(ctx context.Context, cmd CompleteRentalCommand) (_ *CompleteRentalResult, err error) {
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
	veh, err := unit.Vehicles().ByID(ctx, bkg.VehicleID)
	if err != nil {
		return nil, err
	}

	currency := veh.Rates.Daily.Currency
	usage := &domainpricing.UsageMetrics{
		StartOdometer:   cmd.StartOdometer,
		EndOdometer:     cmd.EndOdometer,
		FuelLevelStart:  cmd.FuelLevelStart,
		FuelLevelEnd:    cmd.FuelLevelEnd,
		DamageCharge:    money.Money{Amount: cmd.DamageCharge, Currency: currency},
		SecurityDeposit: money.Money{Amount: cmd.SecurityDeposit, Currency: currency},
	}
	dropAt := cmd.ActualDropAt
	if dropAt.IsZero() {
		dropAt = now
	}
	window := bkg.Window.WithActualDrop(dropAt)

	final, err := h.Pricing.Quote(ctx, veh, window, usage)
	if err != nil {
		return nil, err
	}

	if err := bkg.Complete(dropAt, final, now); err != nil {
		return nil, err
	}
	if err := veh.MarkReturned(now); err != nil {
		return nil, err
	}
	if cmd.EndOdometer != nil {
		if err := veh.RecordOdometer(*cmd.EndOdometer, now); err != nil {
			return nil, err
		}
	}

	schedule, err := unit.Schedules().Schedule(ctx, veh.ID)
	if err != nil {
		return nil, err
	}
	// A completed rental no longer blocks the calendar; missing blocks are
	// tolerated for bookings reserved before scheduling was introduced.
	if err := schedule.Release(string(bkg.ID), now); err == nil {
		if err := unit.Schedules().Save(ctx, schedule); err != nil {
			return nil, err
		}
	}

	method := domainpayment.Method(cmd.PaymentMethod)
	if method == "" {
		method = domainpayment.MethodCard
	}
	pay, err := domainpayment.New(
		domainpayment.PaymentID(cmd.CommandID),
		string(bkg.ID),
		final.Total,
		method,
		now,
	)
	if err != nil {
		return nil, err
	}

	if err := unit.Bookings().Save(ctx, bkg); err != nil {
		return nil, err
	}
	if err := unit.Vehicles().Save(ctx, veh); err != nil {
		return nil, err
	}
	if err := unit.Payments().Save(ctx, pay); err != nil {
		return nil, err
	}

	pending := append(bkg.PendingEvents(), veh.PendingEvents()...)
	bkg.ClearEvents()
	veh.ClearEvents()
	if err := outbox.RecordDomainEvents(ctx, h.Outbox, encoderOrDefault(h.Encoder), pending); err != nil {
		return nil, err
	}

	return &CompleteRentalResult{
		BookingID: string(bkg.ID),
		PaymentID: string(pay.ID),
		Charge:    dto.ChargeBreakdownFromDomain(final),
	}, nil
}

var _ commands.Handler[CompleteRentalCommand, *CompleteRentalResult] = (*CompleteRentalHandler)(nil)
var _ middleware.IdempotentCommand = (*CompleteRentalCommand)(nil)
