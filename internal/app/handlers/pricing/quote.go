package pricing

import (
	"context"
	"time"

	"fleetrent/internal/app/dto"
	"fleetrent/internal/app/handlers/support"
	"fleetrent/internal/app/policies"
	"fleetrent/internal/app/queries"
	"fleetrent/internal/app/uow"
	domainpricing "fleetrent/internal/domain/pricing"
	"fleetrent/internal/domain/shared/money"
	domainvehicle "fleetrent/internal/domain/vehicle"
)

const quoteKey = "pricing.quote"

// QuoteQuery prices a hypothetical or in-flight rental without persisting
// anything. Usage readings are optional; omitted pairs contribute nothing.
type QuoteQuery struct {
	VehicleID       string
	PickupAt        time.Time
	ScheduledDropAt time.Time
	ActualDropAt    time.Time
	StartOdometer   *int64
	EndOdometer     *int64
	FuelLevelStart  *float64
	FuelLevelEnd    *float64
	DamageCharge    int64
	SecurityDeposit int64
}

func (q QuoteQuery) Key() string { return quoteKey }

type QuoteHandler struct {
	UoWFactory uow.UoWFactory
	Pricing    policies.PricingPort
}

func (h *QuoteHandler) Handle(ctx context.Context, q QuoteQuery) (dto.ChargeBreakdown, error) {
	unit, ctx, cleanup, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.ChargeBreakdown{}, err
	}
	defer cleanup()

	veh, err := unit.Vehicles().ByID(ctx, domainvehicle.VehicleID(q.VehicleID))
	if err != nil {
		return dto.ChargeBreakdown{}, err
	}

	window, err := domainpricing.NewRentalWindow(q.PickupAt, q.ScheduledDropAt)
	if err != nil {
		return dto.ChargeBreakdown{}, err
	}
	if !q.ActualDropAt.IsZero() {
		window = window.WithActualDrop(q.ActualDropAt)
	}

	currency := veh.Rates.Daily.Currency
	usage := &domainpricing.UsageMetrics{
		StartOdometer:   q.StartOdometer,
		EndOdometer:     q.EndOdometer,
		FuelLevelStart:  q.FuelLevelStart,
		FuelLevelEnd:    q.FuelLevelEnd,
		DamageCharge:    money.Money{Amount: q.DamageCharge, Currency: currency},
		SecurityDeposit: money.Money{Amount: q.SecurityDeposit, Currency: currency},
	}

	breakdown, err := h.Pricing.Quote(ctx, veh, window, usage)
	if err != nil {
		return dto.ChargeBreakdown{}, err
	}
	return dto.ChargeBreakdownFromDomain(breakdown), nil
}

var _ queries.Handler[QuoteQuery, dto.ChargeBreakdown] = (*QuoteHandler)(nil)
