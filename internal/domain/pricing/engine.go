package pricing

import (
	"errors"

	"fleetrent/internal/domain/shared/money"
	"fleetrent/internal/domain/vehicle"
)

var ErrMissingRate = errors.New("pricing: daily rate is mandatory and must be positive")

// QuoteInput borrows read-only views of the vehicle's rate card and the
// rental's timeline for the duration of one calculation.
type QuoteInput struct {
	Rates  vehicle.RateSchedule
	Extras vehicle.ExtraChargeRates
	Window RentalWindow
	Usage  *UsageMetrics
}

// ChargeBreakdown is the itemized result of one pricing calculation. Every
// component is rounded to minor units before it lands here; Total is the
// exact sum of the taxed components, the tax, and the untaxed deposit.
type ChargeBreakdown struct {
	Hours               int64
	Days                int64
	BaseRate            money.Money
	ExtraDistanceCharge money.Money
	LateReturnCharge    money.Money
	FuelRefillCharge    money.Money
	DamageCharge        money.Money
	SecurityDeposit     money.Money
	Tax                 money.Money
	Total               money.Money
}

// TaxableAmount is the sum of base rate and surcharges, deposit excluded.
func (c ChargeBreakdown) TaxableAmount() money.Money {
	amount := c.BaseRate.Amount + c.ExtraDistanceCharge.Amount + c.LateReturnCharge.Amount +
		c.FuelRefillCharge.Amount + c.DamageCharge.Amount
	return money.Money{Amount: amount, Currency: c.BaseRate.Currency}
}

// Engine computes rental charges. It is pure: no input is mutated, no state
// is kept between calls, and identical inputs always produce identical
// breakdowns, so it is safe to share across goroutines.
type Engine struct {
	cfg Config
}

func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg.normalized()}
}

// Quote produces the full charge breakdown for one rental. Validation
// failures return no partial breakdown.
func (e *Engine) Quote(input QuoteInput) (ChargeBreakdown, error) {
	cfg := e.config()
	if err := input.Window.Validate(); err != nil {
		return ChargeBreakdown{}, err
	}
	if input.Rates.Daily.Amount <= 0 {
		return ChargeBreakdown{}, ErrMissingRate
	}
	if input.Rates.Hourly.IsNegative() || input.Rates.Weekly.IsNegative() {
		return ChargeBreakdown{}, vehicle.ErrNegativeRate
	}
	usage := UsageMetrics{}
	if input.Usage != nil {
		usage = *input.Usage
	}
	if err := usage.Validate(); err != nil {
		return ChargeBreakdown{}, err
	}

	cur := input.Rates.Daily.Currency
	if cur == "" {
		cur = cfg.Currency
	}
	span := input.Window.Span()
	hours := span.BillableHours()
	days := span.BillableDays()

	breakdown := ChargeBreakdown{
		Hours:               hours,
		Days:                days,
		BaseRate:            money.Money{Amount: selectBaseRate(input.Rates, hours, days), Currency: cur},
		ExtraDistanceCharge: money.Money{Amount: e.extraDistanceCharge(usage, days, input.Extras), Currency: cur},
		LateReturnCharge:    money.Money{Amount: e.lateReturnCharge(input.Window, input.Extras), Currency: cur},
		FuelRefillCharge:    money.Money{Amount: e.fuelRefillCharge(usage), Currency: cur},
		DamageCharge:        money.Money{Amount: usage.DamageCharge.Amount, Currency: cur},
		SecurityDeposit:     money.Money{Amount: usage.SecurityDeposit.Amount, Currency: cur},
	}
	taxable := breakdown.TaxableAmount()
	breakdown.Tax = taxable.Scale(cfg.TaxRate)
	breakdown.Total = money.Money{
		Amount:   taxable.Amount + breakdown.Tax.Amount + breakdown.SecurityDeposit.Amount,
		Currency: cur,
	}
	return breakdown, nil
}

// selectBaseRate picks the rate tier for the scheduled duration. Hourly
// wins for sub-day rentals when offered; weekly splits long rentals into
// whole weeks plus remaining days at the daily rate; daily is the fallback.
func selectBaseRate(rates vehicle.RateSchedule, hours, days int64) int64 {
	if hours < 24 && rates.Hourly.Amount > 0 {
		return rates.Hourly.Amount * hours
	}
	if rates.Weekly.Amount > 0 && days >= 7 {
		weeks := days / 7
		remaining := days % 7
		return weeks*rates.Weekly.Amount + remaining*rates.Daily.Amount
	}
	return days * rates.Daily.Amount
}

func (e *Engine) lateReturnCharge(window RentalWindow, extras vehicle.ExtraChargeRates) int64 {
	lateHours := window.LateHours()
	if lateHours <= 0 {
		return 0
	}
	perHour := extras.LateReturnPerHour.Amount
	if perHour <= 0 {
		perHour = e.config().LateFeePerHour
	}
	return lateHours * perHour
}

func (e *Engine) extraDistanceCharge(usage UsageMetrics, days int64, extras vehicle.ExtraChargeRates) int64 {
	distance, ok := usage.DistanceTravelled()
	if !ok {
		return 0
	}
	included := days * e.config().IncludedDistancePerDay
	if distance <= included {
		return 0
	}
	perUnit := extras.ExtraDistancePerUnit.Amount
	if perUnit <= 0 {
		perUnit = e.config().ExtraDistanceFeePerUnit
	}
	return (distance - included) * perUnit
}

func (e *Engine) fuelRefillCharge(usage UsageMetrics) int64 {
	shortfall := usage.FuelShortfall()
	if shortfall <= 0 {
		return 0
	}
	return money.RoundHalfUp(shortfall * float64(e.config().FuelFeePerPercent))
}

func (e *Engine) config() Config {
	// Engine{} without NewEngine still behaves like the default rate card.
	return e.cfg.normalized()
}

// Calculator is the port the application layer depends on.
type Calculator interface {
	Quote(input QuoteInput) (ChargeBreakdown, error)
}

var _ Calculator = (*Engine)(nil)
