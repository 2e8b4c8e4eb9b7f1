package policies

import (
	"context"

	domainpricing "fleetrent/internal/domain/pricing"
	domainvehicle "fleetrent/internal/domain/vehicle"
)

// PricingPort shields handlers from the concrete pricing engine.
type PricingPort interface {
	Quote(ctx context.Context, v *domainvehicle.Vehicle, window domainpricing.RentalWindow, usage *domainpricing.UsageMetrics) (domainpricing.ChargeBreakdown, error)
}

// EnginePricingPort adapts the pure engine into the application port.
type EnginePricingPort struct {
	Calculator domainpricing.Calculator
}

func (p EnginePricingPort) Quote(ctx context.Context, v *domainvehicle.Vehicle, window domainpricing.RentalWindow, usage *domainpricing.UsageMetrics) (domainpricing.ChargeBreakdown, error) {
	return p.Calculator.Quote(domainpricing.QuoteInput{
		Rates:  v.Rates,
		Extras: v.Extras,
		Window: window,
		Usage:  usage,
	})
}

var _ PricingPort = EnginePricingPort{}
