package pricing

import (
	"errors"
	"fmt"

	"fleetrent/internal/domain/shared/money"
)

var ErrInvalidUsageMetrics = errors.New("pricing: invalid usage metrics")

// UsageMetrics captures what the return inspection observed. Odometer and
// fuel readings are optional as a pair: a surcharge is computed only when
// both ends of the pair are present.
type UsageMetrics struct {
	StartOdometer   *int64
	EndOdometer     *int64
	FuelLevelStart  *float64
	FuelLevelEnd    *float64
	DamageCharge    money.Money
	SecurityDeposit money.Money
}

func (u UsageMetrics) Validate() error {
	if u.StartOdometer != nil && *u.StartOdometer < 0 {
		return fmt.Errorf("%w: negative start odometer", ErrInvalidUsageMetrics)
	}
	if u.EndOdometer != nil && *u.EndOdometer < 0 {
		return fmt.Errorf("%w: negative end odometer", ErrInvalidUsageMetrics)
	}
	if u.StartOdometer != nil && u.EndOdometer != nil && *u.EndOdometer < *u.StartOdometer {
		return fmt.Errorf("%w: end odometer below start", ErrInvalidUsageMetrics)
	}
	if err := validateFuelLevel(u.FuelLevelStart); err != nil {
		return err
	}
	if err := validateFuelLevel(u.FuelLevelEnd); err != nil {
		return err
	}
	if u.DamageCharge.IsNegative() {
		return fmt.Errorf("%w: negative damage charge", ErrInvalidUsageMetrics)
	}
	if u.SecurityDeposit.IsNegative() {
		return fmt.Errorf("%w: negative security deposit", ErrInvalidUsageMetrics)
	}
	return nil
}

// DistanceTravelled returns the odometer delta and whether both readings
// were supplied.
func (u UsageMetrics) DistanceTravelled() (int64, bool) {
	if u.StartOdometer == nil || u.EndOdometer == nil {
		return 0, false
	}
	return *u.EndOdometer - *u.StartOdometer, true
}

// FuelShortfall returns the percentage points the tank came back short,
// zero when levels are missing or the tank came back equal or fuller.
func (u UsageMetrics) FuelShortfall() float64 {
	if u.FuelLevelStart == nil || u.FuelLevelEnd == nil {
		return 0
	}
	if *u.FuelLevelStart <= *u.FuelLevelEnd {
		return 0
	}
	return *u.FuelLevelStart - *u.FuelLevelEnd
}

func validateFuelLevel(level *float64) error {
	if level == nil {
		return nil
	}
	if *level < 0 || *level > 100 {
		return fmt.Errorf("%w: fuel level %.2f outside [0,100]", ErrInvalidUsageMetrics, *level)
	}
	return nil
}
