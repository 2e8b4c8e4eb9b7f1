package pricing

// Defaults preserved from the legacy rate card. They are deliberately
// configuration, not constants buried in the math: every value can be
// overridden per engine instance.
const (
	DefaultTaxRate                 = 0.18
	DefaultIncludedDistancePerDay  = 300
	DefaultLateFeePerHour          = 50
	DefaultExtraDistanceFeePerUnit = 10
	DefaultFuelFeePerPercent       = 2
	DefaultCurrency                = "INR"
)

// Config carries the engine-level pricing knobs. Zero values fall back to
// the defaults above, so Engine{} behaves like the legacy rate card.
type Config struct {
	// TaxRate is the fraction applied to the taxable amount, e.g. 0.18.
	TaxRate float64
	// IncludedDistancePerDay is the free distance allowance per billable day.
	IncludedDistancePerDay int64
	// LateFeePerHour applies when the vehicle carries no late-return rate.
	LateFeePerHour int64
	// ExtraDistanceFeePerUnit applies when the vehicle carries no
	// excess-distance rate.
	ExtraDistanceFeePerUnit int64
	// FuelFeePerPercent is charged per percentage point of fuel shortfall.
	FuelFeePerPercent int64
	// Currency is used when the rate schedule does not name one.
	Currency string
}

func DefaultConfig() Config {
	return Config{
		TaxRate:                 DefaultTaxRate,
		IncludedDistancePerDay:  DefaultIncludedDistancePerDay,
		LateFeePerHour:          DefaultLateFeePerHour,
		ExtraDistanceFeePerUnit: DefaultExtraDistanceFeePerUnit,
		FuelFeePerPercent:       DefaultFuelFeePerPercent,
		Currency:                DefaultCurrency,
	}
}

// normalized fills unset fields with the defaults. Zero and negative
// values count as unset, so a literal 0% tax rate cannot be configured
// per engine instance.
func (c Config) normalized() Config {
	if c.TaxRate <= 0 {
		c.TaxRate = DefaultTaxRate
	}
	if c.IncludedDistancePerDay <= 0 {
		c.IncludedDistancePerDay = DefaultIncludedDistancePerDay
	}
	if c.LateFeePerHour <= 0 {
		c.LateFeePerHour = DefaultLateFeePerHour
	}
	if c.ExtraDistanceFeePerUnit <= 0 {
		c.ExtraDistanceFeePerUnit = DefaultExtraDistanceFeePerUnit
	}
	if c.FuelFeePerPercent <= 0 {
		c.FuelFeePerPercent = DefaultFuelFeePerPercent
	}
	if c.Currency == "" {
		c.Currency = DefaultCurrency
	}
	return c
}
