package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleetrent/internal/domain/shared/money"
	"fleetrent/internal/domain/vehicle"
)

var pickup = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func rates(hourly, daily, weekly int64) vehicle.RateSchedule {
	return vehicle.RateSchedule{
		Hourly: money.Money{Amount: hourly, Currency: "INR"},
		Daily:  money.Money{Amount: daily, Currency: "INR"},
		Weekly: money.Money{Amount: weekly, Currency: "INR"},
	}
}

func window(t *testing.T, d time.Duration) RentalWindow {
	t.Helper()
	w, err := NewRentalWindow(pickup, pickup.Add(d))
	require.NoError(t, err)
	return w
}

func int64p(v int64) *int64       { return &v }
func float64p(v float64) *float64 { return &v }

func TestQuoteTwoDayRentalDailyRate(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	got, err := engine.Quote(QuoteInput{
		Rates:  rates(0, 2000, 0),
		Window: window(t, 48*time.Hour),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(48), got.Hours)
	assert.Equal(t, int64(2), got.Days)
	assert.Equal(t, int64(4000), got.BaseRate.Amount)
	assert.Equal(t, int64(720), got.Tax.Amount)
	assert.Equal(t, int64(4720), got.Total.Amount)
	assert.Equal(t, "INR", got.Total.Currency)
}

func TestQuoteLateReturnSurcharge(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	w := window(t, 48*time.Hour).WithActualDrop(pickup.Add(51 * time.Hour))
	got, err := engine.Quote(QuoteInput{
		Rates: rates(0, 2000, 0),
		Extras: vehicle.ExtraChargeRates{
			LateReturnPerHour: money.Money{Amount: 100, Currency: "INR"},
		},
		Window: w,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(4000), got.BaseRate.Amount)
	assert.Equal(t, int64(300), got.LateReturnCharge.Amount)
	assert.Equal(t, int64(774), got.Tax.Amount)
	assert.Equal(t, int64(5074), got.Total.Amount)
}

func TestQuoteHourlyTierForShortRental(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	got, err := engine.Quote(QuoteInput{
		Rates:  rates(150, 2000, 0),
		Window: window(t, 6*time.Hour),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(6), got.Hours)
	assert.Equal(t, int64(900), got.BaseRate.Amount)
}

func TestQuoteDistanceWithinAllowanceIsFree(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	got, err := engine.Quote(QuoteInput{
		Rates:  rates(0, 2000, 0),
		Window: window(t, 48*time.Hour),
		Usage: &UsageMetrics{
			StartOdometer: int64p(1000),
			EndOdometer:   int64p(1500),
		},
	})
	require.NoError(t, err)

	// 500 travelled against 2 days x 300 allowance
	assert.Equal(t, int64(0), got.ExtraDistanceCharge.Amount)
	assert.Equal(t, int64(4720), got.Total.Amount)
}

func TestQuoteDistanceOverAllowance(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	got, err := engine.Quote(QuoteInput{
		Rates:  rates(0, 2000, 0),
		Window: window(t, 48*time.Hour),
		Usage: &UsageMetrics{
			StartOdometer: int64p(0),
			EndOdometer:   int64p(700),
		},
	})
	require.NoError(t, err)

	// 100 over the 600 allowance at the default 10/unit
	assert.Equal(t, int64(1000), got.ExtraDistanceCharge.Amount)
}

func TestQuoteVehicleRateOverridesEngineDefault(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	got, err := engine.Quote(QuoteInput{
		Rates: rates(0, 2000, 0),
		Extras: vehicle.ExtraChargeRates{
			ExtraDistancePerUnit: money.Money{Amount: 25, Currency: "INR"},
		},
		Window: window(t, 48*time.Hour),
		Usage: &UsageMetrics{
			StartOdometer: int64p(0),
			EndOdometer:   int64p(700),
		},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(2500), got.ExtraDistanceCharge.Amount)
}

func TestQuoteFuelShortfall(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	got, err := engine.Quote(QuoteInput{
		Rates:  rates(0, 2000, 0),
		Window: window(t, 24*time.Hour),
		Usage: &UsageMetrics{
			FuelLevelStart: float64p(90),
			FuelLevelEnd:   float64p(62.5),
		},
	})
	require.NoError(t, err)

	// 27.5 points short at 2 per point, rounded half up
	assert.Equal(t, int64(55), got.FuelRefillCharge.Amount)
}

func TestQuoteFullerTankCostsNothing(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	got, err := engine.Quote(QuoteInput{
		Rates:  rates(0, 2000, 0),
		Window: window(t, 24*time.Hour),
		Usage: &UsageMetrics{
			FuelLevelStart: float64p(40),
			FuelLevelEnd:   float64p(80),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.FuelRefillCharge.Amount)
}

func TestQuoteWeeklyTierSplitsWeeksAndDays(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	got, err := engine.Quote(QuoteInput{
		Rates:  rates(0, 2000, 11000),
		Window: window(t, 10*24*time.Hour),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(10), got.Days)
	// one week at the weekly rate, three remaining days at daily
	assert.Equal(t, int64(11000+3*2000), got.BaseRate.Amount)
}

func TestQuoteWeeklyIgnoredBelowSevenDays(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	got, err := engine.Quote(QuoteInput{
		Rates:  rates(0, 2000, 11000),
		Window: window(t, 5*24*time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(10000), got.BaseRate.Amount)
}

func TestQuotePartialHourBillsFullHour(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	got, err := engine.Quote(QuoteInput{
		Rates:  rates(100, 2000, 0),
		Window: window(t, 90*time.Minute),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(2), got.Hours)
	assert.Equal(t, int64(200), got.BaseRate.Amount)
}

func TestQuoteDepositUntaxed(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	got, err := engine.Quote(QuoteInput{
		Rates:  rates(0, 2000, 0),
		Window: window(t, 24*time.Hour),
		Usage: &UsageMetrics{
			SecurityDeposit: money.Money{Amount: 5000, Currency: "INR"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(360), got.Tax.Amount) // 18% of 2000 only
	assert.Equal(t, int64(2000+360+5000), got.Total.Amount)
}

func TestQuoteDamageChargeIsTaxed(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	got, err := engine.Quote(QuoteInput{
		Rates:  rates(0, 2000, 0),
		Window: window(t, 24*time.Hour),
		Usage: &UsageMetrics{
			DamageCharge: money.Money{Amount: 1000, Currency: "INR"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(540), got.Tax.Amount) // 18% of 3000
	assert.Equal(t, int64(3540), got.Total.Amount)
}

func TestQuoteErrors(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	tests := []struct {
		name  string
		input QuoteInput
		want  error
	}{
		{
			name: "inverted window",
			input: QuoteInput{
				Rates:  rates(0, 2000, 0),
				Window: RentalWindow{PickupAt: pickup, ScheduledDropAt: pickup.Add(-time.Hour)},
			},
			want: ErrInvalidWindow,
		},
		{
			name: "zero-length window",
			input: QuoteInput{
				Rates:  rates(0, 2000, 0),
				Window: RentalWindow{PickupAt: pickup, ScheduledDropAt: pickup},
			},
			want: ErrInvalidWindow,
		},
		{
			name: "missing daily rate",
			input: QuoteInput{
				Rates:  rates(150, 0, 0),
				Window: RentalWindow{PickupAt: pickup, ScheduledDropAt: pickup.Add(6 * time.Hour)},
			},
			want: ErrMissingRate,
		},
		{
			name: "odometer going backwards",
			input: QuoteInput{
				Rates:  rates(0, 2000, 0),
				Window: RentalWindow{PickupAt: pickup, ScheduledDropAt: pickup.Add(24 * time.Hour)},
				Usage: &UsageMetrics{
					StartOdometer: int64p(500),
					EndOdometer:   int64p(400),
				},
			},
			want: ErrInvalidUsageMetrics,
		},
		{
			name: "fuel level out of range",
			input: QuoteInput{
				Rates:  rates(0, 2000, 0),
				Window: RentalWindow{PickupAt: pickup, ScheduledDropAt: pickup.Add(24 * time.Hour)},
				Usage: &UsageMetrics{
					FuelLevelStart: float64p(120),
					FuelLevelEnd:   float64p(50),
				},
			},
			want: ErrInvalidUsageMetrics,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := engine.Quote(tc.input)
			require.ErrorIs(t, err, tc.want)
			assert.Equal(t, ChargeBreakdown{}, got, "no partial breakdown on error")
		})
	}
}

func TestQuoteTotalNeverDecreasesWithDuration(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	// Daily-only schedule: with hourly and weekly tiers unset the total
	// must grow (or hold, within a billed day) as the window lengthens.
	var prev int64 = -1
	for hours := 1; hours <= 21*24; hours += 5 {
		got, err := engine.Quote(QuoteInput{
			Rates:  rates(0, 2000, 0),
			Window: window(t, time.Duration(hours)*time.Hour),
		})
		require.NoError(t, err)
		require.GreaterOrEqual(t, got.Total.Amount, prev,
			"total dropped at %d hours", hours)
		prev = got.Total.Amount
	}
}

func TestQuoteIsIdempotent(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	input := QuoteInput{
		Rates: rates(150, 2000, 11000),
		Extras: vehicle.ExtraChargeRates{
			LateReturnPerHour: money.Money{Amount: 100, Currency: "INR"},
		},
		Window: window(t, 48*time.Hour).WithActualDrop(pickup.Add(50 * time.Hour)),
		Usage: &UsageMetrics{
			StartOdometer:  int64p(100),
			EndOdometer:    int64p(950),
			FuelLevelStart: float64p(100),
			FuelLevelEnd:   float64p(70),
		},
	}

	first, err := engine.Quote(input)
	require.NoError(t, err)
	second, err := engine.Quote(input)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestQuoteZeroConfigFallsBackToDefaults(t *testing.T) {
	engine := NewEngine(Config{})

	got, err := engine.Quote(QuoteInput{
		Rates:  rates(0, 2000, 0),
		Window: window(t, 48*time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(720), got.Tax.Amount)
}
