package vehicle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleetrent/internal/domain/shared/money"
)

var now = time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)

func validRates() RateSchedule {
	return RateSchedule{
		Hourly: money.Must(150, "INR"),
		Daily:  money.Must(2000, "INR"),
		Weekly: money.Must(11000, "INR"),
	}
}

func registered(t *testing.T) *Vehicle {
	t.Helper()
	v, err := Register(RegisterParams{
		ID:        "veh-1",
		Plate:     "KA-01-HH-1234",
		Make:      "Maruti",
		Model:     "Swift",
		Year:      2023,
		Class:     "hatchback",
		Odometer:  12000,
		Rates:     validRates(),
		CreatedAt: now,
	})
	require.NoError(t, err)
	return v
}

func TestRateScheduleValidate(t *testing.T) {
	tests := []struct {
		name  string
		rates RateSchedule
		want  error
	}{
		{"valid", validRates(), nil},
		{"daily only", RateSchedule{Daily: money.Must(2000, "INR")}, nil},
		{"missing daily", RateSchedule{Hourly: money.Must(150, "INR")}, ErrMissingDailyRate},
		{"negative hourly", RateSchedule{Hourly: money.Must(-1, "INR"), Daily: money.Must(2000, "INR")}, ErrNegativeRate},
		{"negative weekly", RateSchedule{Daily: money.Must(2000, "INR"), Weekly: money.Must(-1, "INR")}, ErrNegativeRate},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.rates.Validate()
			if tc.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.want)
			}
		})
	}
}

func TestRegisterValidation(t *testing.T) {
	_, err := Register(RegisterParams{ID: "veh-1", Rates: validRates(), CreatedAt: now})
	assert.Error(t, err, "plate required")

	_, err = Register(RegisterParams{ID: "veh-1", Plate: "X", Rates: RateSchedule{}, CreatedAt: now})
	assert.ErrorIs(t, err, ErrMissingDailyRate)

	_, err = Register(RegisterParams{ID: "veh-1", Plate: "X", Odometer: -5, Rates: validRates(), CreatedAt: now})
	assert.ErrorIs(t, err, ErrOdometerRollback)
}

func TestRentalStatusCycle(t *testing.T) {
	v := registered(t)
	assert.Equal(t, StatusAvailable, v.Status)

	require.NoError(t, v.MarkRented(now))
	assert.ErrorIs(t, v.MarkRented(now), ErrInvalidState)
	assert.ErrorIs(t, v.SendToService(now), ErrInvalidState)
	assert.ErrorIs(t, v.Retire(now), ErrInvalidState)

	require.NoError(t, v.MarkReturned(now))
	require.NoError(t, v.SendToService(now))
	assert.ErrorIs(t, v.MarkRented(now), ErrInvalidState)
	require.NoError(t, v.ReturnToFleet(now))
	require.NoError(t, v.Retire(now))
}

func TestRecordOdometerNeverRollsBack(t *testing.T) {
	v := registered(t)
	require.NoError(t, v.RecordOdometer(12500, now))
	assert.Equal(t, int64(12500), v.Odometer)
	assert.ErrorIs(t, v.RecordOdometer(12400, now), ErrOdometerRollback)
	// equal reading is fine
	require.NoError(t, v.RecordOdometer(12500, now))
}

func TestUpdateRatesEmitsEvent(t *testing.T) {
	v := registered(t)
	v.ClearEvents()

	newRates := RateSchedule{Daily: money.Must(2500, "INR")}
	require.NoError(t, v.UpdateRates(newRates, ExtraChargeRates{}, now))
	assert.Equal(t, int64(2500), v.Rates.Daily.Amount)

	events := v.PendingEvents()
	require.Len(t, events, 1)
	assert.Equal(t, "vehicle.rates_updated", events[0].EventName())
}
