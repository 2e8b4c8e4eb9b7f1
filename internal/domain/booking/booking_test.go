package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleetrent/internal/domain/pricing"
	"fleetrent/internal/domain/shared/money"
)

var now = time.Date(2026, 5, 2, 12, 0, 0, 0, time.UTC)

func reserved(t *testing.T) *Booking {
	t.Helper()
	window, err := pricing.NewRentalWindow(now.Add(24*time.Hour), now.Add(72*time.Hour))
	require.NoError(t, err)
	b, err := NewBooking(CreateParams{
		ID:         "bkg-1",
		VehicleID:  "veh-1",
		CustomerID: "cus-1",
		Window:     window,
		Quote:      pricing.ChargeBreakdown{Total: money.Must(4720, "INR")},
		CreatedAt:  now,
	})
	require.NoError(t, err)
	return b
}

func TestNewBookingRecordsReservedEvent(t *testing.T) {
	b := reserved(t)

	assert.Equal(t, StatusReserved, b.Status)
	events := b.PendingEvents()
	require.Len(t, events, 1)
	assert.Equal(t, "booking.reserved", events[0].EventName())
	assert.Equal(t, "bkg-1", events[0].AggregateID())
}

func TestNewBookingRequiresCustomer(t *testing.T) {
	window, err := pricing.NewRentalWindow(now, now.Add(time.Hour))
	require.NoError(t, err)
	_, err = NewBooking(CreateParams{ID: "bkg-1", VehicleID: "veh-1", Window: window, CreatedAt: now})
	assert.ErrorIs(t, err, ErrCustomerMissing)
}

func TestLifecycleHappyPath(t *testing.T) {
	b := reserved(t)
	b.ClearEvents()

	require.NoError(t, b.Start(now.Add(24*time.Hour)))
	assert.Equal(t, StatusActive, b.Status)

	final := pricing.ChargeBreakdown{Total: money.Must(5074, "INR")}
	dropAt := now.Add(75 * time.Hour)
	require.NoError(t, b.Complete(dropAt, final, dropAt))

	assert.Equal(t, StatusCompleted, b.Status)
	assert.Equal(t, dropAt, b.Window.ActualDropAt)
	assert.Equal(t, final, b.FinalCharge)

	events := b.PendingEvents()
	require.Len(t, events, 2)
	assert.Equal(t, "booking.rental_started", events[0].EventName())
	assert.Equal(t, "booking.rental_completed", events[1].EventName())
}

func TestInvalidTransitions(t *testing.T) {
	b := reserved(t)
	final := pricing.ChargeBreakdown{}

	// cannot complete before start
	assert.ErrorIs(t, b.Complete(now, final, now), ErrInvalidState)

	require.NoError(t, b.Start(now))
	// cannot start twice
	assert.ErrorIs(t, b.Start(now), ErrInvalidState)

	require.NoError(t, b.Complete(now.Add(72*time.Hour), final, now))
	// completed bookings are terminal
	assert.ErrorIs(t, b.Cancel("too late", now), ErrInvalidState)
	assert.ErrorIs(t, b.Start(now), ErrInvalidState)
}

func TestCancelReservedAndActive(t *testing.T) {
	b := reserved(t)
	require.NoError(t, b.Cancel("customer request", now))
	assert.Equal(t, StatusCancelled, b.Status)

	b2 := reserved(t)
	require.NoError(t, b2.Start(now))
	require.NoError(t, b2.Cancel("breakdown", now))
	assert.Equal(t, StatusCancelled, b2.Status)
}

func TestFlagOverdueFiresOnce(t *testing.T) {
	b := reserved(t)
	require.NoError(t, b.Start(now.Add(24*time.Hour)))
	b.ClearEvents()

	// not yet due
	assert.False(t, b.FlagOverdue(b.Window.ScheduledDropAt))

	due := b.Window.ScheduledDropAt.Add(time.Minute)
	assert.True(t, b.FlagOverdue(due))
	assert.True(t, b.Overdue)
	require.Len(t, b.PendingEvents(), 1)
	assert.Equal(t, "booking.rental_overdue", b.PendingEvents()[0].EventName())

	// second sweep is a no-op
	assert.False(t, b.FlagOverdue(due.Add(time.Hour)))
}

func TestIntervalViewBlocksWhileOpen(t *testing.T) {
	b := reserved(t)
	assert.True(t, b.IntervalView().Blocks())

	require.NoError(t, b.Start(now))
	assert.True(t, b.IntervalView().Blocks())

	require.NoError(t, b.Complete(now.Add(72*time.Hour), pricing.ChargeBreakdown{}, now))
	assert.False(t, b.IntervalView().Blocks())
}
