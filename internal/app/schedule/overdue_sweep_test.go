package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainbooking "fleetrent/internal/domain/booking"
	domaincustomer "fleetrent/internal/domain/customer"
	domainpricing "fleetrent/internal/domain/pricing"
	"fleetrent/internal/infra/storage/memory"
)

type recordedNotice struct {
	To       string
	Template string
}

type captureNotifier struct {
	sent []recordedNotice
}

func (n *captureNotifier) Send(ctx context.Context, to string, template string, data any) error {
	n.sent = append(n.sent, recordedNotice{To: to, Template: template})
	return nil
}

func seedActiveBooking(t *testing.T, factory memory.Factory, id string, dropAt time.Time) *domainbooking.Booking {
	t.Helper()
	ctx := context.Background()

	cust, err := domaincustomer.New(domaincustomer.CreateParams{
		ID:            "cus-1",
		Name:          "Asha Rao",
		Email:         "asha@example.com",
		LicenceNumber: "DL-2026-477",
	})
	require.NoError(t, err)
	require.NoError(t, factory.CustomerRepo.Save(ctx, cust))

	window, err := domainpricing.NewRentalWindow(dropAt.Add(-48*time.Hour), dropAt)
	require.NoError(t, err)
	bkg, err := domainbooking.NewBooking(domainbooking.CreateParams{
		ID:         domainbooking.BookingID(id),
		VehicleID:  "veh-1",
		CustomerID: cust.ID,
		Window:     window,
		CreatedAt:  window.PickupAt,
	})
	require.NoError(t, err)
	require.NoError(t, bkg.Start(window.PickupAt))
	bkg.ClearEvents()
	require.NoError(t, factory.BookingRepo.Save(ctx, bkg))
	return bkg
}

func sweepFixture() (memory.Factory, *memory.Outbox, *captureNotifier, *OverdueSweep) {
	factory := memory.Factory{
		VehicleRepo:      memory.NewVehicleRepository(),
		CustomerRepo:     memory.NewCustomerRepository(),
		BookingRepo:      memory.NewBookingRepository(),
		ScheduleRepo:     memory.NewScheduleRepository(0),
		ServiceOrderRepo: memory.NewServiceOrderRepository(),
		PaymentRepo:      memory.NewPaymentRepository(),
	}
	box := memory.NewOutbox()
	notifier := &captureNotifier{}
	sweep := &OverdueSweep{UoWFactory: factory, Outbox: box, Notifier: notifier}
	return factory, box, notifier, sweep
}

func TestOverdueSweepFlagsPastDueRentals(t *testing.T) {
	factory, box, notifier, sweep := sweepFixture()
	dropAt := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	seedActiveBooking(t, factory, "bkg-1", dropAt)
	sweep.Now = func() time.Time { return dropAt.Add(time.Hour) }

	require.NoError(t, sweep.Run(context.Background()))

	stored, err := factory.BookingRepo.ByID(context.Background(), "bkg-1")
	require.NoError(t, err)
	assert.True(t, stored.Overdue)
	assert.Equal(t, domainbooking.StatusActive, stored.Status)

	records := box.Pending()
	require.Len(t, records, 1)
	assert.Equal(t, "booking.rental_overdue", records[0].Name)

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "asha@example.com", notifier.sent[0].To)
	assert.Equal(t, "rental_overdue", notifier.sent[0].Template)
}

func TestOverdueSweepIgnoresRentalsStillInWindow(t *testing.T) {
	factory, box, notifier, sweep := sweepFixture()
	dropAt := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	seedActiveBooking(t, factory, "bkg-1", dropAt)
	sweep.Now = func() time.Time { return dropAt.Add(-time.Hour) }

	require.NoError(t, sweep.Run(context.Background()))

	stored, err := factory.BookingRepo.ByID(context.Background(), "bkg-1")
	require.NoError(t, err)
	assert.False(t, stored.Overdue)
	assert.Empty(t, box.Pending())
	assert.Empty(t, notifier.sent)
}

func TestOverdueSweepIsIdempotent(t *testing.T) {
	factory, box, notifier, sweep := sweepFixture()
	dropAt := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	seedActiveBooking(t, factory, "bkg-1", dropAt)
	sweep.Now = func() time.Time { return dropAt.Add(time.Hour) }

	require.NoError(t, sweep.Run(context.Background()))
	require.NoError(t, sweep.Run(context.Background()))

	assert.Len(t, box.Pending(), 1, "second pass must not flag again")
	assert.Len(t, notifier.sent, 1)
}
