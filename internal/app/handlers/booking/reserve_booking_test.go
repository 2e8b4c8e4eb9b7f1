package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleetrent/internal/app/policies"
	domainbooking "fleetrent/internal/domain/booking"
	domaincustomer "fleetrent/internal/domain/customer"
	domainpricing "fleetrent/internal/domain/pricing"
	"fleetrent/internal/domain/shared/money"
	domainvehicle "fleetrent/internal/domain/vehicle"
	"fleetrent/internal/infra/storage/memory"
)

type fixture struct {
	factory memory.Factory
	outbox  *memory.Outbox
	pricing policies.PricingPort
}

func newFixture(t *testing.T, prepBufferHours int) fixture {
	t.Helper()
	return fixture{
		factory: memory.Factory{
			VehicleRepo:      memory.NewVehicleRepository(),
			CustomerRepo:     memory.NewCustomerRepository(),
			BookingRepo:      memory.NewBookingRepository(),
			ScheduleRepo:     memory.NewScheduleRepository(prepBufferHours),
			ServiceOrderRepo: memory.NewServiceOrderRepository(),
			PaymentRepo:      memory.NewPaymentRepository(),
		},
		outbox:  memory.NewOutbox(),
		pricing: policies.EnginePricingPort{Calculator: domainpricing.NewEngine(domainpricing.DefaultConfig())},
	}
}

func (f fixture) seedVehicle(t *testing.T, id string) *domainvehicle.Vehicle {
	t.Helper()
	veh, err := domainvehicle.Register(domainvehicle.RegisterParams{
		ID:    domainvehicle.VehicleID(id),
		Plate: "KA-01-HH-1234",
		Make:  "Maruti",
		Model: "Swift",
		Year:  2023,
		Class: "hatchback",
		Rates: domainvehicle.RateSchedule{
			Hourly: money.Must(150, "INR"),
			Daily:  money.Must(2000, "INR"),
		},
		CreatedAt: time.Now(),
	})
	require.NoError(t, err)
	veh.ClearEvents()
	require.NoError(t, f.factory.VehicleRepo.Save(context.Background(), veh))
	return veh
}

func (f fixture) seedCustomer(t *testing.T, id string) *domaincustomer.Customer {
	t.Helper()
	cust, err := domaincustomer.New(domaincustomer.CreateParams{
		ID:            domaincustomer.ID(id),
		Name:          "Asha Rao",
		Email:         "asha@example.com",
		LicenceNumber: "DL-2026-477",
		LicenceExpiry: time.Now().Add(365 * 24 * time.Hour),
	})
	require.NoError(t, err)
	require.NoError(t, f.factory.CustomerRepo.Save(context.Background(), cust))
	return cust
}

func reserveCmd(id string, pickupIn, length time.Duration) ReserveBookingCommand {
	pickup := time.Now().Add(pickupIn).Truncate(time.Hour)
	return ReserveBookingCommand{
		CommandID:       id,
		VehicleID:       "veh-1",
		CustomerID:      "cus-1",
		PickupAt:        pickup,
		ScheduledDropAt: pickup.Add(length),
	}
}

func TestReserveBookingHappyPath(t *testing.T) {
	f := newFixture(t, 0)
	f.seedVehicle(t, "veh-1")
	f.seedCustomer(t, "cus-1")
	handler := &ReserveBookingHandler{UoWFactory: f.factory, Pricing: f.pricing, Outbox: f.outbox}

	res, err := handler.Handle(context.Background(), reserveCmd("bkg-1", 24*time.Hour, 48*time.Hour))
	require.NoError(t, err)

	assert.Equal(t, "bkg-1", res.BookingID)
	assert.Equal(t, int64(4720), res.Total)
	assert.Equal(t, "INR", res.Currency)

	stored, err := f.factory.BookingRepo.ByID(context.Background(), "bkg-1")
	require.NoError(t, err)
	assert.Equal(t, domainbooking.StatusReserved, stored.Status)
	assert.Empty(t, stored.PendingEvents(), "events must move to the outbox")

	records := f.outbox.Pending()
	require.Len(t, records, 1)
	assert.Equal(t, "booking.reserved", records[0].Name)
}

func TestReserveBookingOverlapRejected(t *testing.T) {
	f := newFixture(t, 0)
	f.seedVehicle(t, "veh-1")
	f.seedCustomer(t, "cus-1")
	handler := &ReserveBookingHandler{UoWFactory: f.factory, Pricing: f.pricing, Outbox: f.outbox}

	_, err := handler.Handle(context.Background(), reserveCmd("bkg-1", 24*time.Hour, 48*time.Hour))
	require.NoError(t, err)

	_, err = handler.Handle(context.Background(), reserveCmd("bkg-2", 36*time.Hour, 48*time.Hour))
	assert.ErrorIs(t, err, domainbooking.ErrVehicleBusy)
}

func TestReserveBookingBackToBackAllowed(t *testing.T) {
	f := newFixture(t, 0)
	f.seedVehicle(t, "veh-1")
	f.seedCustomer(t, "cus-1")
	handler := &ReserveBookingHandler{UoWFactory: f.factory, Pricing: f.pricing, Outbox: f.outbox}

	first := reserveCmd("bkg-1", 24*time.Hour, 48*time.Hour)
	_, err := handler.Handle(context.Background(), first)
	require.NoError(t, err)

	second := ReserveBookingCommand{
		CommandID:       "bkg-2",
		VehicleID:       "veh-1",
		CustomerID:      "cus-1",
		PickupAt:        first.ScheduledDropAt,
		ScheduledDropAt: first.ScheduledDropAt.Add(24 * time.Hour),
	}
	_, err = handler.Handle(context.Background(), second)
	require.NoError(t, err)
}

func TestReserveBookingPrepBufferBlocksBackToBack(t *testing.T) {
	f := newFixture(t, 2)
	f.seedVehicle(t, "veh-1")
	f.seedCustomer(t, "cus-1")
	handler := &ReserveBookingHandler{UoWFactory: f.factory, Pricing: f.pricing, Outbox: f.outbox}

	first := reserveCmd("bkg-1", 24*time.Hour, 48*time.Hour)
	_, err := handler.Handle(context.Background(), first)
	require.NoError(t, err)

	second := ReserveBookingCommand{
		CommandID:       "bkg-2",
		VehicleID:       "veh-1",
		CustomerID:      "cus-1",
		PickupAt:        first.ScheduledDropAt,
		ScheduledDropAt: first.ScheduledDropAt.Add(24 * time.Hour),
	}
	_, err = handler.Handle(context.Background(), second)
	assert.ErrorIs(t, err, domainbooking.ErrVehicleBusy)
}

func TestReserveBookingVehicleInService(t *testing.T) {
	f := newFixture(t, 0)
	veh := f.seedVehicle(t, "veh-1")
	f.seedCustomer(t, "cus-1")
	require.NoError(t, veh.SendToService(time.Now()))
	require.NoError(t, f.factory.VehicleRepo.Save(context.Background(), veh))
	handler := &ReserveBookingHandler{UoWFactory: f.factory, Pricing: f.pricing, Outbox: f.outbox}

	_, err := handler.Handle(context.Background(), reserveCmd("bkg-1", 24*time.Hour, 48*time.Hour))
	assert.ErrorIs(t, err, ErrVehicleNotRentable)
}

func TestReserveBookingExpiredLicence(t *testing.T) {
	f := newFixture(t, 0)
	f.seedVehicle(t, "veh-1")
	cust := f.seedCustomer(t, "cus-1")
	cust.LicenceExpiry = time.Now().Add(-24 * time.Hour)
	require.NoError(t, f.factory.CustomerRepo.Save(context.Background(), cust))
	handler := &ReserveBookingHandler{UoWFactory: f.factory, Pricing: f.pricing, Outbox: f.outbox}

	_, err := handler.Handle(context.Background(), reserveCmd("bkg-1", 24*time.Hour, 48*time.Hour))
	assert.ErrorIs(t, err, domaincustomer.ErrLicenceExpired)
}

func TestFullRentalLifecycle(t *testing.T) {
	f := newFixture(t, 0)
	f.seedVehicle(t, "veh-1")
	f.seedCustomer(t, "cus-1")
	ctx := context.Background()

	reserve := &ReserveBookingHandler{UoWFactory: f.factory, Pricing: f.pricing, Outbox: f.outbox}
	start := &StartRentalHandler{UoWFactory: f.factory, Outbox: f.outbox}
	complete := &CompleteRentalHandler{UoWFactory: f.factory, Pricing: f.pricing, Outbox: f.outbox}

	cmd := reserveCmd("bkg-1", -48*time.Hour, 48*time.Hour)
	_, err := reserve.Handle(ctx, cmd)
	require.NoError(t, err)

	_, err = start.Handle(ctx, StartRentalCommand{BookingID: "bkg-1", Odometer: 1000})
	require.NoError(t, err)

	veh, err := f.factory.VehicleRepo.ByID(ctx, "veh-1")
	require.NoError(t, err)
	assert.Equal(t, domainvehicle.StatusRented, veh.Status)

	res, err := complete.Handle(ctx, CompleteRentalCommand{
		CommandID:     "pay-1",
		BookingID:     "bkg-1",
		ActualDropAt:  cmd.ScheduledDropAt,
		StartOdometer: int64p(1000),
		EndOdometer:   int64p(1500),
	})
	require.NoError(t, err)

	assert.Equal(t, "pay-1", res.PaymentID)
	assert.Equal(t, int64(4720), res.Charge.Total)
	assert.Equal(t, int64(0), res.Charge.ExtraDistanceCharge)

	bkg, err := f.factory.BookingRepo.ByID(ctx, "bkg-1")
	require.NoError(t, err)
	assert.Equal(t, domainbooking.StatusCompleted, bkg.Status)

	veh, err = f.factory.VehicleRepo.ByID(ctx, "veh-1")
	require.NoError(t, err)
	assert.Equal(t, domainvehicle.StatusAvailable, veh.Status)
	assert.Equal(t, int64(1500), veh.Odometer)

	pays, err := f.factory.PaymentRepo.ByBooking(ctx, "bkg-1")
	require.NoError(t, err)
	require.Len(t, pays, 1)
	assert.Equal(t, int64(4720), pays[0].Amount.Amount)

	// vehicle is free again for the same window
	free := f.factory.ScheduleRepo
	sched, err := free.Schedule(ctx, "veh-1")
	require.NoError(t, err)
	assert.Empty(t, sched.Blocks)
}

func TestCancelReleasesTheWindow(t *testing.T) {
	f := newFixture(t, 0)
	f.seedVehicle(t, "veh-1")
	f.seedCustomer(t, "cus-1")
	ctx := context.Background()

	reserve := &ReserveBookingHandler{UoWFactory: f.factory, Pricing: f.pricing, Outbox: f.outbox}
	cancel := &CancelBookingHandler{UoWFactory: f.factory, Outbox: f.outbox}

	cmd := reserveCmd("bkg-1", 24*time.Hour, 48*time.Hour)
	_, err := reserve.Handle(ctx, cmd)
	require.NoError(t, err)

	res, err := cancel.Handle(ctx, CancelBookingCommand{BookingID: "bkg-1", Reason: "plans changed"})
	require.NoError(t, err)
	assert.Equal(t, string(domainbooking.StatusCancelled), res.Status)

	// the same window can be booked again
	_, err = reserve.Handle(ctx, ReserveBookingCommand{
		CommandID:       "bkg-2",
		VehicleID:       "veh-1",
		CustomerID:      "cus-1",
		PickupAt:        cmd.PickupAt,
		ScheduledDropAt: cmd.ScheduledDropAt,
	})
	require.NoError(t, err)
}

func int64p(v int64) *int64 { return &v }
