package memory

import (
	"context"
	"errors"

	"fleetrent/internal/app/uow"
	domainavailability "fleetrent/internal/domain/availability"
	domainbooking "fleetrent/internal/domain/booking"
	domaincustomer "fleetrent/internal/domain/customer"
	domainmaintenance "fleetrent/internal/domain/maintenance"
	domainpayment "fleetrent/internal/domain/payment"
	domainvehicle "fleetrent/internal/domain/vehicle"
)

// Factory wires in-memory repositories into a unit-of-work boundary.
type Factory struct {
	VehicleRepo      *VehicleRepository
	CustomerRepo     *CustomerRepository
	BookingRepo      *BookingRepository
	ScheduleRepo     *ScheduleRepository
	ServiceOrderRepo *ServiceOrderRepository
	PaymentRepo      *PaymentRepository
}

var ErrFactoryMisconfigured = errors.New("memory: unit of work factory misconfigured")

// Begin starts a lightweight transaction boundary. No isolation is provided
// but the abstraction matches the application ports.
func (f Factory) Begin(ctx context.Context, opts uow.TxOptions) (uow.UnitOfWork, error) {
	if f.VehicleRepo == nil || f.CustomerRepo == nil || f.BookingRepo == nil || f.ScheduleRepo == nil {
		return nil, ErrFactoryMisconfigured
	}
	return &Unit{factory: f}, nil
}

// Unit is a lightweight uow.UnitOfWork backed by in-memory stores.
type Unit struct {
	factory Factory
}

func (u *Unit) Vehicles() domainvehicle.Repository { return u.factory.VehicleRepo }

func (u *Unit) Customers() domaincustomer.Repository { return u.factory.CustomerRepo }

func (u *Unit) Bookings() domainbooking.Repository { return u.factory.BookingRepo }

func (u *Unit) Schedules() domainavailability.ScheduleRepository { return u.factory.ScheduleRepo }

func (u *Unit) ServiceOrders() domainmaintenance.Repository { return u.factory.ServiceOrderRepo }

func (u *Unit) Payments() domainpayment.Repository { return u.factory.PaymentRepo }

func (u *Unit) Commit(ctx context.Context) error { return nil }

func (u *Unit) Rollback(ctx context.Context) error { return nil }

var _ uow.UoWFactory = Factory{}
var _ uow.UnitOfWork = (*Unit)(nil)
