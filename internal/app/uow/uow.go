package uow

import (
	"context"

	domainavailability "fleetrent/internal/domain/availability"
	domainbooking "fleetrent/internal/domain/booking"
	domaincustomer "fleetrent/internal/domain/customer"
	domainmaintenance "fleetrent/internal/domain/maintenance"
	domainpayment "fleetrent/internal/domain/payment"
	domainvehicle "fleetrent/internal/domain/vehicle"
)

// UnitOfWork coordinates repositories inside a transaction boundary.
type UnitOfWork interface {
	Vehicles() domainvehicle.Repository
	Customers() domaincustomer.Repository
	Bookings() domainbooking.Repository
	Schedules() domainavailability.ScheduleRepository
	ServiceOrders() domainmaintenance.Repository
	Payments() domainpayment.Repository

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// UoWFactory starts unit of work instances.
type UoWFactory interface {
	Begin(ctx context.Context, opts TxOptions) (UnitOfWork, error)
}

// TxOptions configure transaction boundaries.
type TxOptions struct {
	ReadOnly bool
}
