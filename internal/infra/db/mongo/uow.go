package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"fleetrent/internal/app/uow"
	domainavailability "fleetrent/internal/domain/availability"
	domainbooking "fleetrent/internal/domain/booking"
	domaincustomer "fleetrent/internal/domain/customer"
	domainmaintenance "fleetrent/internal/domain/maintenance"
	domainpayment "fleetrent/internal/domain/payment"
	domainvehicle "fleetrent/internal/domain/vehicle"
)

var ErrUnitOfWorkNotConfigured = errors.New("mongo: unit of work factory missing database")

// Factory wires Mongo transactions into the generic UnitOfWork interface.
type Factory struct {
	DB *mongo.Database

	VehicleRepo      domainvehicle.Repository
	CustomerRepo     domaincustomer.Repository
	BookingRepo      domainbooking.Repository
	ScheduleRepo     domainavailability.ScheduleRepository
	ServiceOrderRepo domainmaintenance.Repository
	PaymentRepo      domainpayment.Repository
}

// NewFactory builds a factory with the default repositories on db.
func NewFactory(db *mongo.Database, prepBufferHours int) Factory {
	return Factory{
		DB:               db,
		VehicleRepo:      NewVehicleRepository(db),
		CustomerRepo:     NewCustomerRepository(db),
		BookingRepo:      NewBookingRepository(db),
		ScheduleRepo:     NewScheduleRepository(db, prepBufferHours),
		ServiceOrderRepo: NewServiceOrderRepository(db),
		PaymentRepo:      NewPaymentRepository(db),
	}
}

// Begin starts a MongoDB session/transaction.
func (f Factory) Begin(ctx context.Context, opts uow.TxOptions) (uow.UnitOfWork, error) {
	if f.DB == nil {
		return nil, ErrUnitOfWorkNotConfigured
	}
	session, err := f.DB.Client().StartSession()
	if err != nil {
		return nil, err
	}
	txnOpts := options.Transaction().SetReadConcern(f.DB.ReadConcern()).SetWriteConcern(f.DB.WriteConcern())
	if err := session.StartTransaction(txnOpts); err != nil {
		session.EndSession(ctx)
		return nil, err
	}
	return &Unit{
		session:       session,
		vehicles:      f.VehicleRepo,
		customers:     f.CustomerRepo,
		bookings:      f.BookingRepo,
		schedules:     f.ScheduleRepo,
		serviceOrders: f.ServiceOrderRepo,
		payments:      f.PaymentRepo,
	}, nil
}

type Unit struct {
	session mongo.Session

	vehicles      domainvehicle.Repository
	customers     domaincustomer.Repository
	bookings      domainbooking.Repository
	schedules     domainavailability.ScheduleRepository
	serviceOrders domainmaintenance.Repository
	payments      domainpayment.Repository
}

func (u *Unit) Vehicles() domainvehicle.Repository {
	return u.vehicles
}

func (u *Unit) Customers() domaincustomer.Repository {
	return u.customers
}

func (u *Unit) Bookings() domainbooking.Repository {
	return u.bookings
}

func (u *Unit) Schedules() domainavailability.ScheduleRepository {
	return u.schedules
}

func (u *Unit) ServiceOrders() domainmaintenance.Repository {
	return u.serviceOrders
}

func (u *Unit) Payments() domainpayment.Repository {
	return u.payments
}

func (u *Unit) Commit(ctx context.Context) error {
	defer u.session.EndSession(ctx)
	return u.session.CommitTransaction(ctx)
}

func (u *Unit) Rollback(ctx context.Context) error {
	defer u.session.EndSession(ctx)
	return u.session.AbortTransaction(ctx)
}

// InjectContext makes the Mongo session visible to downstream repositories.
func (u *Unit) InjectContext(ctx context.Context) context.Context {
	return mongo.NewSessionContext(ctx, u.session)
}
