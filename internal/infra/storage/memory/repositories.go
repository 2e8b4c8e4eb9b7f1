package memory

import (
	"context"
	"sync"
	"time"

	domainavailability "fleetrent/internal/domain/availability"
	domainbooking "fleetrent/internal/domain/booking"
	domaincustomer "fleetrent/internal/domain/customer"
	domainmaintenance "fleetrent/internal/domain/maintenance"
	domainpayment "fleetrent/internal/domain/payment"
	domainvehicle "fleetrent/internal/domain/vehicle"
)

// VehicleRepository is an in-memory implementation for demos and tests.
type VehicleRepository struct {
	mu    sync.RWMutex
	items map[domainvehicle.VehicleID]*domainvehicle.Vehicle
}

func NewVehicleRepository() *VehicleRepository {
	return &VehicleRepository{items: make(map[domainvehicle.VehicleID]*domainvehicle.Vehicle)}
}

func (r *VehicleRepository) ByID(ctx context.Context, id domainvehicle.VehicleID) (*domainvehicle.Vehicle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.items[id]
	if !ok {
		return nil, domainvehicle.ErrVehicleNotFound
	}
	return v, nil
}

func (r *VehicleRepository) Save(ctx context.Context, v *domainvehicle.Vehicle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	v.Version++
	r.items[v.ID] = v
	return nil
}

func (r *VehicleRepository) List(ctx context.Context) ([]*domainvehicle.Vehicle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domainvehicle.Vehicle, 0, len(r.items))
	for _, v := range r.items {
		out = append(out, v)
	}
	return out, nil
}

// CustomerRepository keeps customers in memory.
type CustomerRepository struct {
	mu    sync.RWMutex
	items map[domaincustomer.ID]*domaincustomer.Customer
}

func NewCustomerRepository() *CustomerRepository {
	return &CustomerRepository{items: make(map[domaincustomer.ID]*domaincustomer.Customer)}
}

func (r *CustomerRepository) ByID(ctx context.Context, id domaincustomer.ID) (*domaincustomer.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.items[id]
	if !ok {
		return nil, domaincustomer.ErrNotFound
	}
	return c, nil
}

func (r *CustomerRepository) ByEmail(ctx context.Context, email string) (*domaincustomer.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.items {
		if c.Email == email {
			return c, nil
		}
	}
	return nil, domaincustomer.ErrNotFound
}

func (r *CustomerRepository) Save(ctx context.Context, c *domaincustomer.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[c.ID] = c
	return nil
}

// BookingRepository stores bookings in memory.
type BookingRepository struct {
	mu    sync.RWMutex
	items map[domainbooking.BookingID]*domainbooking.Booking
}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{items: make(map[domainbooking.BookingID]*domainbooking.Booking)}
}

func (r *BookingRepository) ByID(ctx context.Context, id domainbooking.BookingID) (*domainbooking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.items[id]
	if !ok {
		return nil, domainbooking.ErrBookingNotFound
	}
	return b, nil
}

func (r *BookingRepository) Save(ctx context.Context, b *domainbooking.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b.Version++
	r.items[b.ID] = b
	return nil
}

func (r *BookingRepository) ListByVehicle(ctx context.Context, vehicleID domainvehicle.VehicleID) ([]*domainbooking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domainbooking.Booking
	for _, b := range r.items {
		if b.VehicleID == vehicleID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *BookingRepository) ListByCustomer(ctx context.Context, customerID domaincustomer.ID) ([]*domainbooking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domainbooking.Booking
	for _, b := range r.items {
		if b.CustomerID == customerID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *BookingRepository) ListActiveDueBefore(ctx context.Context, deadline time.Time) ([]*domainbooking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domainbooking.Booking
	for _, b := range r.items {
		if b.Status == domainbooking.StatusActive && b.Window.ScheduledDropAt.Before(deadline) {
			out = append(out, b)
		}
	}
	return out, nil
}

// ScheduleRepository keeps vehicle schedules in memory, lazily creating them.
type ScheduleRepository struct {
	mu              sync.Mutex
	items           map[domainvehicle.VehicleID]*domainavailability.Schedule
	prepBufferHours int
}

func NewScheduleRepository(prepBufferHours int) *ScheduleRepository {
	return &ScheduleRepository{
		items:           make(map[domainvehicle.VehicleID]*domainavailability.Schedule),
		prepBufferHours: prepBufferHours,
	}
}

func (r *ScheduleRepository) Schedule(ctx context.Context, id domainvehicle.VehicleID) (*domainavailability.Schedule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.items[id]; ok {
		return s, nil
	}
	s := domainavailability.NewSchedule(id, r.prepBufferHours)
	r.items[id] = s
	return s, nil
}

func (r *ScheduleRepository) Save(ctx context.Context, schedule *domainavailability.Schedule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	schedule.Version++
	r.items[schedule.VehicleID] = schedule
	return nil
}

// ServiceOrderRepository keeps maintenance orders in memory.
type ServiceOrderRepository struct {
	mu    sync.RWMutex
	items map[domainmaintenance.OrderID]*domainmaintenance.ServiceOrder
}

func NewServiceOrderRepository() *ServiceOrderRepository {
	return &ServiceOrderRepository{items: make(map[domainmaintenance.OrderID]*domainmaintenance.ServiceOrder)}
}

func (r *ServiceOrderRepository) ByID(ctx context.Context, id domainmaintenance.OrderID) (*domainmaintenance.ServiceOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.items[id]
	if !ok {
		return nil, domainmaintenance.ErrOrderNotFound
	}
	return o, nil
}

func (r *ServiceOrderRepository) Save(ctx context.Context, order *domainmaintenance.ServiceOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	order.Version++
	r.items[order.ID] = order
	return nil
}

func (r *ServiceOrderRepository) ListOpenByVehicle(ctx context.Context, vehicleID domainvehicle.VehicleID) ([]*domainmaintenance.ServiceOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domainmaintenance.ServiceOrder
	for _, o := range r.items {
		if o.VehicleID == vehicleID && o.Status == domainmaintenance.StatusScheduled {
			out = append(out, o)
		}
	}
	return out, nil
}

// PaymentRepository keeps payments in memory.
type PaymentRepository struct {
	mu    sync.RWMutex
	items map[domainpayment.PaymentID]*domainpayment.Payment
}

func NewPaymentRepository() *PaymentRepository {
	return &PaymentRepository{items: make(map[domainpayment.PaymentID]*domainpayment.Payment)}
}

func (r *PaymentRepository) ByID(ctx context.Context, id domainpayment.PaymentID) (*domainpayment.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.items[id]
	if !ok {
		return nil, domainpayment.ErrPaymentNotFound
	}
	return p, nil
}

func (r *PaymentRepository) ByBooking(ctx context.Context, bookingID string) ([]*domainpayment.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domainpayment.Payment
	for _, p := range r.items {
		if p.BookingID == bookingID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *PaymentRepository) Save(ctx context.Context, p *domainpayment.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.Version++
	r.items[p.ID] = p
	return nil
}
