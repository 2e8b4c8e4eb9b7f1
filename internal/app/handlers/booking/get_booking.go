package booking

import (
	"context"

	"fleetrent/internal/app/dto"
	"fleetrent/internal/app/handlers/support"
	"fleetrent/internal/app/queries"
	"fleetrent/internal/app/uow"
	domainbooking "fleetrent/internal/domain/booking"
	domaincustomer "fleetrent/internal/domain/customer"
)

const (
	getBookingKey           = "booking.get"
	listCustomerBookingsKey = "booking.list_by_customer"
)

type GetBookingQuery struct {
	BookingID string
}

func (q GetBookingQuery) Key() string { return getBookingKey }

type GetBookingHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *GetBookingHandler) Handle(ctx context.Context, q GetBookingQuery) (dto.Booking, error) {
	unit, ctx, cleanup, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.Booking{}, err
	}
	defer cleanup()

	bkg, err := unit.Bookings().ByID(ctx, domainbooking.BookingID(q.BookingID))
	if err != nil {
		return dto.Booking{}, err
	}
	return dto.BookingFromDomain(bkg), nil
}

type ListCustomerBookingsQuery struct {
	CustomerID string
}

func (q ListCustomerBookingsQuery) Key() string { return listCustomerBookingsKey }

type ListCustomerBookingsHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *ListCustomerBookingsHandler) Handle(ctx context.Context, q ListCustomerBookingsQuery) ([]dto.Booking, error) {
	unit, ctx, cleanup, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	items, err := unit.Bookings().ListByCustomer(ctx, domaincustomer.ID(q.CustomerID))
	if err != nil {
		return nil, err
	}
	out := make([]dto.Booking, 0, len(items))
	for _, b := range items {
		out = append(out, dto.BookingFromDomain(b))
	}
	return out, nil
}

var _ queries.Handler[GetBookingQuery, dto.Booking] = (*GetBookingHandler)(nil)
var _ queries.Handler[ListCustomerBookingsQuery, []dto.Booking] = (*ListCustomerBookingsHandler)(nil)
