package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainbooking "fleetrent/internal/domain/booking"
	"fleetrent/internal/domain/customer"
	domainpricing "fleetrent/internal/domain/pricing"
	"fleetrent/internal/domain/vehicle"
)

var ErrConcurrentUpdate = errors.New("mongo: concurrent update detected")

type BookingRepository struct {
	col *mongo.Collection
}

func NewBookingRepository(db *mongo.Database) *BookingRepository {
	return &BookingRepository{col: db.Collection("agg_booking")}
}

func (r *BookingRepository) ByID(ctx context.Context, id domainbooking.BookingID) (*domainbooking.Booking, error) {
	var doc bookingDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *BookingRepository) Save(ctx context.Context, b *domainbooking.Booking) error {
	doc := newBookingDocument(b)
	filter := bson.M{"_id": doc.ID, "version": b.Version}
	doc.Version = b.Version + 1
	update := bson.M{"$set": doc}
	opts := options.Update().SetUpsert(true)
	res, err := r.col.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrConcurrentUpdate
		}
		return err
	}
	if res.MatchedCount == 0 && res.UpsertedCount == 0 {
		return ErrConcurrentUpdate
	}
	b.Version = doc.Version
	return nil
}

func (r *BookingRepository) ListByVehicle(ctx context.Context, vehicleID vehicle.VehicleID) ([]*domainbooking.Booking, error) {
	return r.list(ctx, bson.M{"vehicle_id": string(vehicleID)})
}

func (r *BookingRepository) ListByCustomer(ctx context.Context, customerID customer.ID) ([]*domainbooking.Booking, error) {
	return r.list(ctx, bson.M{"customer_id": string(customerID)})
}

func (r *BookingRepository) ListActiveDueBefore(ctx context.Context, deadline time.Time) ([]*domainbooking.Booking, error) {
	filter := bson.M{
		"status":            string(domainbooking.StatusActive),
		"overdue":           false,
		"window.sched_drop": bson.M{"$lt": deadline.UnixMilli()},
	}
	return r.list(ctx, filter)
}

func (r *BookingRepository) list(ctx context.Context, filter bson.M) ([]*domainbooking.Booking, error) {
	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []*domainbooking.Booking
	for cur.Next(ctx) {
		var doc bookingDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toAggregate())
	}
	return out, cur.Err()
}

type bookingDocument struct {
	ID          string                        `bson:"_id"`
	VehicleID   string                        `bson:"vehicle_id"`
	CustomerID  string                        `bson:"customer_id"`
	Window      windowDocument                `bson:"window"`
	Quote       domainpricing.ChargeBreakdown `bson:"quote"`
	FinalCharge domainpricing.ChargeBreakdown `bson:"final_charge"`
	Status      string                        `bson:"status"`
	Overdue     bool                          `bson:"overdue"`
	CreatedAt   int64                         `bson:"created_at"`
	UpdatedAt   int64                         `bson:"updated_at"`
	Version     int64                         `bson:"version"`
}

type windowDocument struct {
	PickupAt   int64 `bson:"pickup_at"`
	SchedDrop  int64 `bson:"sched_drop"`
	ActualDrop int64 `bson:"actual_drop"`
}

func newBookingDocument(b *domainbooking.Booking) bookingDocument {
	return bookingDocument{
		ID:         string(b.ID),
		VehicleID:  string(b.VehicleID),
		CustomerID: string(b.CustomerID),
		Window: windowDocument{
			PickupAt:   b.Window.PickupAt.UnixMilli(),
			SchedDrop:  b.Window.ScheduledDropAt.UnixMilli(),
			ActualDrop: timestampFromTime(b.Window.ActualDropAt),
		},
		Quote:       b.Quote,
		FinalCharge: b.FinalCharge,
		Status:      string(b.Status),
		Overdue:     b.Overdue,
		CreatedAt:   b.CreatedAt.UnixMilli(),
		UpdatedAt:   b.UpdatedAt.UnixMilli(),
		Version:     b.Version,
	}
}

func (d bookingDocument) toAggregate() *domainbooking.Booking {
	return &domainbooking.Booking{
		ID:         domainbooking.BookingID(d.ID),
		VehicleID:  vehicle.VehicleID(d.VehicleID),
		CustomerID: customer.ID(d.CustomerID),
		Window: domainpricing.RentalWindow{
			PickupAt:        timestampToTime(d.Window.PickupAt),
			ScheduledDropAt: timestampToTime(d.Window.SchedDrop),
			ActualDropAt:    timestampToTime(d.Window.ActualDrop),
		},
		Quote:       d.Quote,
		FinalCharge: d.FinalCharge,
		Status:      domainbooking.Status(d.Status),
		Overdue:     d.Overdue,
		CreatedAt:   timestampToTime(d.CreatedAt),
		UpdatedAt:   timestampToTime(d.UpdatedAt),
		Version:     d.Version,
	}
}

func timestampToTime(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}

func timestampFromTime(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}
