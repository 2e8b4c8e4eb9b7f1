package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"fleetrent/internal/domain/maintenance"
	"fleetrent/internal/domain/shared/money"
	"fleetrent/internal/domain/shared/timespan"
	"fleetrent/internal/domain/vehicle"
)

type ServiceOrderRepository struct {
	col *mongo.Collection
}

func NewServiceOrderRepository(db *mongo.Database) *ServiceOrderRepository {
	return &ServiceOrderRepository{col: db.Collection("agg_service_order")}
}

func (r *ServiceOrderRepository) ByID(ctx context.Context, id maintenance.OrderID) (*maintenance.ServiceOrder, error) {
	var doc serviceOrderDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *ServiceOrderRepository) Save(ctx context.Context, order *maintenance.ServiceOrder) error {
	doc := newServiceOrderDocument(order)
	filter := bson.M{"_id": doc.ID, "version": order.Version}
	doc.Version = order.Version + 1
	opts := options.Update().SetUpsert(true)
	res, err := r.col.UpdateOne(ctx, filter, bson.M{"$set": doc}, opts)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrConcurrentUpdate
		}
		return err
	}
	if res.MatchedCount == 0 && res.UpsertedCount == 0 {
		return ErrConcurrentUpdate
	}
	order.Version = doc.Version
	return nil
}

func (r *ServiceOrderRepository) ListOpenByVehicle(ctx context.Context, vehicleID vehicle.VehicleID) ([]*maintenance.ServiceOrder, error) {
	filter := bson.M{
		"vehicle_id": string(vehicleID),
		"status":     string(maintenance.StatusScheduled),
	}
	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []*maintenance.ServiceOrder
	for cur.Next(ctx) {
		var doc serviceOrderDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toAggregate())
	}
	return out, cur.Err()
}

type serviceOrderDocument struct {
	ID           string `bson:"_id"`
	VehicleID    string `bson:"vehicle_id"`
	Start        int64  `bson:"start"`
	End          int64  `bson:"end"`
	WorkType     string `bson:"work_type"`
	Notes        string `bson:"notes"`
	CostAmount   int64  `bson:"cost_amount"`
	CostCurrency string `bson:"cost_currency"`
	Status       string `bson:"status"`
	CompletedAt  int64  `bson:"completed_at"`
	CreatedAt    int64  `bson:"created_at"`
	UpdatedAt    int64  `bson:"updated_at"`
	Version      int64  `bson:"version"`
}

func newServiceOrderDocument(o *maintenance.ServiceOrder) serviceOrderDocument {
	return serviceOrderDocument{
		ID:           string(o.ID),
		VehicleID:    string(o.VehicleID),
		Start:        o.Span.Start.UnixMilli(),
		End:          o.Span.End.UnixMilli(),
		WorkType:     o.WorkType,
		Notes:        o.Notes,
		CostAmount:   o.Cost.Amount,
		CostCurrency: o.Cost.Currency,
		Status:       string(o.Status),
		CompletedAt:  timestampFromTime(o.CompletedAt),
		CreatedAt:    o.CreatedAt.UnixMilli(),
		UpdatedAt:    o.UpdatedAt.UnixMilli(),
		Version:      o.Version,
	}
}

func (d serviceOrderDocument) toAggregate() *maintenance.ServiceOrder {
	return &maintenance.ServiceOrder{
		ID:          maintenance.OrderID(d.ID),
		VehicleID:   vehicle.VehicleID(d.VehicleID),
		Span:        timespan.Span{Start: timestampToTime(d.Start), End: timestampToTime(d.End)},
		WorkType:    d.WorkType,
		Notes:       d.Notes,
		Cost:        money.Money{Amount: d.CostAmount, Currency: d.CostCurrency},
		Status:      maintenance.Status(d.Status),
		CompletedAt: timestampToTime(d.CompletedAt),
		CreatedAt:   timestampToTime(d.CreatedAt),
		UpdatedAt:   timestampToTime(d.UpdatedAt),
		Version:     d.Version,
	}
}
