package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"fleetrent/internal/domain/shared/money"
	"fleetrent/internal/domain/vehicle"
)

type VehicleRepository struct {
	col *mongo.Collection
}

func NewVehicleRepository(db *mongo.Database) *VehicleRepository {
	return &VehicleRepository{col: db.Collection("agg_vehicle")}
}

func (r *VehicleRepository) ByID(ctx context.Context, id vehicle.VehicleID) (*vehicle.Vehicle, error) {
	var doc vehicleDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *VehicleRepository) Save(ctx context.Context, v *vehicle.Vehicle) error {
	doc := newVehicleDocument(v)
	filter := bson.M{"_id": doc.ID, "version": v.Version}
	doc.Version = v.Version + 1
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
	v.Version = doc.Version
	return nil
}

func (r *VehicleRepository) List(ctx context.Context) ([]*vehicle.Vehicle, error) {
	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []*vehicle.Vehicle
	for cur.Next(ctx) {
		var doc vehicleDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toAggregate())
	}
	return out, cur.Err()
}

type vehicleDocument struct {
	ID        string        `bson:"_id"`
	Plate     string        `bson:"plate"`
	Make      string        `bson:"make"`
	Model     string        `bson:"model"`
	Year      int           `bson:"year"`
	Class     string        `bson:"class"`
	Status    string        `bson:"status"`
	Odometer  int64         `bson:"odometer"`
	Rates     ratesDocument `bson:"rates"`
	Extras    extraDocument `bson:"extras"`
	CreatedAt int64         `bson:"created_at"`
	UpdatedAt int64         `bson:"updated_at"`
	Version   int64         `bson:"version"`
}

type ratesDocument struct {
	Hourly   int64  `bson:"hourly"`
	Daily    int64  `bson:"daily"`
	Weekly   int64  `bson:"weekly"`
	Currency string `bson:"currency"`
}

type extraDocument struct {
	LateReturnPerHour    int64 `bson:"late_return_per_hour"`
	ExtraDistancePerUnit int64 `bson:"extra_distance_per_unit"`
}

func newVehicleDocument(v *vehicle.Vehicle) vehicleDocument {
	return vehicleDocument{
		ID:       string(v.ID),
		Plate:    v.Plate,
		Make:     v.Make,
		Model:    v.Model,
		Year:     v.Year,
		Class:    v.Class,
		Status:   string(v.Status),
		Odometer: v.Odometer,
		Rates: ratesDocument{
			Hourly:   v.Rates.Hourly.Amount,
			Daily:    v.Rates.Daily.Amount,
			Weekly:   v.Rates.Weekly.Amount,
			Currency: v.Rates.Daily.Currency,
		},
		Extras: extraDocument{
			LateReturnPerHour:    v.Extras.LateReturnPerHour.Amount,
			ExtraDistancePerUnit: v.Extras.ExtraDistancePerUnit.Amount,
		},
		CreatedAt: v.CreatedAt.UnixMilli(),
		UpdatedAt: v.UpdatedAt.UnixMilli(),
		Version:   v.Version,
	}
}

func (d vehicleDocument) toAggregate() *vehicle.Vehicle {
	cur := d.Rates.Currency
	return &vehicle.Vehicle{
		ID:       vehicle.VehicleID(d.ID),
		Plate:    d.Plate,
		Make:     d.Make,
		Model:    d.Model,
		Year:     d.Year,
		Class:    d.Class,
		Status:   vehicle.Status(d.Status),
		Odometer: d.Odometer,
		Rates: vehicle.RateSchedule{
			Hourly: money.Money{Amount: d.Rates.Hourly, Currency: cur},
			Daily:  money.Money{Amount: d.Rates.Daily, Currency: cur},
			Weekly: money.Money{Amount: d.Rates.Weekly, Currency: cur},
		},
		Extras: vehicle.ExtraChargeRates{
			LateReturnPerHour:    money.Money{Amount: d.Extras.LateReturnPerHour, Currency: cur},
			ExtraDistancePerUnit: money.Money{Amount: d.Extras.ExtraDistancePerUnit, Currency: cur},
		},
		CreatedAt: timestampToTime(d.CreatedAt),
		UpdatedAt: timestampToTime(d.UpdatedAt),
		Version:   d.Version,
	}
}
