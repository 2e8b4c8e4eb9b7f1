package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"fleetrent/internal/domain/availability"
	"fleetrent/internal/domain/shared/timespan"
	"fleetrent/internal/domain/vehicle"
)

type ScheduleRepository struct {
	col *mongo.Collection

	// prepBufferHours seeds schedules that have no document yet.
	prepBufferHours int
}

func NewScheduleRepository(db *mongo.Database, prepBufferHours int) *ScheduleRepository {
	return &ScheduleRepository{col: db.Collection("agg_schedule"), prepBufferHours: prepBufferHours}
}

func (r *ScheduleRepository) Schedule(ctx context.Context, id vehicle.VehicleID) (*availability.Schedule, error) {
	var doc scheduleDocument
	err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return &availability.Schedule{VehicleID: id, PrepBufferHours: r.prepBufferHours}, nil
	}
	if err != nil {
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *ScheduleRepository) Save(ctx context.Context, s *availability.Schedule) error {
	doc := newScheduleDocument(s)
	filter := bson.M{"_id": doc.ID, "version": s.Version}
	doc.Version = s.Version + 1
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
	s.Version = doc.Version
	return nil
}

type scheduleDocument struct {
	ID              string          `bson:"_id"`
	Blocks          []blockDocument `bson:"blocks"`
	PrepBufferHours int             `bson:"prep_buffer_hours"`
	Version         int64           `bson:"version"`
}

type blockDocument struct {
	Start     int64  `bson:"start"`
	End       int64  `bson:"end"`
	Reason    string `bson:"reason"`
	Reference string `bson:"reference"`
	CreatedAt int64  `bson:"created_at"`
}

func newScheduleDocument(s *availability.Schedule) scheduleDocument {
	doc := scheduleDocument{
		ID:              string(s.VehicleID),
		PrepBufferHours: s.PrepBufferHours,
		Version:         s.Version,
	}
	for _, b := range s.Blocks {
		doc.Blocks = append(doc.Blocks, blockDocument{
			Start:     b.Span.Start.UnixMilli(),
			End:       b.Span.End.UnixMilli(),
			Reason:    string(b.Reason),
			Reference: b.Reference,
			CreatedAt: b.CreatedAt.UnixMilli(),
		})
	}
	return doc
}

func (d scheduleDocument) toAggregate() *availability.Schedule {
	s := &availability.Schedule{
		VehicleID:       vehicle.VehicleID(d.ID),
		PrepBufferHours: d.PrepBufferHours,
		Version:         d.Version,
	}
	for _, b := range d.Blocks {
		s.Blocks = append(s.Blocks, availability.Block{
			Span:      timespan.Span{Start: timestampToTime(b.Start), End: timestampToTime(b.End)},
			Reason:    availability.BlockReason(b.Reason),
			Reference: b.Reference,
			CreatedAt: timestampToTime(b.CreatedAt),
		})
	}
	return s
}
