package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"fleetrent/internal/domain/payment"
	"fleetrent/internal/domain/shared/money"
)

type PaymentRepository struct {
	col *mongo.Collection
}

func NewPaymentRepository(db *mongo.Database) *PaymentRepository {
	return &PaymentRepository{col: db.Collection("agg_payment")}
}

func (r *PaymentRepository) ByID(ctx context.Context, id payment.PaymentID) (*payment.Payment, error) {
	var doc paymentDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *PaymentRepository) ByBooking(ctx context.Context, bookingID string) ([]*payment.Payment, error) {
	cur, err := r.col.Find(ctx, bson.M{"booking_id": bookingID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []*payment.Payment
	for cur.Next(ctx) {
		var doc paymentDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toAggregate())
	}
	return out, cur.Err()
}

func (r *PaymentRepository) Save(ctx context.Context, p *payment.Payment) error {
	doc := newPaymentDocument(p)
	filter := bson.M{"_id": doc.ID, "version": p.Version}
	doc.Version = p.Version + 1
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
	p.Version = doc.Version
	return nil
}

type paymentDocument struct {
	ID         string `bson:"_id"`
	BookingID  string `bson:"booking_id"`
	Amount     int64  `bson:"amount"`
	Currency   string `bson:"currency"`
	Method     string `bson:"method"`
	Status     string `bson:"status"`
	CapturedAt int64  `bson:"captured_at"`
	CreatedAt  int64  `bson:"created_at"`
	UpdatedAt  int64  `bson:"updated_at"`
	Version    int64  `bson:"version"`
}

func newPaymentDocument(p *payment.Payment) paymentDocument {
	return paymentDocument{
		ID:         string(p.ID),
		BookingID:  p.BookingID,
		Amount:     p.Amount.Amount,
		Currency:   p.Amount.Currency,
		Method:     string(p.Method),
		Status:     string(p.Status),
		CapturedAt: timestampFromTime(p.CapturedAt),
		CreatedAt:  p.CreatedAt.UnixMilli(),
		UpdatedAt:  p.UpdatedAt.UnixMilli(),
		Version:    p.Version,
	}
}

func (d paymentDocument) toAggregate() *payment.Payment {
	return &payment.Payment{
		ID:         payment.PaymentID(d.ID),
		BookingID:  d.BookingID,
		Amount:     money.Money{Amount: d.Amount, Currency: d.Currency},
		Method:     payment.Method(d.Method),
		Status:     payment.Status(d.Status),
		CapturedAt: timestampToTime(d.CapturedAt),
		CreatedAt:  timestampToTime(d.CreatedAt),
		UpdatedAt:  timestampToTime(d.UpdatedAt),
		Version:    d.Version,
	}
}
