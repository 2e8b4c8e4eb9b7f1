package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"fleetrent/internal/domain/customer"
)

type CustomerRepository struct {
	col *mongo.Collection
}

func NewCustomerRepository(db *mongo.Database) *CustomerRepository {
	return &CustomerRepository{col: db.Collection("agg_customer")}
}

func (r *CustomerRepository) ByID(ctx context.Context, id customer.ID) (*customer.Customer, error) {
	return r.findOne(ctx, bson.M{"_id": string(id)})
}

func (r *CustomerRepository) ByEmail(ctx context.Context, email string) (*customer.Customer, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *CustomerRepository) findOne(ctx context.Context, filter bson.M) (*customer.Customer, error) {
	var doc customerDocument
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *CustomerRepository) Save(ctx context.Context, c *customer.Customer) error {
	doc := newCustomerDocument(c)
	opts := options.Update().SetUpsert(true)
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": doc.ID}, bson.M{"$set": doc}, opts)
	return err
}

type customerDocument struct {
	ID            string `bson:"_id"`
	Name          string `bson:"name"`
	Email         string `bson:"email"`
	Phone         string `bson:"phone"`
	LicenceNumber string `bson:"licence_number"`
	LicenceExpiry int64  `bson:"licence_expiry"`
	Status        string `bson:"status"`
	CreatedAt     int64  `bson:"created_at"`
	UpdatedAt     int64  `bson:"updated_at"`
}

func newCustomerDocument(c *customer.Customer) customerDocument {
	return customerDocument{
		ID:            string(c.ID),
		Name:          c.Name,
		Email:         c.Email,
		Phone:         c.Phone,
		LicenceNumber: c.LicenceNumber,
		LicenceExpiry: timestampFromTime(c.LicenceExpiry),
		Status:        string(c.Status),
		CreatedAt:     c.CreatedAt.UnixMilli(),
		UpdatedAt:     c.UpdatedAt.UnixMilli(),
	}
}

func (d customerDocument) toAggregate() *customer.Customer {
	return &customer.Customer{
		ID:            customer.ID(d.ID),
		Name:          d.Name,
		Email:         d.Email,
		Phone:         d.Phone,
		LicenceNumber: d.LicenceNumber,
		LicenceExpiry: timestampToTime(d.LicenceExpiry),
		Status:        customer.Status(d.Status),
		CreatedAt:     timestampToTime(d.CreatedAt),
		UpdatedAt:     timestampToTime(d.UpdatedAt),
	}
}
