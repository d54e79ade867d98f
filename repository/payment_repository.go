package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shopkart/shopkart-api/models"
)

// PaymentRepository persists immutable order records. Create fails with a
// duplicate-key error on orderId collision; callers surface that as a
// conflict rather than overwriting.
type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	FindByUser(ctx context.Context, userID string) ([]models.Payment, error)
	FindAll(ctx context.Context) ([]models.Payment, error)
}

type mongoPaymentRepo struct {
	collection *mongo.Collection
}

func NewPaymentRepository(db *mongo.Database) PaymentRepository {
	return &mongoPaymentRepo{collection: db.Collection("payments")}
}

func (r *mongoPaymentRepo) Create(ctx context.Context, payment *models.Payment) error {
	res, err := r.collection.InsertOne(ctx, payment)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		payment.ID = oid
	}
	return nil
}

// FindByUser returns the user's orders newest first, backed by the
// {userId, orderDate desc} index. A user with no orders gets an empty
// slice, not an error.
func (r *mongoPaymentRepo) FindByUser(ctx context.Context, userID string) ([]models.Payment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "orderDate", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	orders := []models.Payment{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *mongoPaymentRepo) FindAll(ctx context.Context) ([]models.Payment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "orderDate", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	orders := []models.Payment{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}
