package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shopkart/shopkart-api/models"
)

// AddressRepository scopes every filter by the owning user so one user can
// never read or delete another's address book.
type AddressRepository interface {
	Create(ctx context.Context, address *models.Address) error
	FindLatestByUser(ctx context.Context, userID string) (*models.Address, error)
	FindByUser(ctx context.Context, userID string) ([]models.Address, error)
	DeleteByIDAndUser(ctx context.Context, id primitive.ObjectID, userID string) (*models.Address, error)
}

type mongoAddressRepo struct {
	collection *mongo.Collection
}

func NewAddressRepository(db *mongo.Database) AddressRepository {
	return &mongoAddressRepo{collection: db.Collection("addresses")}
}

func (r *mongoAddressRepo) Create(ctx context.Context, address *models.Address) error {
	address.CreatedAt = time.Now().UTC()
	res, err := r.collection.InsertOne(ctx, address)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		address.ID = oid
	}
	return nil
}

// FindLatestByUser is backed by the {userId, createdAt desc} index.
func (r *mongoAddressRepo) FindLatestByUser(ctx context.Context, userID string) (*models.Address, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	var address models.Address
	err := r.collection.FindOne(ctx, bson.M{"userId": userID}, opts).Decode(&address)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &address, nil
}

func (r *mongoAddressRepo) FindByUser(ctx context.Context, userID string) ([]models.Address, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var addresses []models.Address
	if err := cursor.All(ctx, &addresses); err != nil {
		return nil, err
	}
	return addresses, nil
}

func (r *mongoAddressRepo) DeleteByIDAndUser(ctx context.Context, id primitive.ObjectID, userID string) (*models.Address, error) {
	var address models.Address
	err := r.collection.FindOneAndDelete(ctx, bson.M{"_id": id, "userId": userID}).Decode(&address)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &address, nil
}
