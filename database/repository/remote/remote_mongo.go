package remoteRepo

import (
	"context"
	"fmt"
	"time"

	"slotsync/config"
	"slotsync/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoSyncClient implements SyncClient using MongoDB. Every document's _id
// is the same UUID string carried in its "id" field, so change-stream delete
// notifications map straight back to application ids.
type MongoSyncClient struct {
	customers *mongo.Collection
	bookings  *mongo.Collection
}

// NewMongoSyncClient creates a new SyncClient backed by MongoDB.
func NewMongoSyncClient() SyncClient {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	client := &MongoSyncClient{
		customers: db.Collection(CollectionCustomers),
		bookings:  db.Collection(CollectionBookings),
	}
	if err := client.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return client
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *MongoSyncClient) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	customerIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	if _, err := r.customers.Indexes().CreateMany(ctx, customerIndexes); err != nil {
		return fmt.Errorf("failed to create customer indexes: %w", err)
	}

	bookingIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "customer_id", Value: 1}}},
		{Keys: bson.D{{Key: "date", Value: 1}}},
	}
	if _, err := r.bookings.Indexes().CreateMany(ctx, bookingIndexes); err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}
	return nil
}

// Ping checks reachability of the remote store.
func (r *MongoSyncClient) Ping(ctx context.Context) error {
	return database.MongoClient.Ping(ctx, nil)
}

// docWithID marshals v and prepends an _id equal to the application id.
func docWithID(v any, id string) (bson.D, error) {
	data, err := bson.Marshal(v)
	if err != nil {
		return nil, err
	}
	var doc bson.D
	if err := bson.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return append(bson.D{{Key: "_id", Value: id}}, doc...), nil
}
