// File: database/repository/remote/remoteMongoCrud.go
package remoteRepo

import (
	"context"
	"fmt"
	"time"

	"slotsync/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FetchCustomers retrieves all customer rows, newest first.
func (r *MongoSyncClient) FetchCustomers(ctx context.Context) ([]models.Customer, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.customers.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch customers: %w", err)
	}
	defer cursor.Close(ctx)

	var customers []models.Customer
	if err := cursor.All(ctx, &customers); err != nil {
		return nil, fmt.Errorf("failed to decode customers: %w", err)
	}
	return customers, nil
}

// FetchBookings retrieves all booking rows ordered by date.
func (r *MongoSyncClient) FetchBookings(ctx context.Context) ([]models.Booking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	cursor, err := r.bookings.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}

// GetCustomer retrieves one customer by id.
func (r *MongoSyncClient) GetCustomer(ctx context.Context, id string) (*models.Customer, error) {
	var customer models.Customer
	if err := r.customers.FindOne(ctx, bson.M{"id": id}).Decode(&customer); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("customer %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch customer %s: %w", id, err)
	}
	return &customer, nil
}

// GetBooking retrieves one booking by id.
func (r *MongoSyncClient) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	var booking models.Booking
	if err := r.bookings.FindOne(ctx, bson.M{"id": id}).Decode(&booking); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("booking %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch booking %s: %w", id, err)
	}
	return &booking, nil
}

// InsertCustomer creates a customer row and returns the authoritative record.
func (r *MongoSyncClient) InsertCustomer(ctx context.Context, customer *models.Customer) (*models.Customer, error) {
	if customer.ID == "" {
		customer.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	customer.CreatedAt = now
	customer.UpdatedAt = now

	doc, err := docWithID(customer, customer.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to encode customer: %w", err)
	}
	if _, err := r.customers.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}
	return customer, nil
}

// UpdateCustomer applies a partial update and returns the authoritative record.
func (r *MongoSyncClient) UpdateCustomer(ctx context.Context, id string, fields bson.M) (*models.Customer, error) {
	fields["updated_at"] = time.Now().UTC()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Customer
	err := r.customers.FindOneAndUpdate(ctx, bson.M{"id": id}, bson.M{"$set": fields}, opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("customer %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update customer %s: %w", id, err)
	}
	return &updated, nil
}

// DeleteCustomer removes a customer row. The canonical model cascades
// deletion to that customer's bookings, so dependent rows go first.
func (r *MongoSyncClient) DeleteCustomer(ctx context.Context, id string) error {
	if _, err := r.bookings.DeleteMany(ctx, bson.M{"customer_id": id}); err != nil {
		return fmt.Errorf("failed to delete bookings for customer %s: %w", id, err)
	}
	result, err := r.customers.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete customer %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("customer %s: %w", id, ErrNotFound)
	}
	return nil
}

// InsertBooking creates a booking row and returns the authoritative record.
func (r *MongoSyncClient) InsertBooking(ctx context.Context, booking *models.Booking) (*models.Booking, error) {
	if booking.ID == "" {
		booking.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	doc, err := docWithID(booking, booking.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to encode booking: %w", err)
	}
	if _, err := r.bookings.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}
	return booking, nil
}

// UpdateBooking applies a partial update and returns the authoritative record.
func (r *MongoSyncClient) UpdateBooking(ctx context.Context, id string, fields bson.M) (*models.Booking, error) {
	fields["updated_at"] = time.Now().UTC()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Booking
	err := r.bookings.FindOneAndUpdate(ctx, bson.M{"id": id}, bson.M{"$set": fields}, opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("booking %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update booking %s: %w", id, err)
	}
	return &updated, nil
}

// DeleteBooking removes a booking row by id.
func (r *MongoSyncClient) DeleteBooking(ctx context.Context, id string) error {
	result, err := r.bookings.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete booking %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("booking %s: %w", id, ErrNotFound)
	}
	return nil
}
