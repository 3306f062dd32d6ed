package remoteRepo

import (
	"context"

	"slotsync/models"

	"go.mongodb.org/mongo-driver/bson"
)

// Collection names in the authoritative store.
const (
	CollectionCustomers = "customers"
	CollectionBookings  = "bookings"
)

// EventType identifies the kind of remote mutation carried by a ChangeEvent.
type EventType string

const (
	EventInsert EventType = "insert"
	EventUpdate EventType = "update"
	EventDelete EventType = "delete"
)

// ChangeEvent is one remote mutation delivered over the live channel.
// Customer or Booking is populated for insert/update events depending on
// Collection; delete events carry only the id.
type ChangeEvent struct {
	Type       EventType
	Collection string
	ID         string
	Customer   *models.Customer
	Booking    *models.Booking
}

// ChannelStatus reports connection-state transitions of the live channel.
type ChannelStatus string

const (
	ChannelSubscribed ChannelStatus = "subscribed"
	ChannelClosed     ChannelStatus = "closed"
	ChannelErrored    ChannelStatus = "errored"
)

/// SyncClient is the contract against the authoritative remote store: bulk
// load, row CRUD returning the server's authoritative copy, and a
// subscribe-to-changes primitive. Delivery of change events is best-effort;
// a dropped channel is resolved by a fresh bootstrap, not by replay.
type SyncClient interface {
	// FetchCustomers retrieves all customer rows.
	FetchCustomers(ctx context.Context) ([]models.Customer, error)
	// FetchBookings retrieves all booking rows.
	FetchBookings(ctx context.Context) ([]models.Booking, error)
	// GetCustomer retrieves one customer by id.
	GetCustomer(ctx context.Context, id string) (*models.Customer, error)
	// GetBooking retrieves one booking by id.
	GetBooking(ctx context.Context, id string) (*models.Booking, error)
	// InsertCustomer creates a customer row and returns the authoritative record.
	InsertCustomer(ctx context.Context, customer *models.Customer) (*models.Customer, error)
	// UpdateCustomer applies a partial update and returns the authoritative record.
	UpdateCustomer(ctx context.Context, id string, fields bson.M) (*models.Customer, error)
	// DeleteCustomer removes a customer row, cascading to that customer's bookings.
	DeleteCustomer(ctx context.Context, id string) error
	// InsertBooking creates a booking row and returns the authoritative record.
	InsertBooking(ctx context.Context, booking *models.Booking) (*models.Booking, error)
	// UpdateBooking applies a partial update and returns the authoritative record.
	UpdateBooking(ctx context.Context, id string, fields bson.M) (*models.Booking, error)
	// DeleteBooking removes a booking row.
	DeleteBooking(ctx context.Context, id string) error
	// Subscribe starts delivering remote mutations to onEvent and channel
	// transitions to onStatus until the returned stop function is called.
	Subscribe(ctx context.Context, onEvent func(ChangeEvent), onStatus func(ChannelStatus)) (func(), error)
	// Ping checks reachability of the remote store.
	Ping(ctx context.Context) error
}
