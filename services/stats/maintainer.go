package stats

import (
	"context"
	"fmt"

	remoteRepo "slotsync/database/repository/remote"
	"slotsync/models"

	"go.mongodb.org/mongo-driver/bson"
)

// Maintainer keeps customer aggregate counters consistent with booking
// lifecycle transitions. It is driven only by the sync coordinator, never
// by the realtime applier, so server echoes of local writes cannot double
// count. The remote store offers no atomic increment, so every adjustment
// is a read-modify-write and the caller treats failures as best-effort.
type Maintainer interface {
	// BookingCreated adds one to the customer's booking counter and returns
	// the refreshed record.
	BookingCreated(ctx context.Context, customerID string) (*models.Customer, error)
	// SlotsCancelled subtracts one booking (floored at zero) and adds one
	// cancellation, returning the refreshed record.
	SlotsCancelled(ctx context.Context, customerID string) (*models.Customer, error)
}

// DefaultMaintainer is the production implementation.
type DefaultMaintainer struct {
	Remote remoteRepo.SyncClient
}

func (m *DefaultMaintainer) BookingCreated(ctx context.Context, customerID string) (*models.Customer, error) {
	customer, err := m.Remote.GetCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to read booking counter for customer %s: %w", customerID, err)
	}

	updated, err := m.Remote.UpdateCustomer(ctx, customerID, bson.M{
		"total_bookings": customer.TotalBookings + 1,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to write booking counter for customer %s: %w", customerID, err)
	}
	return updated, nil
}

func (m *DefaultMaintainer) SlotsCancelled(ctx context.Context, customerID string) (*models.Customer, error) {
	customer, err := m.Remote.GetCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to read counters for customer %s: %w", customerID, err)
	}

	updated, err := m.Remote.UpdateCustomer(ctx, customerID, bson.M{
		"total_bookings":      max(0, customer.TotalBookings-1),
		"total_cancellations": customer.TotalCancellations + 1,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to write counters for customer %s: %w", customerID, err)
	}
	return updated, nil
}
