package stats

import (
	"context"
	"testing"

	remoteRepo "slotsync/database/repository/remote"
	"slotsync/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

// counterRemote stubs just the read-modify-write surface the maintainer
// touches.
type counterRemote struct {
	remoteRepo.SyncClient
	customer models.Customer
}

func (f *counterRemote) GetCustomer(ctx context.Context, id string) (*models.Customer, error) {
	c := f.customer
	return &c, nil
}

func (f *counterRemote) UpdateCustomer(ctx context.Context, id string, fields bson.M) (*models.Customer, error) {
	if v, ok := fields["total_bookings"].(int); ok {
		f.customer.TotalBookings = v
	}
	if v, ok := fields["total_cancellations"].(int); ok {
		f.customer.TotalCancellations = v
	}
	c := f.customer
	return &c, nil
}

func TestBookingCreatedIncrements(t *testing.T) {
	remote := &counterRemote{customer: models.Customer{ID: "c1"}}
	m := &DefaultMaintainer{Remote: remote}

	updated, err := m.BookingCreated(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, 1, updated.TotalBookings)

	updated, err = m.BookingCreated(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, 2, updated.TotalBookings)
}

func TestSlotsCancelledAdjustsBothCounters(t *testing.T) {
	remote := &counterRemote{customer: models.Customer{ID: "c1", TotalBookings: 2}}
	m := &DefaultMaintainer{Remote: remote}

	updated, err := m.SlotsCancelled(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, 1, updated.TotalBookings)
	assert.Equal(t, 1, updated.TotalCancellations)
}

func TestCounterFloor(t *testing.T) {
	remote := &counterRemote{customer: models.Customer{ID: "c1"}}
	m := &DefaultMaintainer{Remote: remote}

	for i := 0; i < 3; i++ {
		updated, err := m.SlotsCancelled(context.Background(), "c1")
		require.NoError(t, err)
		assert.Equal(t, 0, updated.TotalBookings, "the booking counter never goes negative")
	}
	assert.Equal(t, 3, remote.customer.TotalCancellations)
}
