package realtime

import (
	"testing"

	remoteRepo "slotsync/database/repository/remote"
	"slotsync/models"
	"slotsync/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyInsertIsIdempotent(t *testing.T) {
	a := NewApplier(store.New())

	booking := models.Booking{
		ID: "b1", CustomerID: "c1", Date: "2025-03-01",
		Slots:  []models.Slot{{Time: "09:00", State: models.SlotActive}},
		Status: models.BookingConfirmed,
	}
	ev := remoteRepo.ChangeEvent{
		Type:       remoteRepo.EventInsert,
		Collection: remoteRepo.CollectionBookings,
		ID:         "b1",
		Booking:    &booking,
	}

	a.Apply(ev)
	once := a.Store.Snapshot()
	a.Apply(ev)
	twice := a.Store.Snapshot()

	require.Len(t, once.Bookings, 1)
	assert.Same(t, once, twice, "the duplicate insert leaves the snapshot untouched")
}

func TestApplyEchoAfterLocalFold(t *testing.T) {
	st := store.New()
	st.Dispatch(store.CustomerAdded{Customer: models.Customer{ID: "c1", Name: "Asha"}})

	a := NewApplier(st)
	a.Apply(remoteRepo.ChangeEvent{
		Type:       remoteRepo.EventInsert,
		Collection: remoteRepo.CollectionCustomers,
		ID:         "c1",
		Customer:   &models.Customer{ID: "c1", Name: "Asha"},
	})

	assert.Len(t, st.Snapshot().Customers, 1)
}

func TestApplyUpdateReplacesWholesale(t *testing.T) {
	st := store.New()
	st.Dispatch(store.CustomerAdded{Customer: models.Customer{ID: "c1", Name: "Asha", City: "Pune"}})

	a := NewApplier(st)
	a.Apply(remoteRepo.ChangeEvent{
		Type:       remoteRepo.EventUpdate,
		Collection: remoteRepo.CollectionCustomers,
		ID:         "c1",
		Customer:   &models.Customer{ID: "c1", Name: "Asha R."},
	})

	snap := st.Snapshot()
	require.Len(t, snap.Customers, 1)
	assert.Equal(t, "Asha R.", snap.Customers[0].Name)
	assert.Empty(t, snap.Customers[0].City, "no field-level diffing; the server's copy wins")
}

func TestApplyDelete(t *testing.T) {
	st := store.New()
	st.Dispatch(store.BookingAdded{Booking: models.Booking{ID: "b1", CustomerID: "c1"}})

	a := NewApplier(st)
	a.Apply(remoteRepo.ChangeEvent{
		Type:       remoteRepo.EventDelete,
		Collection: remoteRepo.CollectionBookings,
		ID:         "b1",
	})

	assert.Empty(t, st.Snapshot().Bookings)
}

func TestChannelStatusTransitions(t *testing.T) {
	a := NewApplier(store.New())

	a.SetChannelStatus(remoteRepo.ChannelErrored)
	assert.True(t, a.Store.Snapshot().IsReconnecting)

	a.SetChannelStatus(remoteRepo.ChannelSubscribed)
	assert.False(t, a.Store.Snapshot().IsReconnecting)

	a.SetChannelStatus(remoteRepo.ChannelClosed)
	assert.True(t, a.Store.Snapshot().IsReconnecting)
}
