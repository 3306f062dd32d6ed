package sync

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	remoteRepo "slotsync/database/repository/remote"
	"slotsync/models"
	"slotsync/services/stats"
	"slotsync/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

var errRemoteDown = errors.New("remote unreachable")

// fakeRemote is an in-memory SyncClient. With down set, every operation
// fails the way an unreachable store would.
type fakeRemote struct {
	customers map[string]models.Customer
	bookings  map[string]models.Booking
	down      bool
	calls     int
	nextID    int
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{
		customers: make(map[string]models.Customer),
		bookings:  make(map[string]models.Booking),
	}
}

func (f *fakeRemote) id() string {
	f.nextID++
	return string(rune('a' + f.nextID - 1))
}

func (f *fakeRemote) guard() error {
	f.calls++
	if f.down {
		return errRemoteDown
	}
	return nil
}

func (f *fakeRemote) FetchCustomers(ctx context.Context) ([]models.Customer, error) {
	if err := f.guard(); err != nil {
		return nil, err
	}
	out := make([]models.Customer, 0, len(f.customers))
	for _, c := range f.customers {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeRemote) FetchBookings(ctx context.Context) ([]models.Booking, error) {
	if err := f.guard(); err != nil {
		return nil, err
	}
	out := make([]models.Booking, 0, len(f.bookings))
	for _, b := range f.bookings {
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeRemote) GetCustomer(ctx context.Context, id string) (*models.Customer, error) {
	if err := f.guard(); err != nil {
		return nil, err
	}
	c, ok := f.customers[id]
	if !ok {
		return nil, remoteRepo.ErrNotFound
	}
	return &c, nil
}

func (f *fakeRemote) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	if err := f.guard(); err != nil {
		return nil, err
	}
	b, ok := f.bookings[id]
	if !ok {
		return nil, remoteRepo.ErrNotFound
	}
	b.Slots = append([]models.Slot{}, b.Slots...)
	return &b, nil
}

func (f *fakeRemote) InsertCustomer(ctx context.Context, c *models.Customer) (*models.Customer, error) {
	if err := f.guard(); err != nil {
		return nil, err
	}
	if c.ID == "" {
		c.ID = f.id()
	}
	f.customers[c.ID] = *c
	return c, nil
}

func (f *fakeRemote) UpdateCustomer(ctx context.Context, id string, fields bson.M) (*models.Customer, error) {
	if err := f.guard(); err != nil {
		return nil, err
	}
	c, ok := f.customers[id]
	if !ok {
		return nil, remoteRepo.ErrNotFound
	}
	if v, ok := fields["name"].(string); ok {
		c.Name = v
	}
	if v, ok := fields["mobile"].(string); ok {
		c.Mobile = v
	}
	if v, ok := fields["city"].(string); ok {
		c.City = v
	}
	if v, ok := fields["total_bookings"].(int); ok {
		c.TotalBookings = v
	}
	if v, ok := fields["total_cancellations"].(int); ok {
		c.TotalCancellations = v
	}
	f.customers[id] = c
	return &c, nil
}

func (f *fakeRemote) DeleteCustomer(ctx context.Context, id string) error {
	if err := f.guard(); err != nil {
		return err
	}
	if _, ok := f.customers[id]; !ok {
		return remoteRepo.ErrNotFound
	}
	delete(f.customers, id)
	for bid, b := range f.bookings {
		if b.CustomerID == id {
			delete(f.bookings, bid)
		}
	}
	return nil
}

func (f *fakeRemote) InsertBooking(ctx context.Context, b *models.Booking) (*models.Booking, error) {
	if err := f.guard(); err != nil {
		return nil, err
	}
	if b.ID == "" {
		b.ID = f.id()
	}
	f.bookings[b.ID] = *b
	return b, nil
}

func (f *fakeRemote) UpdateBooking(ctx context.Context, id string, fields bson.M) (*models.Booking, error) {
	if err := f.guard(); err != nil {
		return nil, err
	}
	b, ok := f.bookings[id]
	if !ok {
		return nil, remoteRepo.ErrNotFound
	}
	if v, ok := fields["slots"].([]models.Slot); ok {
		b.Slots = append([]models.Slot{}, v...)
	}
	if v, ok := fields["status"].(models.BookingStatus); ok {
		b.Status = v
	}
	f.bookings[id] = b
	return &b, nil
}

func (f *fakeRemote) DeleteBooking(ctx context.Context, id string) error {
	if err := f.guard(); err != nil {
		return err
	}
	delete(f.bookings, id)
	return nil
}

func (f *fakeRemote) Subscribe(ctx context.Context, onEvent func(remoteRepo.ChangeEvent), onStatus func(remoteRepo.ChannelStatus)) (func(), error) {
	return func() {}, nil
}

func (f *fakeRemote) Ping(ctx context.Context) error {
	if f.down {
		return errRemoteDown
	}
	return nil
}

// fakeCache is an in-memory SnapshotCache.
type fakeCache struct {
	blobs map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{blobs: make(map[string][]byte)}
}

func (f *fakeCache) Save(ctx context.Context, collection string, records any) error {
	data, err := json.Marshal(records)
	if err != nil {
		return err
	}
	f.blobs[collection] = data
	return nil
}

func (f *fakeCache) Load(ctx context.Context, collection string, out any) (bool, error) {
	data, ok := f.blobs[collection]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, out)
}

func newService(remote *fakeRemote, cch *fakeCache) *DefaultSyncService {
	st := store.New()
	return &DefaultSyncService{
		Remote: remote,
		Cache:  cch,
		Store:  st,
		Stats:  &stats.DefaultMaintainer{Remote: remote},
	}
}

func TestBootstrapWritesThrough(t *testing.T) {
	remote := newFakeRemote()
	remote.customers["c1"] = models.Customer{ID: "c1", Name: "Asha"}
	cch := newFakeCache()
	svc := newService(remote, cch)

	require.NoError(t, svc.Bootstrap(context.Background()))

	snap := svc.Store.Snapshot()
	assert.Len(t, snap.Customers, 1)
	assert.False(t, snap.IsUsingCache)
	assert.Contains(t, cch.blobs, remoteRepo.CollectionCustomers)
	assert.Contains(t, cch.blobs, remoteRepo.CollectionBookings)
}

func TestBootstrapFallsBackToCache(t *testing.T) {
	remote := newFakeRemote()
	remote.down = true
	cch := newFakeCache()
	require.NoError(t, cch.Save(context.Background(), remoteRepo.CollectionCustomers,
		[]models.Customer{{ID: "c1", Name: "Asha"}}))
	require.NoError(t, cch.Save(context.Background(), remoteRepo.CollectionBookings, []models.Booking{}))

	svc := newService(remote, cch)
	require.NoError(t, svc.Bootstrap(context.Background()))

	snap := svc.Store.Snapshot()
	assert.Len(t, snap.Customers, 1)
	assert.True(t, snap.IsUsingCache)
}

func TestBootstrapNoDataAvailable(t *testing.T) {
	remote := newFakeRemote()
	remote.down = true
	svc := newService(remote, newFakeCache())

	err := svc.Bootstrap(context.Background())
	require.ErrorIs(t, err, ErrNoData)

	snap := svc.Store.Snapshot()
	assert.Empty(t, snap.Customers)
	assert.Empty(t, snap.Bookings)
}

func TestOfflineFailFast(t *testing.T) {
	remote := newFakeRemote()
	svc := newService(remote, newFakeCache())
	svc.SetConnectivity(false)

	res := svc.CreateBooking(context.Background(), models.BookingInput{
		CustomerID: "c1", Date: "2025-03-01", SlotTimes: []string{"09:00"},
	})

	assert.False(t, res.Success)
	assert.Equal(t, remoteRepo.KindOffline, res.Error)
	assert.Zero(t, remote.calls, "no network call is attempted")
}

func TestCacheModeRejectsCommands(t *testing.T) {
	remote := newFakeRemote()
	svc := newService(remote, newFakeCache())
	svc.Store.Dispatch(store.LoadCachedData{})

	res := svc.CreateCustomer(context.Background(), "Asha", "555-0101", "Pune")
	assert.Equal(t, remoteRepo.KindOffline, res.Error)
	assert.Zero(t, remote.calls)
}

func TestCreateCustomerValidation(t *testing.T) {
	remote := newFakeRemote()
	svc := newService(remote, newFakeCache())

	res := svc.CreateCustomer(context.Background(), "", "555-0101", "Pune")
	assert.Equal(t, remoteRepo.KindValidation, res.Error)
	assert.Zero(t, remote.calls)
}

func TestCommandFailureLeavesStoreUnchanged(t *testing.T) {
	remote := newFakeRemote()
	svc := newService(remote, newFakeCache())
	require.NoError(t, svc.Bootstrap(context.Background()))

	remote.down = true
	res := svc.CreateCustomer(context.Background(), "Asha", "555-0101", "Pune")

	assert.False(t, res.Success)
	assert.Equal(t, remoteRepo.KindUnknown, res.Error)
	assert.Empty(t, svc.Store.Snapshot().Customers, "no partial or optimistic mutation is retained")
}

func TestCreateBookingRejectsTakenSlot(t *testing.T) {
	remote := newFakeRemote()
	svc := newService(remote, newFakeCache())
	require.NoError(t, svc.Bootstrap(context.Background()))

	created := svc.CreateCustomer(context.Background(), "Asha", "555-0101", "Pune")
	require.True(t, created.Success)
	customer := created.Data.(*models.Customer)

	first := svc.CreateBooking(context.Background(), models.BookingInput{
		CustomerID: customer.ID, Date: "2025-03-01", SlotTimes: []string{"09:00"},
	})
	require.True(t, first.Success)

	second := svc.CreateBooking(context.Background(), models.BookingInput{
		CustomerID: customer.ID, Date: "2025-03-01", SlotTimes: []string{"09:00"},
	})
	assert.Equal(t, remoteRepo.KindValidation, second.Error)
}

func TestDeleteCustomerCascades(t *testing.T) {
	remote := newFakeRemote()
	svc := newService(remote, newFakeCache())
	require.NoError(t, svc.Bootstrap(context.Background()))

	created := svc.CreateCustomer(context.Background(), "Asha", "555-0101", "Pune")
	require.True(t, created.Success)
	customer := created.Data.(*models.Customer)
	booked := svc.CreateBooking(context.Background(), models.BookingInput{
		CustomerID: customer.ID, Date: "2025-03-01", SlotTimes: []string{"09:00"},
	})
	require.True(t, booked.Success)

	res := svc.DeleteCustomer(context.Background(), customer.ID)
	require.True(t, res.Success)

	snap := svc.Store.Snapshot()
	assert.Empty(t, snap.Customers)
	assert.Empty(t, snap.Bookings)
	assert.Empty(t, remote.bookings)
}

// The end-to-end scenario: book two evening slots, cancel one, complete the
// rest, checking counters, booking status and slot statuses at every step.
func TestBookingLifecycleScenario(t *testing.T) {
	ctx := context.Background()
	remote := newFakeRemote()
	svc := newService(remote, newFakeCache())
	require.NoError(t, svc.Bootstrap(ctx))

	created := svc.CreateCustomer(ctx, "Asha", "555-0101", "Pune")
	require.True(t, created.Success)
	asha := created.Data.(*models.Customer)

	res := svc.CreateBooking(ctx, models.BookingInput{
		CustomerID: asha.ID, Date: "2025-03-01", SlotTimes: []string{"18:00", "19:00"},
	})
	require.True(t, res.Success)
	booking := res.Data.(*models.Booking)

	snap := svc.Store.Snapshot()
	current, ok := snap.CustomerByID(asha.ID)
	require.True(t, ok)
	assert.Equal(t, 1, current.TotalBookings)
	assert.Equal(t, 0, current.TotalCancellations)
	assert.Equal(t, models.SlotStatusBooked, snap.SlotStatus("2025-03-01", "18:00", nil).Status)

	res = svc.CancelSlots(ctx, booking.ID, []string{"18:00"})
	require.True(t, res.Success)

	snap = svc.Store.Snapshot()
	current, _ = snap.CustomerByID(asha.ID)
	assert.Equal(t, 0, current.TotalBookings)
	assert.Equal(t, 1, current.TotalCancellations)
	got, ok := snap.BookingByID(booking.ID)
	require.True(t, ok)
	assert.Equal(t, models.BookingConfirmed, got.Status, "one slot remains active")
	assert.Equal(t, models.SlotStatusCancelled, snap.SlotStatus("2025-03-01", "18:00", nil).Status)
	assert.Equal(t, models.SlotStatusBooked, snap.SlotStatus("2025-03-01", "19:00", nil).Status)

	res = svc.CompleteBooking(ctx, booking.ID)
	require.True(t, res.Success)

	snap = svc.Store.Snapshot()
	got, _ = snap.BookingByID(booking.ID)
	assert.Equal(t, models.BookingCompleted, got.Status)
	assert.Equal(t, models.SlotStatusCompleted, snap.SlotStatus("2025-03-01", "19:00", nil).Status)
	current, _ = snap.CustomerByID(asha.ID)
	assert.Equal(t, 0, current.TotalBookings, "completion does not move counters")
	assert.Equal(t, 1, current.TotalCancellations)
}

func TestCancelMatchingNoActiveSlots(t *testing.T) {
	ctx := context.Background()
	remote := newFakeRemote()
	svc := newService(remote, newFakeCache())
	require.NoError(t, svc.Bootstrap(ctx))

	created := svc.CreateCustomer(ctx, "Asha", "555-0101", "Pune")
	require.True(t, created.Success)
	asha := created.Data.(*models.Customer)
	res := svc.CreateBooking(ctx, models.BookingInput{
		CustomerID: asha.ID, Date: "2025-03-01", SlotTimes: []string{"18:00"},
	})
	require.True(t, res.Success)
	booking := res.Data.(*models.Booking)

	require.True(t, svc.CancelSlots(ctx, booking.ID, []string{"18:00"}).Success)

	repeat := svc.CancelSlots(ctx, booking.ID, []string{"18:00"})
	assert.Equal(t, remoteRepo.KindValidation, repeat.Error, "an already cancelled slot cannot transition again")

	current, _ := svc.Store.Snapshot().CustomerByID(asha.ID)
	assert.Equal(t, 1, current.TotalCancellations, "no double counting")
}

func TestCancelSlotsFoldsRemoteFetchedBooking(t *testing.T) {
	ctx := context.Background()
	remote := newFakeRemote()
	remote.customers["c1"] = models.Customer{ID: "c1", Name: "Asha"}
	b := models.Booking{
		ID: "b1", CustomerID: "c1", CustomerName: "Asha", Date: "2025-03-01",
		Slots: []models.Slot{{Time: "09:00", State: models.SlotActive}},
	}
	b.RecomputeStatus()
	remote.bookings["b1"] = b

	// No bootstrap: the booking is unknown to the local snapshot and gets
	// resolved through the remote fallback.
	svc := newService(remote, newFakeCache())
	res := svc.CancelSlots(ctx, "b1", []string{"09:00"})
	require.True(t, res.Success)

	snap := svc.Store.Snapshot()
	got, ok := snap.BookingByID("b1")
	require.True(t, ok, "the authoritative record lands in the store")
	assert.Equal(t, models.BookingCancelled, got.Status)
	asha, ok := snap.CustomerByID("c1")
	require.True(t, ok, "the refreshed customer lands in the store")
	assert.Equal(t, 1, asha.TotalCancellations)
}

func TestStatsFailureDoesNotFailCommand(t *testing.T) {
	ctx := context.Background()
	remote := newFakeRemote()
	svc := newService(remote, newFakeCache())
	require.NoError(t, svc.Bootstrap(ctx))

	created := svc.CreateCustomer(ctx, "Asha", "555-0101", "Pune")
	require.True(t, created.Success)
	asha := created.Data.(*models.Customer)

	// Counter read-modify-write hits a customer the remote no longer has.
	delete(remote.customers, asha.ID)

	res := svc.CreateBooking(ctx, models.BookingInput{
		CustomerID: asha.ID, Date: "2025-03-01", SlotTimes: []string{"09:00"},
	})
	assert.True(t, res.Success, "the booking itself already succeeded")
}
