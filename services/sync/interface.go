package sync

import (
	"context"
	"errors"

	"slotsync/cache"
	remoteRepo "slotsync/database/repository/remote"
	"slotsync/models"
	"slotsync/services/stats"
	"slotsync/store"
)

// ErrNoData is returned by Bootstrap when both the remote store and the
// offline cache are unavailable, leaving the store empty. It is a distinct
// condition, not one of the command error kinds.
var ErrNoData = errors.New("no data available")

// Result is the outcome of one command. Commands never propagate errors
// past this surface; every failure resolves to a classified kind.
type Result struct {
	Success bool                 `json:"success"`
	Data    any                  `json:"data,omitempty"`
	Error   remoteRepo.ErrorKind `json:"error,omitempty"`
}

// Service orchestrates bulk load, cache fallback and command dispatch
// against the remote store.
type Service interface {
	// Bootstrap bulk-loads both collections, writing through to the offline
	// cache on success and falling back to it on failure.
	Bootstrap(ctx context.Context) error

	CreateCustomer(ctx context.Context, name, mobile, city string) Result
	UpdateCustomer(ctx context.Context, id string, updates models.CustomerUpdate) Result
	DeleteCustomer(ctx context.Context, id string) Result

	CreateBooking(ctx context.Context, input models.BookingInput) Result
	CancelSlots(ctx context.Context, bookingID string, slotTimes []string) Result
	CompleteBooking(ctx context.Context, bookingID string) Result

	// SetConnectivity records a connectivity transition. It never triggers a
	// reload by itself; reloads are explicit.
	SetConnectivity(connected bool)
}

// DefaultSyncService is the production implementation.
type DefaultSyncService struct {
	Remote remoteRepo.SyncClient
	Cache  cache.SnapshotCache
	Store  *store.Store
	Stats  stats.Maintainer
}

func success(data any) Result {
	return Result{Success: true, Data: data}
}

func failure(kind remoteRepo.ErrorKind) Result {
	return Result{Success: false, Error: kind}
}

// offline reports whether mutating commands must be rejected without a
// network attempt. Cache-backed mode counts as offline: the snapshot may be
// stale and writes against it are not auditable.
func (s *DefaultSyncService) offline() bool {
	snap := s.Store.Snapshot()
	return snap.IsOffline || snap.IsUsingCache
}

// SetConnectivity toggles the offline flag on the store.
func (s *DefaultSyncService) SetConnectivity(connected bool) {
	s.Store.Dispatch(store.SetNetworkStatus{Offline: !connected})
}
