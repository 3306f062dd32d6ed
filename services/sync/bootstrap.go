package sync

import (
	"context"
	"fmt"

	remoteRepo "slotsync/database/repository/remote"
	"slotsync/models"
	"slotsync/store"
	"slotsync/utils"

	"go.uber.org/zap"
)

// Bootstrap performs the initial bulk load of both collections. On success
// the store is populated and a copy is written through to the offline
// cache. On failure the last cached snapshot is loaded instead, with the
// store flagged as cache-backed; if no cache exists either, the store is
// left empty and ErrNoData is surfaced.
func (s *DefaultSyncService) Bootstrap(ctx context.Context) error {
	logger := utils.GetLogger()

	customers, err := s.Remote.FetchCustomers(ctx)
	var bookings []models.Booking
	if err == nil {
		bookings, err = s.Remote.FetchBookings(ctx)
	}
	if err == nil {
		s.Store.Dispatch(store.LoadData{Customers: customers, Bookings: bookings})
		s.writeThrough(ctx, customers, bookings)
		logger.Info("Bootstrap complete",
			zap.Int("customers", len(customers)),
			zap.Int("bookings", len(bookings)))
		return nil
	}

	logger.Warn("Bulk load failed, falling back to cache", zap.Error(err))

	var cachedCustomers []models.Customer
	var cachedBookings []models.Booking
	customersOK, cacheErr := s.Cache.Load(ctx, remoteRepo.CollectionCustomers, &cachedCustomers)
	if cacheErr != nil {
		logger.Error("Cache read failed", zap.Error(cacheErr))
		return fmt.Errorf("%w: %v", ErrNoData, err)
	}
	bookingsOK, cacheErr := s.Cache.Load(ctx, remoteRepo.CollectionBookings, &cachedBookings)
	if cacheErr != nil {
		logger.Error("Cache read failed", zap.Error(cacheErr))
		return fmt.Errorf("%w: %v", ErrNoData, err)
	}
	if !customersOK || !bookingsOK {
		return fmt.Errorf("%w: %v", ErrNoData, err)
	}

	s.Store.Dispatch(store.LoadCachedData{Customers: cachedCustomers, Bookings: cachedBookings})
	logger.Info("Loaded cached snapshot",
		zap.Int("customers", len(cachedCustomers)),
		zap.Int("bookings", len(cachedBookings)))
	return nil
}

// writeThrough replaces the cached snapshots with the fresh remote data. A
// failed cache write only costs the next offline fallback, so it is logged
// and swallowed.
func (s *DefaultSyncService) writeThrough(ctx context.Context, customers []models.Customer, bookings []models.Booking) {
	logger := utils.GetLogger()
	if err := s.Cache.Save(ctx, remoteRepo.CollectionCustomers, customers); err != nil {
		logger.Warn("Failed to cache customers snapshot", zap.Error(err))
	}
	if err := s.Cache.Save(ctx, remoteRepo.CollectionBookings, bookings); err != nil {
		logger.Warn("Failed to cache bookings snapshot", zap.Error(err))
	}
}
