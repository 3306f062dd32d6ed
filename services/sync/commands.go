package sync

import (
	"context"

	remoteRepo "slotsync/database/repository/remote"
	"slotsync/models"
	"slotsync/store"
	"slotsync/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// CreateCustomer creates a customer record. Counters start at zero; only
// the stats maintainer moves them afterwards.
func (s *DefaultSyncService) CreateCustomer(ctx context.Context, name, mobile, city string) Result {
	logger := utils.GetLogger()
	if s.offline() {
		return failure(remoteRepo.KindOffline)
	}
	if name == "" || mobile == "" {
		logger.Warn("Rejected customer create", zap.String("reason", "missing name or mobile"))
		return failure(remoteRepo.KindValidation)
	}

	created, err := s.Remote.InsertCustomer(ctx, &models.Customer{
		Name:   name,
		Mobile: mobile,
		City:   city,
	})
	if err != nil {
		logger.Error("Failed to create customer", zap.Error(err))
		return failure(remoteRepo.Classify(err))
	}

	s.Store.Dispatch(store.CustomerAdded{Customer: *created})
	return success(created)
}

// UpdateCustomer applies a partial edit to a customer's display attributes.
func (s *DefaultSyncService) UpdateCustomer(ctx context.Context, id string, updates models.CustomerUpdate) Result {
	logger := utils.GetLogger()
	if s.offline() {
		return failure(remoteRepo.KindOffline)
	}

	fields := bson.M{}
	if updates.Name != "" {
		fields["name"] = updates.Name
	}
	if updates.Mobile != "" {
		fields["mobile"] = updates.Mobile
	}
	if updates.City != "" {
		fields["city"] = updates.City
	}
	if id == "" || len(fields) == 0 {
		logger.Warn("Rejected customer update", zap.String("customerID", id), zap.String("reason", "no updatable fields"))
		return failure(remoteRepo.KindValidation)
	}

	updated, err := s.Remote.UpdateCustomer(ctx, id, fields)
	if err != nil {
		logger.Error("Failed to update customer", zap.String("customerID", id), zap.Error(err))
		return failure(remoteRepo.Classify(err))
	}

	s.Store.Dispatch(store.CustomerUpdated{Customer: *updated})
	return success(updated)
}

// DeleteCustomer removes a customer; the remote store cascades to that
// customer's bookings and the local fold mirrors the cascade.
func (s *DefaultSyncService) DeleteCustomer(ctx context.Context, id string) Result {
	logger := utils.GetLogger()
	if s.offline() {
		return failure(remoteRepo.KindOffline)
	}
	if id == "" {
		return failure(remoteRepo.KindValidation)
	}

	if err := s.Remote.DeleteCustomer(ctx, id); err != nil {
		logger.Error("Failed to delete customer", zap.String("customerID", id), zap.Error(err))
		return failure(remoteRepo.Classify(err))
	}

	s.Store.Dispatch(store.CustomerRemoved{ID: id})
	return success(nil)
}

// CreateBooking creates a booking with every requested slot active. A slot
// already held active or completed by another booking on that date is
// rejected before any network call.
func (s *DefaultSyncService) CreateBooking(ctx context.Context, input models.BookingInput) Result {
	logger := utils.GetLogger()
	if s.offline() {
		return failure(remoteRepo.KindOffline)
	}
	if input.CustomerID == "" || input.Date == "" || len(input.SlotTimes) == 0 {
		logger.Warn("Rejected booking create", zap.String("reason", "missing customer, date or slots"))
		return failure(remoteRepo.KindValidation)
	}

	snap := s.Store.Snapshot()
	for _, tm := range input.SlotTimes {
		info := snap.SlotStatus(input.Date, tm, nil)
		if info.Status == models.SlotStatusBooked || info.Status == models.SlotStatusCompleted {
			logger.Warn("Rejected booking create, slot taken",
				zap.String("date", input.Date), zap.String("time", tm))
			return failure(remoteRepo.KindValidation)
		}
	}

	customerName := input.CustomerName
	if customerName == "" {
		if c, ok := snap.CustomerByID(input.CustomerID); ok {
			customerName = c.Name
		}
	}

	slots := make([]models.Slot, 0, len(input.SlotTimes))
	for _, tm := range input.SlotTimes {
		slots = append(slots, models.Slot{Time: tm, State: models.SlotActive})
	}
	booking := &models.Booking{
		CustomerID:   input.CustomerID,
		CustomerName: customerName,
		Date:         input.Date,
		Slots:        slots,
		Status:       models.BookingConfirmed,
	}

	created, err := s.Remote.InsertBooking(ctx, booking)
	if err != nil {
		logger.Error("Failed to create booking", zap.Error(err))
		return failure(remoteRepo.Classify(err))
	}

	s.Store.Dispatch(store.BookingAdded{Booking: *created})
	s.adjustStats(ctx, created.CustomerID, func(customerID string) (*models.Customer, error) {
		return s.Stats.BookingCreated(ctx, customerID)
	})
	return success(created)
}

// CancelSlots transitions the named active slots of a booking to cancelled
// and refreshes the booking's summary status.
func (s *DefaultSyncService) CancelSlots(ctx context.Context, bookingID string, slotTimes []string) Result {
	logger := utils.GetLogger()
	if s.offline() {
		return failure(remoteRepo.KindOffline)
	}
	if bookingID == "" || len(slotTimes) == 0 {
		return failure(remoteRepo.KindValidation)
	}

	booking, res := s.lookupBooking(ctx, bookingID)
	if booking == nil {
		return res
	}

	requested := make(map[string]bool, len(slotTimes))
	for _, tm := range slotTimes {
		requested[tm] = true
	}

	transitioned := 0
	for i := range booking.Slots {
		if requested[booking.Slots[i].Time] && booking.Slots[i].State == models.SlotActive {
			booking.Slots[i].State = models.SlotCancelled
			transitioned++
		}
	}
	if transitioned == 0 {
		logger.Warn("Cancel matched no active slots", zap.String("bookingID", bookingID))
		return failure(remoteRepo.KindValidation)
	}
	booking.RecomputeStatus()

	updated, err := s.Remote.UpdateBooking(ctx, bookingID, bson.M{
		"slots":  booking.Slots,
		"status": booking.Status,
	})
	if err != nil {
		logger.Error("Failed to cancel slots", zap.String("bookingID", bookingID), zap.Error(err))
		return failure(remoteRepo.Classify(err))
	}

	s.Store.Dispatch(store.BookingUpdated{Booking: *updated})
	s.adjustStats(ctx, updated.CustomerID, func(customerID string) (*models.Customer, error) {
		return s.Stats.SlotsCancelled(ctx, customerID)
	})
	return success(updated)
}

// CompleteBooking transitions every remaining active slot to completed.
// Counters are untouched: completion is the expected end of a booking.
func (s *DefaultSyncService) CompleteBooking(ctx context.Context, bookingID string) Result {
	logger := utils.GetLogger()
	if s.offline() {
		return failure(remoteRepo.KindOffline)
	}
	if bookingID == "" {
		return failure(remoteRepo.KindValidation)
	}

	booking, res := s.lookupBooking(ctx, bookingID)
	if booking == nil {
		return res
	}

	transitioned := 0
	for i := range booking.Slots {
		if booking.Slots[i].State == models.SlotActive {
			booking.Slots[i].State = models.SlotCompleted
			transitioned++
		}
	}
	if transitioned == 0 {
		logger.Warn("Complete matched no active slots", zap.String("bookingID", bookingID))
		return failure(remoteRepo.KindValidation)
	}
	booking.RecomputeStatus()

	updated, err := s.Remote.UpdateBooking(ctx, bookingID, bson.M{
		"slots":  booking.Slots,
		"status": booking.Status,
	})
	if err != nil {
		logger.Error("Failed to complete booking", zap.String("bookingID", bookingID), zap.Error(err))
		return failure(remoteRepo.Classify(err))
	}

	s.Store.Dispatch(store.BookingUpdated{Booking: *updated})
	return success(updated)
}

// lookupBooking resolves a booking from the snapshot, reaching to the
// remote store when the local copy is missing. Returns a deep copy safe to
// mutate; on failure the booking is nil and the Result carries the kind.
func (s *DefaultSyncService) lookupBooking(ctx context.Context, bookingID string) (*models.Booking, Result) {
	if b, ok := s.Store.Snapshot().BookingByID(bookingID); ok {
		b.Slots = append([]models.Slot{}, b.Slots...)
		return &b, Result{}
	}
	remote, err := s.Remote.GetBooking(ctx, bookingID)
	if err != nil {
		utils.GetLogger().Error("Booking not found", zap.String("bookingID", bookingID), zap.Error(err))
		return nil, failure(remoteRepo.Classify(err))
	}
	return remote, Result{}
}

// adjustStats runs one counter adjustment and folds the refreshed customer
// record into the store. Counter failures are logged, never propagated: the
// parent command already succeeded.
func (s *DefaultSyncService) adjustStats(ctx context.Context, customerID string, adjust func(string) (*models.Customer, error)) {
	if s.Stats == nil {
		return
	}
	updated, err := adjust(customerID)
	if err != nil {
		utils.GetLogger().Warn("Failed to adjust customer statistics",
			zap.String("customerID", customerID), zap.Error(err))
		return
	}
	s.Store.Dispatch(store.CustomerUpdated{Customer: *updated})
}
