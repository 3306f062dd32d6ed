package realtime

import (
	remoteRepo "slotsync/database/repository/remote"
	"slotsync/store"
	"slotsync/utils"

	"go.uber.org/zap"
)

// Applier folds live change notifications into the state store. Inserts are
// idempotent by id because the server echo of a locally folded write
// arrives after the fold; updates replace the record wholesale, the
// server's copy always wins; deletes remove by id and leave derived views
// to recompute lazily on the next query.
type Applier struct {
	Store *store.Store
}

func NewApplier(st *store.Store) *Applier {
	return &Applier{Store: st}
}

// Apply folds one change event. Safe to call directly as the subscription
// callback; every mutation routes through the store's dispatch.
func (a *Applier) Apply(ev remoteRepo.ChangeEvent) {
	logger := utils.GetLogger()

	switch ev.Collection {
	case remoteRepo.CollectionCustomers:
		switch ev.Type {
		case remoteRepo.EventInsert:
			if ev.Customer != nil {
				a.Store.Dispatch(store.CustomerAdded{Customer: *ev.Customer})
			}
		case remoteRepo.EventUpdate:
			if ev.Customer != nil {
				a.Store.Dispatch(store.CustomerUpdated{Customer: *ev.Customer})
			}
		case remoteRepo.EventDelete:
			a.Store.Dispatch(store.CustomerRemoved{ID: ev.ID})
		}

	case remoteRepo.CollectionBookings:
		switch ev.Type {
		case remoteRepo.EventInsert:
			if ev.Booking != nil {
				a.Store.Dispatch(store.BookingAdded{Booking: *ev.Booking})
			}
		case remoteRepo.EventUpdate:
			if ev.Booking != nil {
				a.Store.Dispatch(store.BookingUpdated{Booking: *ev.Booking})
			}
		case remoteRepo.EventDelete:
			a.Store.Dispatch(store.BookingRemoved{ID: ev.ID})
		}

	default:
		logger.Debug("Ignoring change event for unknown collection", zap.String("collection", ev.Collection))
	}
}

// SetChannelStatus mirrors live-channel transitions onto the reconnecting
// flag. No buffering or replay happens here; a dropped channel is resolved
// only by an explicit bootstrap.
func (a *Applier) SetChannelStatus(status remoteRepo.ChannelStatus) {
	logger := utils.GetLogger()

	switch status {
	case remoteRepo.ChannelSubscribed:
		a.Store.Dispatch(store.SetReconnecting{Reconnecting: false})
	case remoteRepo.ChannelClosed, remoteRepo.ChannelErrored:
		logger.Warn("Realtime channel lost", zap.String("status", string(status)))
		a.Store.Dispatch(store.SetReconnecting{Reconnecting: true})
	}
}
