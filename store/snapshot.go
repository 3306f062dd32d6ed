package store

import "slotsync/models"

// Snapshot is one fully-formed, immutable view of the synchronized state.
// Reducers build a fresh Snapshot for every mutation; readers hold a pointer
// and query it without coordination.
type Snapshot struct {
	Customers      []models.Customer
	Bookings       []models.Booking
	IsOffline      bool
	IsReconnecting bool
	IsUsingCache   bool
}

// Action is a tagged state transition applied through Reduce.
type Action interface {
	isAction()
}

// LoadData replaces both collections with a fresh remote snapshot.
type LoadData struct {
	Customers []models.Customer
	Bookings  []models.Booking
}

// LoadCachedData replaces both collections with the offline cache snapshot
// and marks the store as cache-backed.
type LoadCachedData struct {
	Customers []models.Customer
	Bookings  []models.Booking
}

// SetNetworkStatus toggles the offline flag.
type SetNetworkStatus struct {
	Offline bool
}

// SetReconnecting toggles the realtime channel reconnect flag.
type SetReconnecting struct {
	Reconnecting bool
}

// CustomerAdded inserts a customer unless one with the same id already
// exists; a server echo of a locally folded write is a no-op.
type CustomerAdded struct {
	Customer models.Customer
}

// CustomerUpdated replaces the matching customer wholesale. When no
// customer with that id exists the record is appended, so an authoritative
// record fetched past the local snapshot still lands in the store.
type CustomerUpdated struct {
	Customer models.Customer
}

// CustomerRemoved deletes a customer by id along with that customer's
// bookings, mirroring the remote cascade.
type CustomerRemoved struct {
	ID string
}

// BookingAdded inserts a booking unless one with the same id already exists.
type BookingAdded struct {
	Booking models.Booking
}

// BookingUpdated replaces the matching booking wholesale, appending the
// record when no booking with that id exists.
type BookingUpdated struct {
	Booking models.Booking
}

// BookingRemoved deletes a booking by id.
type BookingRemoved struct {
	ID string
}

func (LoadData) isAction()         {}
func (LoadCachedData) isAction()   {}
func (SetNetworkStatus) isAction() {}
func (SetReconnecting) isAction()  {}
func (CustomerAdded) isAction()    {}
func (CustomerUpdated) isAction()  {}
func (CustomerRemoved) isAction()  {}
func (BookingAdded) isAction()     {}
func (BookingUpdated) isAction()   {}
func (BookingRemoved) isAction()   {}

// Reduce applies one action to a snapshot and returns the resulting
// snapshot. The input is never mutated.
func Reduce(s *Snapshot, a Action) *Snapshot {
	switch act := a.(type) {
	case LoadData:
		next := *s
		next.Customers = act.Customers
		next.Bookings = act.Bookings
		next.IsUsingCache = false
		return &next

	case LoadCachedData:
		next := *s
		next.Customers = act.Customers
		next.Bookings = act.Bookings
		next.IsUsingCache = true
		return &next

	case SetNetworkStatus:
		next := *s
		next.IsOffline = act.Offline
		return &next

	case SetReconnecting:
		next := *s
		next.IsReconnecting = act.Reconnecting
		return &next

	case CustomerAdded:
		for i := range s.Customers {
			if s.Customers[i].ID == act.Customer.ID {
				return s
			}
		}
		next := *s
		next.Customers = append(append([]models.Customer{}, s.Customers...), act.Customer)
		return &next

	case CustomerUpdated:
		next := *s
		next.Customers = make([]models.Customer, len(s.Customers))
		replaced := false
		for i := range s.Customers {
			if s.Customers[i].ID == act.Customer.ID {
				next.Customers[i] = act.Customer
				replaced = true
			} else {
				next.Customers[i] = s.Customers[i]
			}
		}
		if !replaced {
			next.Customers = append(next.Customers, act.Customer)
		}
		return &next

	case CustomerRemoved:
		next := *s
		next.Customers = make([]models.Customer, 0, len(s.Customers))
		for _, c := range s.Customers {
			if c.ID != act.ID {
				next.Customers = append(next.Customers, c)
			}
		}
		next.Bookings = make([]models.Booking, 0, len(s.Bookings))
		for _, b := range s.Bookings {
			if b.CustomerID != act.ID {
				next.Bookings = append(next.Bookings, b)
			}
		}
		return &next

	case BookingAdded:
		for i := range s.Bookings {
			if s.Bookings[i].ID == act.Booking.ID {
				return s
			}
		}
		next := *s
		next.Bookings = append(append([]models.Booking{}, s.Bookings...), act.Booking)
		return &next

	case BookingUpdated:
		next := *s
		next.Bookings = make([]models.Booking, len(s.Bookings))
		replaced := false
		for i := range s.Bookings {
			if s.Bookings[i].ID == act.Booking.ID {
				next.Bookings[i] = act.Booking
				replaced = true
			} else {
				next.Bookings[i] = s.Bookings[i]
			}
		}
		if !replaced {
			next.Bookings = append(next.Bookings, act.Booking)
		}
		return &next

	case BookingRemoved:
		next := *s
		next.Bookings = make([]models.Booking, 0, len(s.Bookings))
		for _, b := range s.Bookings {
			if b.ID != act.ID {
				next.Bookings = append(next.Bookings, b)
			}
		}
		return &next
	}

	return s
}
