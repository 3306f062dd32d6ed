package models

import "time"

// SlotState is the lifecycle state of a single slot within a booking.
type SlotState string

const (
	SlotActive    SlotState = "active"
	SlotCancelled SlotState = "cancelled"
	SlotCompleted SlotState = "completed"
)

// Slot is a single bookable hour on a booking's date.
type Slot struct {
	Time  string    `bson:"time" json:"time"`   // Hour-of-day label, e.g. "09:00"
	State SlotState `bson:"state" json:"state"` // active, cancelled or completed
}

// BookingStatus summarizes a booking's slot states.
type BookingStatus string

const (
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

// Booking represents a set of time slots held by one customer on one date.
type Booking struct {
	ID           string        `bson:"id" json:"id"`                      // Unique booking identifier (UUID)
	CustomerID   string        `bson:"customer_id" json:"customerId"`     // Owning customer; lookup only, never cascaded on writes
	CustomerName string        `bson:"customer_name" json:"customerName"` // Denormalized for display when the customer record is absent
	Date         string        `bson:"date" json:"date"`                  // Calendar date in "YYYY-MM-DD" format
	Slots        []Slot        `bson:"slots" json:"slots"`                // Ordered slot records, each with its own state
	Status       BookingStatus `bson:"status" json:"status"`              // Cached summary; always recomputable from Slots
	CreatedAt    time.Time     `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time     `bson:"updated_at" json:"updatedAt"`
}

// BookingInput is the payload for creating a new booking. Every requested
// slot starts out active.
type BookingInput struct {
	CustomerID   string   `json:"customerId" binding:"required"`
	CustomerName string   `json:"customerName"`
	Date         string   `json:"date" binding:"required"`
	SlotTimes    []string `json:"slotTimes" binding:"required"`
}

// DeriveStatus computes the booking summary from its slot states: confirmed
// while at least one slot is active, completed when every remaining slot is
// completed (cancelled slots do not block a completed verdict), cancelled
// when all slots are cancelled.
func (b *Booking) DeriveStatus() BookingStatus {
	if len(b.Slots) == 0 {
		return BookingConfirmed
	}
	completed := false
	for _, s := range b.Slots {
		switch s.State {
		case SlotActive:
			return BookingConfirmed
		case SlotCompleted:
			completed = true
		}
	}
	if completed {
		return BookingCompleted
	}
	return BookingCancelled
}

// RecomputeStatus refreshes the cached Status field from the slot states.
// Must be called after every slot mutation.
func (b *Booking) RecomputeStatus() {
	b.Status = b.DeriveStatus()
}

// SlotAt returns the slot with the given time label, or nil.
func (b *Booking) SlotAt(tm string) *Slot {
	for i := range b.Slots {
		if b.Slots[i].Time == tm {
			return &b.Slots[i]
		}
	}
	return nil
}

// ActiveSlotTimes returns the time labels of all active slots, in order.
func (b *Booking) ActiveSlotTimes() []string {
	var times []string
	for _, s := range b.Slots {
		if s.State == SlotActive {
			times = append(times, s.Time)
		}
	}
	return times
}
