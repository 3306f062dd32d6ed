package models

// SlotStatus is the externally visible status of a calendar (date, time)
// pair, derived from the booking collection plus the caller's in-progress
// selection.
type SlotStatus string

const (
	SlotStatusFree      SlotStatus = "free"
	SlotStatusSelected  SlotStatus = "selected"
	SlotStatusBooked    SlotStatus = "booked"
	SlotStatusCancelled SlotStatus = "cancelled"
	SlotStatusCompleted SlotStatus = "completed"
)

// SlotStatusInfo pairs a derived slot status with the booking that holds the
// slot, when one does (booked and completed statuses).
type SlotStatusInfo struct {
	Status  SlotStatus `json:"status"`
	Booking *Booking   `json:"booking,omitempty"`
}

// DeriveSlotStatus resolves the status of one (date, time) pair. The checks
// run in strict priority order; a slot that was cancelled under one booking
// and later re-booked under another must resolve to booked, which is why
// every booking for the date is scanned rather than the first match taken.
//
//  1. In the caller's pending selection -> selected.
//  2. Any booking holds the slot completed -> completed.
//  3. Any booking holds the slot active -> booked.
//  4. Any booking holds the slot cancelled -> cancelled (re-bookable).
//  5. Otherwise -> free.
func DeriveSlotStatus(date, tm string, bookings []Booking, pendingSelection map[string]bool) SlotStatusInfo {
	if pendingSelection[tm] {
		return SlotStatusInfo{Status: SlotStatusSelected}
	}

	var cancelledSeen bool
	var active *Booking
	for i := range bookings {
		b := &bookings[i]
		if b.Date != date {
			continue
		}
		slot := b.SlotAt(tm)
		if slot == nil {
			continue
		}
		switch slot.State {
		case SlotCompleted:
			return SlotStatusInfo{Status: SlotStatusCompleted, Booking: b}
		case SlotActive:
			active = b
		case SlotCancelled:
			cancelledSeen = true
		}
	}

	if active != nil {
		return SlotStatusInfo{Status: SlotStatusBooked, Booking: active}
	}
	if cancelledSeen {
		return SlotStatusInfo{Status: SlotStatusCancelled}
	}
	return SlotStatusInfo{Status: SlotStatusFree}
}
