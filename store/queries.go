package store

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"slotsync/models"
)

// RosterEntry is one card in the same-day operational roster: a single
// active slot with the details needed to display and cancel it.
type RosterEntry struct {
	ID             string               `json:"id"`        // "<bookingID>-<slotIndex>", unique per card
	BookingID      string               `json:"bookingId"` // Original booking, for cancellation
	CustomerName   string               `json:"customerName"`
	CustomerMobile string               `json:"customerMobile"`
	CustomerCity   string               `json:"customerCity"`
	Time           string               `json:"time"`
	TimeRange      string               `json:"timeRange"` // e.g. "09:00 - 10:00"
	Status         models.BookingStatus `json:"status"`
}

// CustomerByID looks up a customer by id.
func (s *Snapshot) CustomerByID(id string) (models.Customer, bool) {
	for _, c := range s.Customers {
		if c.ID == id {
			return c, true
		}
	}
	return models.Customer{}, false
}

// BookingByID looks up a booking by id.
func (s *Snapshot) BookingByID(id string) (models.Booking, bool) {
	for _, b := range s.Bookings {
		if b.ID == id {
			return b, true
		}
	}
	return models.Booking{}, false
}

// SlotStatus derives the status of one (date, time) pair against the current
// booking collection and the caller's pending selection.
func (s *Snapshot) SlotStatus(date, tm string, pendingSelection map[string]bool) models.SlotStatusInfo {
	return models.DeriveSlotStatus(date, tm, s.Bookings, pendingSelection)
}

// UpcomingBookings returns a customer's confirmed bookings on or after the
// given date. Dates are "YYYY-MM-DD" strings, so ordering is lexicographic.
func (s *Snapshot) UpcomingBookings(customerID, today string) []models.Booking {
	var out []models.Booking
	for _, b := range s.Bookings {
		if b.CustomerID == customerID && b.Date >= today && b.Status == models.BookingConfirmed {
			out = append(out, b)
		}
	}
	return out
}

// PastBookings returns a customer's bookings dated before the given date.
func (s *Snapshot) PastBookings(customerID, today string) []models.Booking {
	var out []models.Booking
	for _, b := range s.Bookings {
		if b.CustomerID == customerID && b.Date < today {
			out = append(out, b)
		}
	}
	return out
}

// CancelledBookings returns a customer's fully cancelled bookings.
func (s *Snapshot) CancelledBookings(customerID string) []models.Booking {
	var out []models.Booking
	for _, b := range s.Bookings {
		if b.CustomerID == customerID && b.Status == models.BookingCancelled {
			out = append(out, b)
		}
	}
	return out
}

// TodayRoster expands the given date's non-cancelled bookings into one entry
// per active slot, sorted by time. Cancelled slots are skipped; customer
// details fall back to the booking's denormalized name when the customer
// record is missing from the snapshot.
func (s *Snapshot) TodayRoster(date string) []RosterEntry {
	var entries []RosterEntry
	for _, b := range s.Bookings {
		if b.Date != date || b.Status == models.BookingCancelled {
			continue
		}

		name, mobile, city := b.CustomerName, "N/A", "N/A"
		if name == "" {
			name = "Unknown Customer"
		}
		if c, ok := s.CustomerByID(b.CustomerID); ok {
			name, mobile, city = c.Name, c.Mobile, c.City
		}

		for i, slot := range b.Slots {
			if slot.State != models.SlotActive {
				continue
			}
			entries = append(entries, RosterEntry{
				ID:             fmt.Sprintf("%s-%d", b.ID, i),
				BookingID:      b.ID,
				CustomerName:   name,
				CustomerMobile: mobile,
				CustomerCity:   city,
				Time:           slot.Time,
				TimeRange:      fmt.Sprintf("%s - %s", slot.Time, nextHour(slot.Time)),
				Status:         b.Status,
			})
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return slotMinutes(entries[i].Time) < slotMinutes(entries[j].Time)
	})
	return entries
}

// nextHour returns the label one hour after the given "HH:MM" label,
// wrapping at midnight.
func nextHour(tm string) string {
	parts := strings.SplitN(tm, ":", 2)
	if len(parts) != 2 {
		return tm
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return tm
	}
	return fmt.Sprintf("%02d:%s", (hours+1)%24, parts[1])
}

// slotMinutes converts an "HH:MM" label to minutes from midnight for
// sorting; malformed labels sort last.
func slotMinutes(tm string) int {
	parts := strings.SplitN(tm, ":", 2)
	if len(parts) != 2 {
		return 1 << 16
	}
	hours, err1 := strconv.Atoi(parts[0])
	mins, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return 1 << 16
	}
	return hours*60 + mins
}
