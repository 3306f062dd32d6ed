package handlers

import (
	"net/http"
	"strings"
	"time"

	"slotsync/store"

	"github.com/gin-gonic/gin"
)

// ScheduleHandler exposes the pure derivation queries of the state store.
// Every endpoint reads one snapshot and never mutates it.
type ScheduleHandler struct {
	Store *store.Store
}

func NewScheduleHandler(st *store.Store) *ScheduleHandler {
	return &ScheduleHandler{Store: st}
}

func today() string {
	return time.Now().Format("2006-01-02")
}

// SlotStatusHandler handles GET /api/schedule/slot-status?date=&time=&pending=.
// pending is a comma-separated list of the caller's in-progress selections.
func (h *ScheduleHandler) SlotStatusHandler(c *gin.Context) {
	date := c.Query("date")
	tm := c.Query("time")
	if date == "" || tm == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date and time query parameters are required"})
		return
	}

	var pending map[string]bool
	if raw := c.Query("pending"); raw != "" {
		pending = make(map[string]bool)
		for _, p := range strings.Split(raw, ",") {
			pending[strings.TrimSpace(p)] = true
		}
	}

	c.JSON(http.StatusOK, h.Store.Snapshot().SlotStatus(date, tm, pending))
}

// CustomerBookingsHandler handles GET /api/customers/:id/bookings, returning
// the customer's bookings partitioned into upcoming, past and cancelled.
func (h *ScheduleHandler) CustomerBookingsHandler(c *gin.Context) {
	id := c.Param("id")
	snap := h.Store.Snapshot()
	now := today()

	c.JSON(http.StatusOK, gin.H{
		"upcoming":  snap.UpcomingBookings(id, now),
		"past":      snap.PastBookings(id, now),
		"cancelled": snap.CancelledBookings(id),
	})
}

// TodayRosterHandler handles GET /api/schedule/roster?date=, defaulting to
// the current date: the operational view with one card per active slot.
func (h *ScheduleHandler) TodayRosterHandler(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		date = today()
	}
	c.JSON(http.StatusOK, gin.H{"date": date, "roster": h.Store.Snapshot().TodayRoster(date)})
}

// ListCustomersHandler handles GET /api/customers.
func (h *ScheduleHandler) ListCustomersHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.Store.Snapshot().Customers)
}

// ListBookingsHandler handles GET /api/bookings.
func (h *ScheduleHandler) ListBookingsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.Store.Snapshot().Bookings)
}
