package handlers

import (
	"net/http"

	"slotsync/models"
	"slotsync/services/sync"
	"slotsync/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the booking command surface.
type BookingHandler struct {
	Sync sync.Service
}

func NewBookingHandler(s sync.Service) *BookingHandler {
	return &BookingHandler{Sync: s}
}

// CreateBookingHandler handles POST /api/bookings.
func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var input models.BookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		logger.Warn("Invalid create booking request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	respond(c, h.Sync.CreateBooking(c.Request.Context(), input))
}

// CancelSlotsHandler handles POST /api/bookings/:id/cancel.
func (h *BookingHandler) CancelSlotsHandler(c *gin.Context) {
	logger := utils.GetLogger()
	id := c.Param("id")

	var req struct {
		SlotTimes []string `json:"slotTimes" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid cancel request", zap.String("bookingID", id), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	respond(c, h.Sync.CancelSlots(c.Request.Context(), id, req.SlotTimes))
}

// CompleteBookingHandler handles POST /api/bookings/:id/complete.
func (h *BookingHandler) CompleteBookingHandler(c *gin.Context) {
	respond(c, h.Sync.CompleteBooking(c.Request.Context(), c.Param("id")))
}
