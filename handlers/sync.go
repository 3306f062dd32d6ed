package handlers

import (
	"errors"
	"net/http"

	"slotsync/services/sync"
	"slotsync/store"
	"slotsync/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SyncHandler exposes synchronization status and the explicit reload.
type SyncHandler struct {
	Sync  sync.Service
	Store *store.Store
}

func NewSyncHandler(s sync.Service, st *store.Store) *SyncHandler {
	return &SyncHandler{Sync: s, Store: st}
}

// StatusHandler handles GET /api/sync/status: the banner-level flags plus
// collection sizes.
func (h *SyncHandler) StatusHandler(c *gin.Context) {
	snap := h.Store.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"isOffline":      snap.IsOffline,
		"isReconnecting": snap.IsReconnecting,
		"isUsingCache":   snap.IsUsingCache,
		"customers":      len(snap.Customers),
		"bookings":       len(snap.Bookings),
	})
}

// ReloadHandler handles POST /api/sync/reload. Reloads are deliberately
// caller-driven; connectivity transitions never trigger one on their own.
func (h *SyncHandler) ReloadHandler(c *gin.Context) {
	logger := utils.GetLogger()

	if err := h.Sync.Bootstrap(c.Request.Context()); err != nil {
		logger.Error("Reload failed", zap.Error(err))
		if errors.Is(err, sync.ErrNoData) {
			utils.JSONError(c, http.StatusServiceUnavailable, "No data available", "Remote store and offline cache are both unavailable.")
			return
		}
		utils.JSONError(c, http.StatusBadGateway, "Reload failed", err.Error())
		return
	}

	snap := h.Store.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"reloaded":     true,
		"isUsingCache": snap.IsUsingCache,
	})
}
