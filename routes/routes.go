package routes

import (
	"net/http"
	"time"

	"slotsync/handlers"
	"slotsync/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups the handler sets the router needs.
type HandlerBundle struct {
	Customer *handlers.CustomerHandler
	Booking  *handlers.BookingHandler
	Schedule *handlers.ScheduleHandler
	Sync     *handlers.SyncHandler
}

// RegisterCustomerRoutes registers customer commands and queries.
func RegisterCustomerRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/customers")
	{
		api.GET("", hb.Schedule.ListCustomersHandler)
		api.POST("", hb.Customer.CreateCustomerHandler)
		api.PATCH("/:id", hb.Customer.UpdateCustomerHandler)
		api.DELETE("/:id", hb.Customer.DeleteCustomerHandler)
		api.GET("/:id/bookings", hb.Schedule.CustomerBookingsHandler)
	}
}

// RegisterBookingRoutes registers booking commands and queries.
func RegisterBookingRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.GET("", hb.Schedule.ListBookingsHandler)
		api.POST("", hb.Booking.CreateBookingHandler)
		api.POST("/:id/cancel", hb.Booking.CancelSlotsHandler)
		api.POST("/:id/complete", hb.Booking.CompleteBookingHandler)
	}
}

// RegisterScheduleRoutes registers the slot-status and roster queries.
func RegisterScheduleRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/schedule")
	{
		api.GET("/slot-status", hb.Schedule.SlotStatusHandler)
		api.GET("/roster", hb.Schedule.TodayRosterHandler)
	}
}

// RegisterSyncRoutes registers sync status and the explicit reload.
func RegisterSyncRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/sync")
	{
		api.GET("/status", hb.Sync.StatusHandler)
		api.POST("/reload", hb.Sync.ReloadHandler)
	}
}

// RegisterHealthRoute exposes the dependency health snapshot.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, utils.GetHealthStatus())
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterCustomerRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterScheduleRoutes(r, hb)
	RegisterSyncRoutes(r, hb)
	RegisterHealthRoute(r)
}
