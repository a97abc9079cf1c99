package booking

import (
	"stadly/internal/shared/config"
	"stadly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// Router handles booking-related routes
type Router struct {
	controller *Controller
	config     *config.Config
}

// NewRouter creates a new booking router
func NewRouter(controller *Controller, cfg *config.Config) *Router {
	return &Router{
		controller: controller,
		config:     cfg,
	}
}

// SetupRoutes registers all booking routes. Everything here requires
// an authenticated customer.
func (r *Router) SetupRoutes(rg *gin.RouterGroup) {
	bookings := rg.Group("/bookings")
	bookings.Use(middleware.JWTAuthWithConfig(r.config))
	{
		bookings.POST("/reserve", r.controller.ReserveSeats)
		bookings.GET("", r.controller.ListBookings)
		bookings.GET("/:id", r.controller.GetBooking)
		bookings.POST("/:id/confirm", r.controller.ConfirmBooking)
		bookings.DELETE("/:id", r.controller.ReleaseBooking)
		bookings.POST("/:id/refund", r.controller.RefundBooking)
	}

	tickets := rg.Group("/tickets")
	tickets.Use(middleware.JWTAuthWithConfig(r.config), middleware.RequireAdmin())
	{
		tickets.POST("/check-in", r.controller.CheckInTicket)
	}
}
