package events

import (
	"stadly/internal/shared/config"
	"stadly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// Router handles event-related routes
type Router struct {
	controller *Controller
	config     *config.Config
}

// NewRouter creates a new event router
func NewRouter(controller *Controller, cfg *config.Config) *Router {
	return &Router{
		controller: controller,
		config:     cfg,
	}
}

// SetupRoutes registers all event routes
func (r *Router) SetupRoutes(rg *gin.RouterGroup) {
	events := rg.Group("/events")
	{
		// Public routes
		events.GET("", r.controller.ListEvents)
		events.GET("/:id", r.controller.GetEvent)
		events.GET("/:id/availability", r.controller.GetAvailability)
		events.GET("/:id/seats", r.controller.GetSeatMap)

		// Admin routes
		admin := events.Group("")
		admin.Use(middleware.JWTAuthWithConfig(r.config), middleware.RequireAdmin())
		{
			admin.POST("", r.controller.CreateEvent)
			admin.PUT("/:id", r.controller.UpdateEvent)
			admin.POST("/:id/open-sale", r.controller.OpenSale)
			admin.POST("/:id/cancel", r.controller.CancelEvent)
			admin.DELETE("/:id", r.controller.DeleteEvent)
		}
	}
}
