package stadiums

import (
	"stadly/internal/shared/config"
	"stadly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// Router handles stadium-related routes
type Router struct {
	controller *Controller
	config     *config.Config
}

// NewRouter creates a new stadium router
func NewRouter(controller *Controller, cfg *config.Config) *Router {
	return &Router{
		controller: controller,
		config:     cfg,
	}
}

// SetupRoutes registers all stadium routes
func (r *Router) SetupRoutes(rg *gin.RouterGroup) {
	stadiums := rg.Group("/stadiums")
	{
		// Public routes
		stadiums.GET("", r.controller.ListStadiums)
		stadiums.GET("/:id", r.controller.GetStadium)
		stadiums.GET("/:id/seats", r.controller.ListSeats)

		// Admin routes
		admin := stadiums.Group("")
		admin.Use(middleware.JWTAuthWithConfig(r.config), middleware.RequireAdmin())
		{
			admin.POST("", r.controller.CreateStadium)
			admin.PUT("/:id", r.controller.UpdateStadium)
			admin.DELETE("/:id", r.controller.DeleteStadium)
			admin.POST("/:id/seats/generate", r.controller.GenerateSeats)
		}
	}
}
