package routes

import (
	"net/http"
	"time"

	"stadly/internal/auth"
	"stadly/internal/booking"
	"stadly/internal/events"
	"stadly/internal/ledger"
	"stadly/internal/payments"
	"stadly/internal/shared/config"
	"stadly/internal/shared/database"
	"stadly/internal/stadiums"
	"stadly/pkg/cache"

	"github.com/gin-gonic/gin"
)

// Router wires every feature package together and registers its routes.
type Router struct {
	config    *config.Config
	db        *database.DB
	gateway   payments.Gateway
	publisher booking.TicketPublisher

	// Shared services, initialized once during setup
	stadiumService stadiums.Service
	ledgerService  ledger.Service
	eventService   events.Service
	bookingService booking.Service
}

// NewRouter creates a new router instance. gateway and publisher are
// injected so the server can swap real integrations for local fakes.
func NewRouter(cfg *config.Config, db *database.DB, gateway payments.Gateway, publisher booking.TicketPublisher) *Router {
	return &Router{
		config:    cfg,
		db:        db,
		gateway:   gateway,
		publisher: publisher,
	}
}

// BookingService exposes the booking service so the server can attach
// the expiry sweep to it.
func (r *Router) BookingService() booking.Service {
	return r.bookingService
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.buildServices()

	r.setupHealthRoutes(engine)

	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupAuthRoutes(api)
		r.setupStadiumRoutes(api)
		r.setupEventRoutes(api)
		r.setupBookingRoutes(api)
	}
}

// buildServices constructs the service graph bottom-up: stadiums and
// the seat ledger first, then events, then the booking engine on top.
func (r *Router) buildServices() {
	pg := r.db.GetPostgreSQL()

	var availabilityCache *cache.Cache
	if r.db.GetRedis() != nil {
		availabilityCache = cache.New(r.db.GetRedis())
	}

	stadiumRepo := stadiums.NewRepository(pg)
	r.stadiumService = stadiums.NewService(stadiumRepo)

	ledgerRepo := ledger.NewRepository(pg)
	r.ledgerService = ledger.NewService(ledgerRepo, availabilityCache, r.config.Redis.AvailabilityCacheTTL)

	eventRepo := events.NewRepository(pg)
	r.eventService = events.NewService(eventRepo, r.stadiumService, r.ledgerService)

	bookingRepo := booking.NewRepository(pg, ledgerRepo, r.config.Booking.LockWait)
	r.bookingService = booking.NewService(
		bookingRepo,
		r.stadiumService,
		r.eventService,
		r.gateway,
		r.publisher,
		r.ledgerService,
		r.config.Booking,
	)
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "stadly-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "stadly-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})
}

// setupAuthRoutes configures authentication routes
func (r *Router) setupAuthRoutes(rg *gin.RouterGroup) {
	authRepo := auth.NewRepository(r.db.GetPostgreSQL())
	authService := auth.NewService(authRepo, r.config)
	authController := auth.NewController(authService)
	authRouter := auth.NewRouter(authController, r.config)

	authRouter.SetupRoutes(rg)
}

// setupStadiumRoutes configures stadium and seat inventory routes
func (r *Router) setupStadiumRoutes(rg *gin.RouterGroup) {
	controller := stadiums.NewController(r.stadiumService)
	router := stadiums.NewRouter(controller, r.config)
	router.SetupRoutes(rg)
}

// setupEventRoutes configures event and availability routes
func (r *Router) setupEventRoutes(rg *gin.RouterGroup) {
	controller := events.NewController(r.eventService, r.ledgerService)
	router := events.NewRouter(controller, r.config)
	router.SetupRoutes(rg)
}

// setupBookingRoutes configures the reservation and ticket routes
func (r *Router) setupBookingRoutes(rg *gin.RouterGroup) {
	controller := booking.NewController(r.bookingService)
	router := booking.NewRouter(controller, r.config)
	router.SetupRoutes(rg)
}
