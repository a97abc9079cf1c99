package events

import (
	"net/http"

	"stadly/internal/ledger"
	"stadly/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type Controller struct {
	service   Service
	ledgerSvc ledger.Service
	validator *validator.Validate
}

func NewController(service Service, ledgerSvc ledger.Service) *Controller {
	return &Controller{
		service:   service,
		ledgerSvc: ledgerSvc,
		validator: validator.New(),
	}
}

func (c *Controller) CreateEvent(ctx *gin.Context) {
	var req CreateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	if err := c.validator.Struct(req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	event, err := c.service.CreateEvent(ctx.Request.Context(), req)
	if err != nil {
		switch err {
		case ErrStadiumNotFound:
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Stadium not found", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to create event", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Event created successfully", event, nil)
}

func (c *Controller) GetEvent(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid event ID", nil, nil)
		return
	}

	event, err := c.service.GetEvent(ctx.Request.Context(), id)
	if err != nil {
		switch err {
		case ErrEventNotFound:
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Event not found", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get event", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Event retrieved successfully", event, nil)
}

func (c *Controller) ListEvents(ctx *gin.Context) {
	var query ListEventsQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	events, err := c.service.ListEvents(ctx.Request.Context(), query)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to list events", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Events retrieved successfully", events, nil)
}

func (c *Controller) UpdateEvent(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid event ID", nil, nil)
		return
	}

	var req UpdateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	if err := c.validator.Struct(req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	if err := c.service.UpdateEvent(ctx.Request.Context(), id, req); err != nil {
		switch err {
		case ErrEventNotFound:
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Event not found", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to update event", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Event updated successfully", nil, nil)
}

func (c *Controller) OpenSale(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid event ID", nil, nil)
		return
	}

	if err := c.service.OpenSale(ctx.Request.Context(), id); err != nil {
		switch err {
		case ErrEventNotFound:
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Event not found", nil, nil)
		case ErrInvalidTransition:
			response.RespondJSON(ctx, "error", http.StatusConflict, "Event is not in a schedulable state", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to open sale", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Event is now on sale", nil, nil)
}

func (c *Controller) CancelEvent(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid event ID", nil, nil)
		return
	}

	if err := c.service.CancelEvent(ctx.Request.Context(), id); err != nil {
		switch err {
		case ErrEventNotFound:
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Event not found", nil, nil)
		case ErrInvalidTransition:
			response.RespondJSON(ctx, "error", http.StatusConflict, "Event cannot be cancelled", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to cancel event", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Event cancelled successfully", nil, nil)
}

func (c *Controller) DeleteEvent(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid event ID", nil, nil)
		return
	}

	if err := c.service.DeleteEvent(ctx.Request.Context(), id); err != nil {
		switch err {
		case ErrEventNotFound:
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Event not found", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to delete event", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Event deleted successfully", nil, nil)
}

// GetAvailability returns the cached aggregate availability summary.
func (c *Controller) GetAvailability(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid event ID", nil, nil)
		return
	}

	if _, err := c.service.GetEvent(ctx.Request.Context(), id); err != nil {
		switch err {
		case ErrEventNotFound:
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Event not found", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get event", nil, nil)
		}
		return
	}

	availability, err := c.ledgerSvc.EventAvailability(ctx.Request.Context(), id)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get availability", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Availability retrieved successfully", availability, nil)
}

// GetSeatMap returns the per-seat effective statuses for the seat picker.
func (c *Controller) GetSeatMap(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid event ID", nil, nil)
		return
	}

	seatMap, err := c.ledgerSvc.SeatMap(ctx.Request.Context(), id)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get seat map", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Seat map retrieved successfully", seatMap, nil)
}
