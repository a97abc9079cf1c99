package booking

import (
	"errors"
	"net/http"

	"stadly/internal/events"
	"stadly/internal/payments"
	"stadly/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type Controller struct {
	service   Service
	validator *validator.Validate
}

func NewController(service Service) *Controller {
	return &Controller{
		service:   service,
		validator: validator.New(),
	}
}

// customerID pulls the authenticated customer out of the gin context.
func customerID(ctx *gin.Context) (uuid.UUID, bool) {
	raw, exists := ctx.Get("customer_id")
	if !exists {
		return uuid.Nil, false
	}
	str, ok := raw.(string)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(str)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func (c *Controller) ReserveSeats(ctx *gin.Context) {
	custID, ok := customerID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Authentication required", nil, nil)
		return
	}

	var req ReserveSeatsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	if err := c.validator.Struct(req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	booking, err := c.service.ReserveSeats(ctx.Request.Context(), custID, req)
	if err != nil {
		c.respondReserveError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Seats reserved successfully", booking, nil)
}

func (c *Controller) respondReserveError(ctx *gin.Context, err error) {
	var unavailable *SeatUnavailableError
	switch {
	case errors.As(err, &unavailable):
		response.RespondJSON(ctx, "error", http.StatusConflict, "Some seats are no longer available", nil,
			gin.H{"unavailable_seats": unavailable.SeatIDStrings()})
	case errors.Is(err, events.ErrEventNotFound):
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Event not found", nil, nil)
	case errors.Is(err, ErrEventNotBookable):
		response.RespondJSON(ctx, "error", http.StatusConflict, "Event is not open for booking", nil, nil)
	case errors.Is(err, ErrNoSeats), errors.Is(err, ErrUnknownSeats):
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid seat selection", nil, nil)
	case errors.Is(err, ErrTooManySeats):
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Too many seats requested", nil, nil)
	case errors.Is(err, ErrLockTimeout):
		response.RespondJSON(ctx, "error", http.StatusServiceUnavailable, "Seats are contended, please retry", nil, nil)
	default:
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to reserve seats", nil, nil)
	}
}

func (c *Controller) ConfirmBooking(ctx *gin.Context) {
	custID, ok := customerID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Authentication required", nil, nil)
		return
	}
	bookingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid booking ID", nil, nil)
		return
	}

	var req ConfirmBookingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	if err := c.validator.Struct(req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	booking, err := c.service.ConfirmBooking(ctx.Request.Context(), custID, bookingID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound):
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Booking not found", nil, nil)
		case errors.Is(err, ErrNotOwner):
			response.RespondJSON(ctx, "error", http.StatusForbidden, "Booking belongs to another customer", nil, nil)
		case errors.Is(err, ErrInvalidState):
			response.RespondJSON(ctx, "error", http.StatusConflict, "Booking can no longer be confirmed", nil, nil)
		case errors.Is(err, payments.ErrPaymentDeclined):
			response.RespondJSON(ctx, "error", http.StatusPaymentRequired, "Payment was declined", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to confirm booking", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Booking confirmed successfully", booking, nil)
}

func (c *Controller) ReleaseBooking(ctx *gin.Context) {
	custID, ok := customerID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Authentication required", nil, nil)
		return
	}
	bookingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid booking ID", nil, nil)
		return
	}

	if err := c.service.ReleaseBooking(ctx.Request.Context(), custID, bookingID); err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound):
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Booking not found", nil, nil)
		case errors.Is(err, ErrNotOwner):
			response.RespondJSON(ctx, "error", http.StatusForbidden, "Booking belongs to another customer", nil, nil)
		case errors.Is(err, ErrInvalidState):
			response.RespondJSON(ctx, "error", http.StatusConflict, "Booking can no longer be cancelled", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to cancel booking", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Booking cancelled successfully", nil, nil)
}

func (c *Controller) RefundBooking(ctx *gin.Context) {
	custID, ok := customerID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Authentication required", nil, nil)
		return
	}
	bookingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid booking ID", nil, nil)
		return
	}

	if err := c.service.RefundBooking(ctx.Request.Context(), custID, bookingID); err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound):
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Booking not found", nil, nil)
		case errors.Is(err, ErrNotOwner):
			response.RespondJSON(ctx, "error", http.StatusForbidden, "Booking belongs to another customer", nil, nil)
		case errors.Is(err, ErrInvalidState):
			response.RespondJSON(ctx, "error", http.StatusConflict, "Booking is not refundable", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to refund booking", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Booking refunded successfully", nil, nil)
}

func (c *Controller) GetBooking(ctx *gin.Context) {
	custID, ok := customerID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Authentication required", nil, nil)
		return
	}
	bookingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid booking ID", nil, nil)
		return
	}

	booking, err := c.service.GetBooking(ctx.Request.Context(), custID, bookingID)
	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound):
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Booking not found", nil, nil)
		case errors.Is(err, ErrNotOwner):
			response.RespondJSON(ctx, "error", http.StatusForbidden, "Booking belongs to another customer", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get booking", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Booking retrieved successfully", booking, nil)
}

func (c *Controller) ListBookings(ctx *gin.Context) {
	custID, ok := customerID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Authentication required", nil, nil)
		return
	}

	bookings, err := c.service.ListBookings(ctx.Request.Context(), custID)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to list bookings", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Bookings retrieved successfully", bookings, nil)
}

func (c *Controller) CheckInTicket(ctx *gin.Context) {
	var req CheckInRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	if err := c.validator.Struct(req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	ticket, err := c.service.CheckInTicket(ctx.Request.Context(), req.Serial)
	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound):
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Ticket not found", nil, nil)
		case errors.Is(err, ErrInvalidState):
			response.RespondJSON(ctx, "error", http.StatusConflict, "Ticket is not valid for entry", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to check in ticket", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Ticket checked in", ticket, nil)
}
