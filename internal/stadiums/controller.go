package stadiums

import (
	"net/http"

	"stadly/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

func (c *Controller) CreateStadium(ctx *gin.Context) {
	var req CreateStadiumRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	stadium, err := c.service.CreateStadium(ctx.Request.Context(), req)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to create stadium", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Stadium created successfully", stadium, nil)
}

func (c *Controller) GetStadium(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid stadium ID", nil, nil)
		return
	}

	stadium, err := c.service.GetStadium(ctx.Request.Context(), id)
	if err != nil {
		switch err {
		case ErrStadiumNotFound:
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Stadium not found", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get stadium", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Stadium retrieved successfully", stadium, nil)
}

func (c *Controller) ListStadiums(ctx *gin.Context) {
	stadiums, err := c.service.ListStadiums(ctx.Request.Context())
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to list stadiums", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Stadiums retrieved successfully", stadiums, nil)
}

func (c *Controller) UpdateStadium(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid stadium ID", nil, nil)
		return
	}

	var req UpdateStadiumRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := c.service.UpdateStadium(ctx.Request.Context(), id, req); err != nil {
		switch err {
		case ErrStadiumNotFound:
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Stadium not found", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to update stadium", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Stadium updated successfully", nil, nil)
}

func (c *Controller) DeleteStadium(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid stadium ID", nil, nil)
		return
	}

	if err := c.service.DeleteStadium(ctx.Request.Context(), id); err != nil {
		switch err {
		case ErrStadiumNotFound:
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Stadium not found", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to delete stadium", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Stadium deleted successfully", nil, nil)
}

func (c *Controller) GenerateSeats(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid stadium ID", nil, nil)
		return
	}

	var req GenerateSeatsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	created, err := c.service.GenerateSeats(ctx.Request.Context(), id, req)
	if err != nil {
		switch err {
		case ErrStadiumNotFound:
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Stadium not found", nil, nil)
		case ErrSectionExists:
			response.RespondJSON(ctx, "error", http.StatusConflict, "Section already has seats", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to generate seats", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Seats generated successfully", gin.H{"seats_created": created}, nil)
}

func (c *Controller) ListSeats(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid stadium ID", nil, nil)
		return
	}

	var query SeatListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	seats, err := c.service.ListSeats(ctx.Request.Context(), id, query)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to list seats", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Seats retrieved successfully", seats, nil)
}
