package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"homeserve.backend/internal/domain/entities"
	domainerrors "homeserve.backend/internal/domain/errors"
	"homeserve.backend/internal/interfaces/http/middleware"
	"homeserve.backend/internal/interfaces/http/response"
	"homeserve.backend/internal/usecases"
	"homeserve.backend/pkg/utils"
)

// BookingHandler handles booking lifecycle endpoints
type BookingHandler struct {
	bookingUsecase *usecases.BookingUsecase
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(bookingUsecase *usecases.BookingUsecase) *BookingHandler {
	return &BookingHandler{bookingUsecase: bookingUsecase}
}

// Create requests a new booking
// POST /api/v1/bookings
func (h *BookingHandler) Create(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Unauthorized"))
		return
	}

	var input entities.CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	view, err := h.bookingUsecase.Create(c.Request.Context(), actor, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, view)
}

// Confirm accepts a pending booking
// PUT /api/v1/bookings/:id/confirm
func (h *BookingHandler) Confirm(c *gin.Context) {
	h.act(c, h.bookingUsecase.Confirm)
}

// Reject declines a pending booking
// PUT /api/v1/bookings/:id/reject
func (h *BookingHandler) Reject(c *gin.Context) {
	h.act(c, h.bookingUsecase.Reject)
}

// Complete marks a confirmed booking as done
// PUT /api/v1/bookings/:id/complete
func (h *BookingHandler) Complete(c *gin.Context) {
	h.act(c, h.bookingUsecase.Complete)
}

// Cancel aborts a pending or confirmed booking
// PUT /api/v1/bookings/:id/cancel
func (h *BookingHandler) Cancel(c *gin.Context) {
	h.act(c, h.bookingUsecase.Cancel)
}

type bookingAction func(ctx context.Context, actor entities.Actor, bookingID uuid.UUID, notes string) (*entities.BookingView, error)

// act parses the shared id/notes shape and runs one lifecycle transition
func (h *BookingHandler) act(c *gin.Context, action bookingAction) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Unauthorized"))
		return
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid booking id"))
		return
	}

	// notes are optional for all transitions except reject; the domain
	// enforces that
	var input entities.BookingActionInput
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			response.Error(c, domainerrors.BadRequest(err.Error()))
			return
		}
	}

	view, err := action(c.Request.Context(), actor, bookingID, input.Notes)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, view)
}

// ListForProvider lists the authenticated provider's bookings
// GET /api/v1/bookings/provider
func (h *BookingHandler) ListForProvider(c *gin.Context) {
	h.list(c, h.bookingUsecase.ListForProvider)
}

// ListForCustomer lists the authenticated customer's bookings
// GET /api/v1/bookings/customer
func (h *BookingHandler) ListForCustomer(c *gin.Context) {
	h.list(c, h.bookingUsecase.ListForCustomer)
}

type bookingList func(ctx context.Context, actor entities.Actor, limit, offset int) ([]*entities.Booking, int, error)

func (h *BookingHandler) list(c *gin.Context, action bookingList) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Unauthorized"))
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	params := utils.GetPaginationParams(page, limit)

	bookings, total, err := action(c.Request.Context(), actor, params.Limit, params.CalculateOffset())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"bookings":   bookings,
		"pagination": utils.CalculateMeta(int64(total), params.Page, params.Limit),
	})
}
