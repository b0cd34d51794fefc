package api

import (
	"errors"
	"net/http"

	"storeroom-api/internal/domain/booking"
	reqdto "storeroom-api/internal/handler/dto/request"
	resdto "storeroom-api/internal/handler/dto/response"
	"storeroom-api/internal/handler/httperr"
	"storeroom-api/internal/handler/middleware"
	"storeroom-api/internal/usecase/commands"
	"storeroom-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	bookingCommands commands.BookingCommands
	bookingQueries  queries.BookingQueries
}

func NewBookingHandler(bookingCommands commands.BookingCommands, bookingQueries queries.BookingQueries) *BookingHandler {
	return &BookingHandler{
		bookingCommands: bookingCommands,
		bookingQueries:  bookingQueries,
	}
}

// @Summary Create booking
// @Description Request a reservation of storage items for a date range
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.Envelope
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	actor, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var req reqdto.CreateBookingRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Missing required booking information", nil)
		return
	}

	view, err := h.bookingCommands.CreateBooking(c.Request.Context(), req.ToParams(), actor)
	if err != nil {
		h.abortWithCommandError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.Success(resdto.FromBookingView(view)))
}

// @Summary List bookings
// @Description List all bookings, optionally filtered by status (admin only)
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status filter (pending/approved/rejected/cancelled)"
// @Success 200 {object} resdto.Envelope
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /bookings [get]
func (h *BookingHandler) List(c *gin.Context) {
	var statusFilter *booking.Status
	if raw := c.Query("status"); raw != "" {
		status, err := booking.ParseStatus(raw)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Valid status is required", nil)
			return
		}
		statusFilter = &status
	}

	views, err := h.bookingQueries.ListAll(c.Request.Context(), statusFilter)
	if err != nil {
		h.abortWithCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.SuccessList(resdto.FromBookingViews(views), len(views)))
}

// @Summary List my bookings
// @Description List the authenticated user's bookings in insertion order
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.Envelope
// @Failure 401 {object} httperr.Response
// @Router /bookings/me [get]
func (h *BookingHandler) ListMine(c *gin.Context) {
	actor, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	views, err := h.bookingQueries.ListByUser(c.Request.Context(), actor.ID)
	if err != nil {
		h.abortWithCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.SuccessList(resdto.FromBookingViews(views), len(views)))
}

// @Summary Get booking
// @Description Get one booking; owners see their own, staff see any
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.Envelope
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	actor, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking ID format", nil)
		return
	}

	view, err := h.bookingQueries.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		h.abortWithCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.Success(resdto.FromBookingView(view)))
}

// @Summary Update booking status
// @Description Apply a status transition; legality depends on role, ownership and current status
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.UpdateBookingStatusRequest true "Target status"
// @Success 200 {object} resdto.Envelope
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/{id}/status [patch]
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	actor, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking ID format", nil)
		return
	}

	var req reqdto.UpdateBookingStatusRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Valid status is required", nil)
		return
	}

	view, err := h.bookingCommands.UpdateStatus(c.Request.Context(), id, req.Status, actor)
	if err != nil {
		h.abortWithCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.Success(resdto.FromBookingView(view)))
}

// @Summary Delete booking
// @Description Remove a booking entirely; owners may delete pending bookings, staff any
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.Envelope
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/{id} [delete]
func (h *BookingHandler) Delete(c *gin.Context) {
	actor, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking ID format", nil)
		return
	}

	if err := h.bookingCommands.Delete(c.Request.Context(), id, actor); err != nil {
		h.abortWithCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.Success(gin.H{"message": "Booking deleted successfully"}))
}

// abortWithCommandError maps usecase and domain errors onto the HTTP
// taxonomy. Availability conflicts are 409 because they depend on
// concurrent state; everything structurally wrong with the request is 400.
func (h *BookingHandler) abortWithCommandError(c *gin.Context, err error) {
	var shortage *commands.ShortageError

	switch {
	case errors.As(err, &shortage):
		httperr.AbortWithError(c, http.StatusConflict, err,
			"Some items are already booked for the selected dates", shortage.Shortages)
	case errors.Is(err, commands.ErrItemNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Item not found", nil)
	case errors.Is(err, commands.ErrBookingNotFound), errors.Is(err, queries.ErrBookingNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Booking not found", nil)
	case errors.Is(err, commands.ErrItemInactive):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Item is not available for booking", nil)
	case errors.Is(err, commands.ErrQuantityExceedsStock):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Requested quantity exceeds available stock", nil)
	case errors.Is(err, booking.ErrDurationTooLong):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Booking duration cannot exceed 2 weeks", nil)
	case errors.Is(err, booking.ErrInvalidDateRange):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "End date must be after start date", nil)
	case errors.Is(err, booking.ErrInvalidStatus):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Valid status is required", nil)
	case errors.Is(err, booking.ErrInvalidTransition):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid status transition", nil)
	case errors.Is(err, commands.ErrValidation):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Missing required booking information", nil)
	case errors.Is(err, booking.ErrNotAuthorized), errors.Is(err, queries.ErrNotAuthorized):
		httperr.AbortWithError(c, http.StatusForbidden, err, "Not authorized for this booking", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}
