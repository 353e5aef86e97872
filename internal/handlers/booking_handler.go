package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/travelbook/booking-backend/internal/middleware"
	"github.com/travelbook/booking-backend/internal/models"
	"github.com/travelbook/booking-backend/internal/services"
)

// BookingHandler exposes the booking lifecycle over HTTP
type BookingHandler struct {
	bookingService *services.BookingService
	logger         *logrus.Logger
}

// NewBookingHandler creates a new BookingHandler
func NewBookingHandler(bookingService *services.BookingService, logger *logrus.Logger) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
		logger:         logger,
	}
}

// CreateBooking creates a new booking
// @Summary Create a new booking
// @Description Create a flight, hotel, tour or car booking. Flight seats are held immediately; other inventory is committed at payment confirmation.
// @Tags Bookings
// @Accept json
// @Produce json
// @Param request body models.CreateBookingRequest true "Booking request"
// @Success 201 {object} map[string]interface{} "Booking created"
// @Failure 400 {object} map[string]interface{} "Invalid request"
// @Failure 404 {object} map[string]interface{} "Inventory item not found"
// @Failure 409 {object} map[string]interface{} "Inventory not available"
// @Security BearerAuth
// @Router /api/v1/bookings [post]
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)

	var req models.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, models.NewValidationError("invalid request body: "+err.Error()))
		return
	}

	booking, err := h.bookingService.Create(c.Request.Context(), userCtx.UserID.String(), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondData(c, http.StatusCreated, booking, "Booking created successfully")
}

// GetMyBookings returns the authenticated user's bookings
// @Summary Get my bookings
// @Description List all bookings of the authenticated user with their inventory items expanded
// @Tags Bookings
// @Produce json
// @Success 200 {object} map[string]interface{} "Bookings"
// @Security BearerAuth
// @Router /api/v1/bookings/my [get]
func (h *BookingHandler) GetMyBookings(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)

	bookings, err := h.bookingService.ListByUser(c.Request.Context(), userCtx.UserID.String())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondList(c, bookings, len(bookings))
}

// GetBooking returns one booking by ID
// @Summary Get a booking by ID
// @Description Get a booking with its inventory item expanded. Only the owner or an admin may read it.
// @Tags Bookings
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} map[string]interface{} "Booking"
// @Failure 403 {object} map[string]interface{} "Forbidden"
// @Failure 404 {object} map[string]interface{} "Not found"
// @Security BearerAuth
// @Router /api/v1/bookings/{id} [get]
func (h *BookingHandler) GetBooking(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)

	booking, err := h.bookingService.GetByID(c.Request.Context(), userCtx.UserID.String(), userCtx.IsAdmin(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondData(c, http.StatusOK, booking, "")
}

// ConfirmPayment confirms payment for a booking
// @Summary Confirm payment for a booking
// @Description Confirm payment with stubbed card details and commit the deferred inventory mutation
// @Tags Bookings
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body models.ConfirmPaymentRequest true "Payment details"
// @Success 200 {object} map[string]interface{} "Payment confirmed"
// @Failure 400 {object} map[string]interface{} "Invalid payment details"
// @Failure 403 {object} map[string]interface{} "Forbidden"
// @Failure 404 {object} map[string]interface{} "Not found"
// @Failure 409 {object} map[string]interface{} "Booking not payable"
// @Security BearerAuth
// @Router /api/v1/bookings/{id}/confirm-payment [put]
func (h *BookingHandler) ConfirmPayment(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)

	var req models.ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, models.NewValidationError("invalid request body: "+err.Error()))
		return
	}

	booking, err := h.bookingService.ConfirmPayment(c.Request.Context(), userCtx.UserID.String(), userCtx.IsAdmin(), c.Param("id"), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondData(c, http.StatusOK, booking, "Payment confirmed successfully")
}

// CancelBooking cancels a booking
// @Summary Cancel a booking
// @Description Cancel a booking and release its inventory. A paid booking is marked refunded.
// @Tags Bookings
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} map[string]interface{} "Booking cancelled"
// @Failure 403 {object} map[string]interface{} "Forbidden"
// @Failure 404 {object} map[string]interface{} "Not found"
// @Failure 409 {object} map[string]interface{} "Already cancelled"
// @Security BearerAuth
// @Router /api/v1/bookings/{id}/cancel [put]
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)

	booking, err := h.bookingService.Cancel(c.Request.Context(), userCtx.UserID.String(), userCtx.IsAdmin(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondData(c, http.StatusOK, booking, "Booking cancelled successfully")
}

// UpdateBookingStatus overrides a booking's status fields (admin only)
// @Summary Update booking status
// @Description Administrative override of status and payment status. No inventory side effects.
// @Tags Bookings
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body models.UpdateBookingStatusRequest true "Status override"
// @Success 200 {object} map[string]interface{} "Booking updated"
// @Failure 400 {object} map[string]interface{} "Invalid status"
// @Failure 404 {object} map[string]interface{} "Not found"
// @Security BearerAuth
// @Router /api/v1/bookings/{id}/status [put]
func (h *BookingHandler) UpdateBookingStatus(c *gin.Context) {
	var req models.UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, models.NewValidationError("invalid request body: "+err.Error()))
		return
	}

	booking, err := h.bookingService.UpdateStatus(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondData(c, http.StatusOK, booking, "Booking status updated successfully")
}

// GetAllBookings returns every booking (admin only)
// @Summary List all bookings
// @Description List every booking in the system with inventory items expanded
// @Tags Bookings
// @Produce json
// @Success 200 {object} map[string]interface{} "Bookings"
// @Security BearerAuth
// @Router /api/v1/bookings [get]
func (h *BookingHandler) GetAllBookings(c *gin.Context) {
	bookings, err := h.bookingService.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondList(c, bookings, len(bookings))
}
