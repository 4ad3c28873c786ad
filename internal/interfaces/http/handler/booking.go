package handler

import (
	crmapp "github.com/clinic/backend/internal/application/crm"
	"github.com/gin-gonic/gin"
)

// BookingHandler handles booking-related API endpoints
type BookingHandler struct {
	BaseHandler
	bookingService *crmapp.BookingService
}

// NewBookingHandler creates a new BookingHandler
func NewBookingHandler(bookingService *crmapp.BookingService) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
	}
}

// Create handles POST /crm/bookings
func (h *BookingHandler) Create(c *gin.Context) {
	var req crmapp.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	booking, err := h.bookingService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, booking)
}

// GetByID handles GET /crm/bookings/:id
func (h *BookingHandler) GetByID(c *gin.Context) {
	bookingID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid booking ID")
		return
	}

	booking, err := h.bookingService.GetByID(c.Request.Context(), bookingID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, booking)
}

// List handles GET /crm/bookings
func (h *BookingHandler) List(c *gin.Context) {
	var filter crmapp.BookingListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	bookings, total, err := h.bookingService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	page := filter.Page
	if page == 0 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize == 0 {
		pageSize = 20
	}
	h.SuccessWithMeta(c, bookings, total, page, pageSize)
}

// UpdateStatus handles PUT /crm/bookings/:id/status
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	bookingID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid booking ID")
		return
	}

	var req crmapp.UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	booking, err := h.bookingService.UpdateStatus(c.Request.Context(), bookingID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, booking)
}

// AdvanceStage handles PUT /crm/bookings/:id/stage
func (h *BookingHandler) AdvanceStage(c *gin.Context) {
	bookingID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid booking ID")
		return
	}

	var req crmapp.AdvanceStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	booking, err := h.bookingService.AdvanceStage(c.Request.Context(), bookingID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, booking)
}
