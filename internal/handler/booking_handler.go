package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shareloop/service-rental/internal/application"
	bookingDomain "github.com/shareloop/service-rental/internal/domain/booking"
	"github.com/shareloop/service-rental/internal/response"
)

// BookingHandler handles HTTP requests for booking operations.
type BookingHandler struct {
	service *application.BookingService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(service *application.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

// RegisterRoutes registers all booking routes on the given router group.
func (h *BookingHandler) RegisterRoutes(r *gin.RouterGroup) {
	bookings := r.Group("/bookings")
	{
		bookings.POST("", h.CreateBooking)
		bookings.GET("", h.ListBookerBookings)
		bookings.GET("/owner", h.ListOwnerBookings)
		bookings.GET("/:id", h.GetBooking)
		bookings.PATCH("/:id", h.ApproveBooking)
	}
}

// CreateBooking handles POST /bookings. The caller is the booker.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	bookerID, err := callerID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req application.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateBooking(c.Request.Context(), bookerID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// ApproveBooking handles PATCH /bookings/:id?approved=true|false. The caller
// must be the booking's owner.
func (h *BookingHandler) ApproveBooking(c *gin.Context) {
	ownerID, err := callerID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid booking ID")
		return
	}

	approved, err := strconv.ParseBool(c.Query("approved"))
	if err != nil {
		response.BadRequest(c, "approved query parameter must be true or false")
		return
	}

	result, err := h.service.ApproveBooking(c.Request.Context(), bookingID, approved, ownerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GetBooking handles GET /bookings/:id.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid booking ID")
		return
	}

	result, err := h.service.GetBookingByID(c.Request.Context(), bookingID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ListBookerBookings handles GET /bookings?state=ALL from the booker's
// perspective.
func (h *BookingHandler) ListBookerBookings(c *gin.Context) {
	h.listBookings(c, bookingDomain.PerspectiveBooker)
}

// ListOwnerBookings handles GET /bookings/owner?state=ALL from the item
// owner's perspective.
func (h *BookingHandler) ListOwnerBookings(c *gin.Context) {
	h.listBookings(c, bookingDomain.PerspectiveOwner)
}

func (h *BookingHandler) listBookings(c *gin.Context, p bookingDomain.Perspective) {
	personID, err := callerID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	state := c.DefaultQuery("state", string(bookingDomain.FilterAll))

	result, err := h.service.GetFilteredBookings(c.Request.Context(), personID, p, state)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
