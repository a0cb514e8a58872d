package booking

import (
	"net/http"
	"strconv"

	"vacationstay/internal/domain"
	"vacationstay/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings", h.CreateBooking)
	rg.GET("/bookings", h.GetMyBookings)
	rg.GET("/bookings/:id", h.GetBooking)
	rg.PUT("/bookings/:id", h.UpdateBooking)
	rg.DELETE("/bookings/:id", h.DeleteBooking)
	rg.PATCH("/bookings/:id/cancel", h.CancelBooking)
	rg.GET("/bookings/user/:userId", h.GetBookingsByUser)
	rg.GET("/bookings/property/:propertyId", h.GetBookingsByProperty)
	rg.GET("/bookings/property/:propertyId/availability", h.CheckAvailability)
}

func (h *Handler) CreateBooking(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.CreateBooking(c.Request.Context(), userID, req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, toBookingResponse(b))
}

func (h *Handler) GetMyBookings(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	items, err := h.service.ListByUser(c.Request.Context(), userID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toBookingResponses(items))
}

func (h *Handler) GetBooking(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	b, err := h.service.GetBooking(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toBookingResponse(b))
}

func (h *Handler) UpdateBooking(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.UpdateBooking(c.Request.Context(), id, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toBookingResponse(b))
}

func (h *Handler) CancelBooking(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	b, err := h.service.CancelBooking(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toBookingResponse(b))
}

func (h *Handler) DeleteBooking(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteBooking(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) GetBookingsByUser(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	items, err := h.service.ListByUser(c.Request.Context(), userID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toBookingResponses(items))
}

func (h *Handler) GetBookingsByProperty(c *gin.Context) {
	propertyID, ok := pathID(c, "propertyId")
	if !ok {
		return
	}

	items, err := h.service.ListByProperty(c.Request.Context(), propertyID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toBookingResponses(items))
}

func (h *Handler) CheckAvailability(c *gin.Context) {
	propertyID, ok := pathID(c, "propertyId")
	if !ok {
		return
	}

	start, end, err := parseRange(c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "start_date and end_date must be valid dates with start_date < end_date")
		return
	}

	available, err := h.service.IsAvailable(c.Request.Context(), propertyID, start, end)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"available": available})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch err {
	case ErrValidation:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking date range")
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking, property or user not found")
	case ErrNotAvailable:
		response.Error(c, http.StatusConflict, "BOOKING_CONFLICT", "Property is not available for the selected dates")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Booking operation failed")
	}
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid "+name)
		return 0, false
	}
	return id, true
}

func toBookingResponse(b *domain.Booking) BookingResponse {
	return BookingResponse{
		ID:         b.ID,
		PropertyID: b.PropertyID,
		UserID:     b.UserID,
		StartDate:  b.StartDate.Format(dateLayout),
		EndDate:    b.EndDate.Format(dateLayout),
		TotalPrice: b.TotalPrice,
		Status:     string(b.Status),
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}

func toBookingResponses(items []domain.Booking) []BookingResponse {
	out := make([]BookingResponse, 0, len(items))
	for i := range items {
		out = append(out, toBookingResponse(&items[i]))
	}
	return out
}
