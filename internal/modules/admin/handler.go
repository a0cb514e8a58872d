package admin

import (
	"net/http"
	"strconv"

	"vacationstay/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(admin *gin.RouterGroup) {
	admin.GET("/users", h.GetUsers)
	admin.GET("/users/:id", h.GetUser)
	admin.DELETE("/users/:id", h.DeleteUser)
	admin.GET("/users/:id/bookings", h.GetUserBookings)
	admin.GET("/bookings", h.GetBookings)
}

func (h *Handler) GetUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	users, err := h.service.ListUsers(c.Request.Context(), page, limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list users")
		return
	}
	response.Success(c, http.StatusOK, users)
}

func (h *Handler) GetUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	u, err := h.service.GetUser(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, u)
}

func (h *Handler) DeleteUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteUser(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) GetUserBookings(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	items, err := h.service.ListUserBookings(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

func (h *Handler) GetBookings(c *gin.Context) {
	items, err := h.service.ListBookings(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list bookings")
		return
	}
	response.Success(c, http.StatusOK, items)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch err {
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Admin operation failed")
	}
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid id")
		return 0, false
	}
	return id, true
}
