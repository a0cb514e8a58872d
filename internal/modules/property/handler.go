package property

import (
	"net/http"
	"strconv"

	"vacationstay/internal/pkg/response"
	"vacationstay/internal/repository"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.GET("/properties", h.ListProperties)
	public.GET("/properties/:id", h.GetProperty)

	protected.POST("/properties", h.CreateProperty)
	protected.GET("/properties/mine", h.GetMyProperties)
	protected.PUT("/properties/:id", h.UpdateProperty)
	protected.DELETE("/properties/:id", h.DeleteProperty)
}

func (h *Handler) CreateProperty(c *gin.Context) {
	ownerID := c.GetInt64("user_id")
	if ownerID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	var req CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	p, err := h.service.Create(c.Request.Context(), ownerID, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, p)
}

func (h *Handler) GetProperty(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	p, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

func (h *Handler) ListProperties(c *gin.Context) {
	filters, err := parseFilters(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid search filters")
		return
	}

	items, err := h.service.List(c.Request.Context(), filters)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

func (h *Handler) GetMyProperties(c *gin.Context) {
	ownerID := c.GetInt64("user_id")
	if ownerID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	items, err := h.service.ListByOwner(c.Request.Context(), ownerID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

func (h *Handler) UpdateProperty(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req UpdatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	p, err := h.service.Update(c.Request.Context(), id, c.GetInt64("user_id"), c.GetString("role"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

func (h *Handler) DeleteProperty(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, c.GetInt64("user_id"), c.GetString("role")); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch err {
	case ErrValidation:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid property data")
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Property or user not found")
	case ErrForbidden:
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You do not own this property")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Property operation failed")
	}
}

// parseFilters maps the optional query parameters onto the repository
// filter set. Absent parameters stay nil and do not constrain the query.
func parseFilters(c *gin.Context) (repository.PropertyFilters, error) {
	f := repository.PropertyFilters{
		Location: c.Query("location"),
	}

	var err error
	if f.MinPrice, err = floatParam(c, "min_price"); err != nil {
		return f, err
	}
	if f.MaxPrice, err = floatParam(c, "max_price"); err != nil {
		return f, err
	}
	if f.MinBedrooms, err = intParam(c, "bedrooms"); err != nil {
		return f, err
	}
	if f.MinBathrooms, err = intParam(c, "bathrooms"); err != nil {
		return f, err
	}
	if f.MinGuests, err = intParam(c, "guests"); err != nil {
		return f, err
	}

	f.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))
	f.Offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	return f, nil
}

func floatParam(c *gin.Context, name string) (*float64, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func intParam(c *gin.Context, name string) (*int, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid "+name)
		return 0, false
	}
	return id, true
}
