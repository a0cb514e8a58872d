package review

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

func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.GET("/properties/:id/reviews", h.GetPropertyReviews)
	public.GET("/properties/:id/rating", h.GetPropertyRating)

	protected.POST("/properties/:id/reviews", h.CreateReview)
	protected.GET("/reviews/mine", h.GetMyReviews)
	protected.PUT("/reviews/:id", h.UpdateReview)
	protected.DELETE("/reviews/:id", h.DeleteReview)
}

func (h *Handler) CreateReview(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	propertyID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Rating must be an integer between 1 and 5")
		return
	}

	rv, err := h.service.Create(c.Request.Context(), propertyID, userID, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, toReviewResponse(rv))
}

func (h *Handler) GetPropertyReviews(c *gin.Context) {
	propertyID, ok := pathID(c, "id")
	if !ok {
		return
	}

	items, err := h.service.GetByProperty(c.Request.Context(), propertyID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toReviewResponses(items))
}

func (h *Handler) GetPropertyRating(c *gin.Context) {
	propertyID, ok := pathID(c, "id")
	if !ok {
		return
	}

	rating, err := h.service.RatingForProperty(c.Request.Context(), propertyID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, rating)
}

func (h *Handler) GetMyReviews(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	items, err := h.service.GetByUser(c.Request.Context(), userID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toReviewResponses(items))
}

func (h *Handler) UpdateReview(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Rating must be an integer between 1 and 5")
		return
	}

	rv, err := h.service.Update(c.Request.Context(), id, c.GetInt64("user_id"), c.GetString("role"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toReviewResponse(rv))
}

func (h *Handler) DeleteReview(c *gin.Context) {
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
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Rating must be an integer between 1 and 5")
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Review or property not found")
	case ErrForbidden:
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You do not own this review")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Review operation failed")
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

func toReviewResponse(rv *domain.Review) ReviewResponse {
	return ReviewResponse{
		ID:         rv.ID,
		PropertyID: rv.PropertyID,
		UserID:     rv.UserID,
		Rating:     rv.Rating,
		Comment:    rv.Comment,
		CreatedAt:  rv.CreatedAt,
	}
}

func toReviewResponses(items []domain.Review) []ReviewResponse {
	out := make([]ReviewResponse, 0, len(items))
	for i := range items {
		out = append(out, toReviewResponse(&items[i]))
	}
	return out
}
