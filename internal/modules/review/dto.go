package review

import "time"

type CreateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

type UpdateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

type ReviewResponse struct {
	ID         int64     `json:"id"`
	PropertyID int64     `json:"property_id"`
	UserID     int64     `json:"user_id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// PropertyRatingResponse is the aggregate view for one property.
// AverageRating is null when no reviews exist.
type PropertyRatingResponse struct {
	PropertyID    int64    `json:"property_id"`
	AverageRating *float64 `json:"average_rating"`
	ReviewCount   int64    `json:"review_count"`
}
