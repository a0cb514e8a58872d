package booking

import "time"

// Dates travel as ISO calendar dates ("2006-01-02"); the service parses
// them and owns the ordering validation.
type CreateBookingRequest struct {
	PropertyID int64  `json:"property_id" binding:"required"`
	StartDate  string `json:"start_date" binding:"required"`
	EndDate    string `json:"end_date" binding:"required"`
}

type UpdateBookingRequest struct {
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
}

type BookingResponse struct {
	ID         int64     `json:"id"`
	PropertyID int64     `json:"property_id"`
	UserID     int64     `json:"user_id"`
	StartDate  string    `json:"start_date"`
	EndDate    string    `json:"end_date"`
	TotalPrice float64   `json:"total_price"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
