package domain

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

// Booking holds a half-open [StartDate, EndDate) stay. EndDate is the
// checkout day and never conflicts with another booking starting that day.
type Booking struct {
	ID         int64         `json:"id"`
	PropertyID int64         `json:"property_id"`
	UserID     int64         `json:"user_id"`
	StartDate  time.Time     `json:"start_date"`
	EndDate    time.Time     `json:"end_date"`
	TotalPrice float64       `json:"total_price"`
	Status     BookingStatus `json:"status"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}
