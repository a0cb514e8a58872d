package domain

import "time"

type Review struct {
	ID         int64     `json:"id"`
	PropertyID int64     `json:"property_id"`
	UserID     int64     `json:"user_id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
