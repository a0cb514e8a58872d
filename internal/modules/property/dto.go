package property

import "time"

type CreatePropertyRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	Location    string   `json:"location" binding:"required"`
	Price       float64  `json:"price" binding:"required,gt=0"`
	Bedrooms    int      `json:"bedrooms" binding:"gte=0"`
	Bathrooms   int      `json:"bathrooms" binding:"gte=0"`
	MaxGuests   int      `json:"max_guests" binding:"required,gt=0"`
	Amenities   []string `json:"amenities"`
	Images      []string `json:"images"`
}

// UpdatePropertyRequest carries full replacement state; partial updates
// are not supported.
type UpdatePropertyRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	Location    string   `json:"location" binding:"required"`
	Price       float64  `json:"price" binding:"required,gt=0"`
	Bedrooms    int      `json:"bedrooms" binding:"gte=0"`
	Bathrooms   int      `json:"bathrooms" binding:"gte=0"`
	MaxGuests   int      `json:"max_guests" binding:"required,gt=0"`
	Amenities   []string `json:"amenities"`
	Images      []string `json:"images"`
}

// PropertyResponse is the read model. AverageRating is null when the
// property has no reviews, which is distinct from a 0.0 rating.
type PropertyResponse struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	Location      string    `json:"location"`
	Price         float64   `json:"price"`
	Bedrooms      int       `json:"bedrooms"`
	Bathrooms     int       `json:"bathrooms"`
	MaxGuests     int       `json:"max_guests"`
	Amenities     []string  `json:"amenities,omitempty"`
	Images        []string  `json:"images,omitempty"`
	OwnerID       int64     `json:"owner_id"`
	AverageRating *float64  `json:"average_rating"`
	ReviewCount   int64     `json:"review_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
