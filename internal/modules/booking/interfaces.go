package booking

import (
	"context"
	"time"

	"vacationstay/internal/domain"
)

// BookingRepository defines the persistence operations the service needs.
type BookingRepository interface {
	CountOverlapping(ctx context.Context, propertyID int64, start, end time.Time, excludeID int64) (int64, error)
	CreateIfAvailable(ctx context.Context, b *domain.Booking) error
	UpdateIfAvailable(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetAll(ctx context.Context) ([]domain.Booking, error)
	GetByUserID(ctx context.Context, userID int64) ([]domain.Booking, error)
	GetByPropertyID(ctx context.Context, propertyID int64) ([]domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	Delete(ctx context.Context, id int64) error
}

// PropertyGate is the slice of the property repository the booking service
// depends on.
type PropertyGate interface {
	Exists(ctx context.Context, id int64) (bool, error)
	GetPriceByID(ctx context.Context, id int64) (float64, error)
}

// UserGate confirms the supplied principal corresponds to a stored user.
type UserGate interface {
	Exists(ctx context.Context, id int64) (bool, error)
}
