package admin

import (
	"context"

	"vacationstay/internal/domain"
)

type UserRepository interface {
	List(ctx context.Context, limit, offset int) ([]domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
}

type BookingReader interface {
	GetAll(ctx context.Context) ([]domain.Booking, error)
	GetByUserID(ctx context.Context, userID int64) ([]domain.Booking, error)
}
