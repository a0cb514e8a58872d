package admin

import (
	"context"
	"errors"

	"vacationstay/internal/domain"

	"gorm.io/gorm"
)

// Service backs the administrator surface: user moderation and a global
// view over bookings. Route-level access control lives in middleware;
// the service trusts its caller is an admin.
type Service struct {
	users    UserRepository
	bookings BookingReader
}

func NewService(users UserRepository, bookings BookingReader) *Service {
	return &Service{users: users, bookings: bookings}
}

func (s *Service) ListUsers(ctx context.Context, page, limit int) ([]domain.User, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.users.List(ctx, limit, (page-1)*limit)
}

func (s *Service) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

// DeleteUser removes the user and, through the repository, their
// bookings, reviews and role rows.
func (s *Service) DeleteUser(ctx context.Context, id int64) error {
	if _, err := s.GetUser(ctx, id); err != nil {
		return err
	}
	return s.users.Delete(ctx, id)
}

func (s *Service) ListBookings(ctx context.Context) ([]domain.Booking, error) {
	return s.bookings.GetAll(ctx)
}

func (s *Service) ListUserBookings(ctx context.Context, userID int64) ([]domain.Booking, error) {
	if _, err := s.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.bookings.GetByUserID(ctx, userID)
}
