package booking

import (
	"context"
	"errors"
	"math"
	"time"

	"vacationstay/internal/domain"
	"vacationstay/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

type Service struct {
	bookings   BookingRepository
	properties PropertyGate
	users      UserGate
}

func NewService(bookings BookingRepository, properties PropertyGate, users UserGate) *Service {
	return &Service{
		bookings:   bookings,
		properties: properties,
		users:      users,
	}
}

// IsAvailable reports whether no non-cancelled booking of the property
// intersects the half-open [start, end) range. A booking ending on start,
// or starting on end, does not conflict (same-day turnover).
func (s *Service) IsAvailable(ctx context.Context, propertyID int64, start, end time.Time) (bool, error) {
	cnt, err := s.bookings.CountOverlapping(ctx, propertyID, start, end, 0)
	if err != nil {
		return false, err
	}
	return cnt == 0, nil
}

// CreateBooking persists a confirmed booking after validating the
// property, the supplied principal, the date ordering and availability.
// The check and the insert share one transaction; on PostgreSQL the
// bookings_no_overlap exclusion constraint backs the check, and its
// violation maps to the same Conflict error.
func (s *Service) CreateBooking(ctx context.Context, userID int64, req CreateBookingRequest) (*domain.Booking, error) {
	start, end, err := parseRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	if err := s.requireProperty(ctx, req.PropertyID); err != nil {
		return nil, err
	}
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	price, err := s.properties.GetPriceByID(ctx, req.PropertyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	b := &domain.Booking{
		PropertyID: req.PropertyID,
		UserID:     userID,
		StartDate:  start,
		EndDate:    end,
		TotalPrice: totalPrice(price, start, end),
		Status:     domain.BookingConfirmed,
	}

	if err := s.bookings.CreateIfAvailable(ctx, b); err != nil {
		if isOverlapError(err) {
			return nil, ErrNotAvailable
		}
		return nil, err
	}
	return b, nil
}

// UpdateBooking shifts the booking's dates, re-running the overlap check
// against all other bookings of the property (self-exclusion by id).
func (s *Service) UpdateBooking(ctx context.Context, id int64, req UpdateBookingRequest) (*domain.Booking, error) {
	b, err := s.getBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	start, end, err := parseRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	if start.Equal(b.StartDate) && end.Equal(b.EndDate) {
		return b, nil
	}

	price, err := s.properties.GetPriceByID(ctx, b.PropertyID)
	if err != nil {
		return nil, err
	}

	b.StartDate = start
	b.EndDate = end
	b.TotalPrice = totalPrice(price, start, end)

	if err := s.bookings.UpdateIfAvailable(ctx, b); err != nil {
		if isOverlapError(err) {
			return nil, ErrNotAvailable
		}
		return nil, err
	}
	return b, nil
}

// CancelBooking sets the status to cancelled. Re-cancelling an already
// cancelled booking succeeds and leaves the state unchanged.
func (s *Service) CancelBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	b, err := s.getBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	if b.Status == domain.BookingCancelled {
		return b, nil
	}

	if err := s.bookings.UpdateStatus(ctx, id, domain.BookingCancelled); err != nil {
		return nil, err
	}
	b.Status = domain.BookingCancelled
	return b, nil
}

func (s *Service) DeleteBooking(ctx context.Context, id int64) error {
	if _, err := s.getBooking(ctx, id); err != nil {
		return err
	}
	return s.bookings.Delete(ctx, id)
}

func (s *Service) GetBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	return s.getBooking(ctx, id)
}

func (s *Service) ListBookings(ctx context.Context) ([]domain.Booking, error) {
	return s.bookings.GetAll(ctx)
}

func (s *Service) ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	return s.bookings.GetByUserID(ctx, userID)
}

func (s *Service) ListByProperty(ctx context.Context, propertyID int64) ([]domain.Booking, error) {
	if err := s.requireProperty(ctx, propertyID); err != nil {
		return nil, err
	}
	return s.bookings.GetByPropertyID(ctx, propertyID)
}

func (s *Service) getBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func (s *Service) requireProperty(ctx context.Context, id int64) error {
	ok, err := s.properties.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (s *Service) requireUser(ctx context.Context, id int64) error {
	ok, err := s.users.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func parseRange(startStr, endStr string) (time.Time, time.Time, error) {
	start, err := time.Parse(dateLayout, startStr)
	if err != nil {
		return time.Time{}, time.Time{}, ErrValidation
	}
	end, err := time.Parse(dateLayout, endStr)
	if err != nil {
		return time.Time{}, time.Time{}, ErrValidation
	}
	if nights(start, end) <= 0 {
		return time.Time{}, time.Time{}, ErrValidation
	}
	return start, end, nil
}

func nights(start, end time.Time) int {
	return int(end.Sub(start).Hours() / 24)
}

func totalPrice(nightly float64, start, end time.Time) float64 {
	total := nightly * float64(nights(start, end))
	return math.Round(total*100) / 100
}

// isOverlapError recognizes both the transactional pre-check failure and
// the PostgreSQL exclusion-constraint violation behind it.
func isOverlapError(err error) bool {
	if errors.Is(err, repository.ErrOverlap) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23P01" && pgErr.ConstraintName == "bookings_no_overlap"
	}
	return false
}
