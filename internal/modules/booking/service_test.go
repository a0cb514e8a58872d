package booking

import (
	"context"
	"testing"
	"time"

	"vacationstay/internal/domain"
	"vacationstay/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// Mock repositories
type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) CountOverlapping(ctx context.Context, propertyID int64, start, end time.Time, excludeID int64) (int64, error) {
	args := m.Called(ctx, propertyID, start, end, excludeID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBookingRepository) CreateIfAvailable(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	if b != nil && args.Error(0) == nil {
		b.ID = 999 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockBookingRepository) UpdateIfAvailable(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetAll(ctx context.Context) ([]domain.Booking, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetByUserID(ctx context.Context, userID int64) ([]domain.Booking, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetByPropertyID(ctx context.Context, propertyID int64) ([]domain.Booking, error) {
	args := m.Called(ctx, propertyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockBookingRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockPropertyGate struct {
	mock.Mock
}

func (m *MockPropertyGate) Exists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockPropertyGate) GetPriceByID(ctx context.Context, id int64) (float64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(float64), args.Error(1)
}

type MockUserGate struct {
	mock.Mock
}

func (m *MockUserGate) Exists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func newTestService() (*Service, *MockBookingRepository, *MockPropertyGate, *MockUserGate) {
	mockBookings := new(MockBookingRepository)
	mockProperties := new(MockPropertyGate)
	mockUsers := new(MockUserGate)
	return NewService(mockBookings, mockProperties, mockUsers), mockBookings, mockProperties, mockUsers
}

func TestService_CreateBooking_Success(t *testing.T) {
	service, mockBookings, mockProperties, mockUsers := newTestService()

	mockProperties.On("Exists", mock.Anything, int64(10)).Return(true, nil)
	mockUsers.On("Exists", mock.Anything, int64(7)).Return(true, nil)
	mockProperties.On("GetPriceByID", mock.Anything, int64(10)).Return(100.0, nil)
	mockBookings.On("CreateIfAvailable", mock.Anything, mock.Anything).Return(nil)

	req := CreateBookingRequest{
		PropertyID: 10,
		StartDate:  "2026-06-01",
		EndDate:    "2026-06-04",
	}

	booking, err := service.CreateBooking(context.Background(), 7, req)

	assert.NoError(t, err)
	assert.NotNil(t, booking)
	assert.Equal(t, 300.0, booking.TotalPrice) // 3 nights x 100
	assert.Equal(t, domain.BookingConfirmed, booking.Status)
	assert.Equal(t, int64(999), booking.ID)
	mockBookings.AssertExpectations(t)
}

func TestService_CreateBooking_Overlap(t *testing.T) {
	service, mockBookings, mockProperties, mockUsers := newTestService()

	mockProperties.On("Exists", mock.Anything, int64(10)).Return(true, nil)
	mockUsers.On("Exists", mock.Anything, int64(7)).Return(true, nil)
	mockProperties.On("GetPriceByID", mock.Anything, int64(10)).Return(100.0, nil)
	mockBookings.On("CreateIfAvailable", mock.Anything, mock.Anything).Return(repository.ErrOverlap)

	// Existing booking Feb 01-05; Feb 03-07 intersects it.
	req := CreateBookingRequest{
		PropertyID: 10,
		StartDate:  "2026-02-03",
		EndDate:    "2026-02-07",
	}

	_, err := service.CreateBooking(context.Background(), 7, req)
	assert.ErrorIs(t, err, ErrNotAvailable)
}

func TestService_CreateBooking_ExclusionConstraint(t *testing.T) {
	service, mockBookings, mockProperties, mockUsers := newTestService()

	mockProperties.On("Exists", mock.Anything, int64(10)).Return(true, nil)
	mockUsers.On("Exists", mock.Anything, int64(7)).Return(true, nil)
	mockProperties.On("GetPriceByID", mock.Anything, int64(10)).Return(100.0, nil)
	mockBookings.On("CreateIfAvailable", mock.Anything, mock.Anything).Return(&pgconn.PgError{
		Code:           "23P01",
		ConstraintName: "bookings_no_overlap",
	})

	req := CreateBookingRequest{
		PropertyID: 10,
		StartDate:  "2026-02-03",
		EndDate:    "2026-02-07",
	}

	_, err := service.CreateBooking(context.Background(), 7, req)
	assert.ErrorIs(t, err, ErrNotAvailable)
}

func TestService_CreateBooking_InvalidRange(t *testing.T) {
	service, _, _, _ := newTestService()

	cases := []struct {
		name  string
		start string
		end   string
	}{
		{"end before start", "2026-02-07", "2026-02-03"},
		{"zero nights", "2026-02-03", "2026-02-03"},
		{"garbage start", "not-a-date", "2026-02-07"},
		{"garbage end", "2026-02-03", "07/02/2026"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := CreateBookingRequest{PropertyID: 10, StartDate: tc.start, EndDate: tc.end}
			_, err := service.CreateBooking(context.Background(), 7, req)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestService_CreateBooking_PropertyNotFound(t *testing.T) {
	service, _, mockProperties, _ := newTestService()

	mockProperties.On("Exists", mock.Anything, int64(404)).Return(false, nil)

	req := CreateBookingRequest{
		PropertyID: 404,
		StartDate:  "2026-06-01",
		EndDate:    "2026-06-04",
	}

	_, err := service.CreateBooking(context.Background(), 7, req)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_CreateBooking_UserNotFound(t *testing.T) {
	service, _, mockProperties, mockUsers := newTestService()

	mockProperties.On("Exists", mock.Anything, int64(10)).Return(true, nil)
	mockUsers.On("Exists", mock.Anything, int64(7)).Return(false, nil)

	req := CreateBookingRequest{
		PropertyID: 10,
		StartDate:  "2026-06-01",
		EndDate:    "2026-06-04",
	}

	_, err := service.CreateBooking(context.Background(), 7, req)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_IsAvailable(t *testing.T) {
	service, mockBookings, _, _ := newTestService()

	start := time.Date(2026, 2, 5, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 2, 8, 0, 0, 0, 0, time.UTC)

	// Feb 05-08 against an existing Feb 01-05: checkout day equals
	// check-in day, the half-open ranges do not intersect.
	mockBookings.On("CountOverlapping", mock.Anything, int64(10), start, end, int64(0)).Return(int64(0), nil)

	ok, err := service.IsAvailable(context.Background(), 10, start, end)

	assert.NoError(t, err)
	assert.True(t, ok)
}

func TestService_IsAvailable_Conflict(t *testing.T) {
	service, mockBookings, _, _ := newTestService()

	start := time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 2, 7, 0, 0, 0, 0, time.UTC)

	mockBookings.On("CountOverlapping", mock.Anything, int64(10), start, end, int64(0)).Return(int64(1), nil)

	ok, err := service.IsAvailable(context.Background(), 10, start, end)

	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestService_CancelBooking_Success(t *testing.T) {
	service, mockBookings, _, _ := newTestService()

	mockBookings.On("GetByID", mock.Anything, int64(123)).Return(&domain.Booking{
		ID:     123,
		Status: domain.BookingConfirmed,
	}, nil)
	mockBookings.On("UpdateStatus", mock.Anything, int64(123), domain.BookingCancelled).Return(nil)

	result, err := service.CancelBooking(context.Background(), 123)

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, result.Status)
	mockBookings.AssertExpectations(t)
}

func TestService_CancelBooking_AlreadyCancelled(t *testing.T) {
	service, mockBookings, _, _ := newTestService()

	mockBookings.On("GetByID", mock.Anything, int64(123)).Return(&domain.Booking{
		ID:     123,
		Status: domain.BookingCancelled,
	}, nil)

	// Re-cancelling succeeds without touching the repository again.
	result, err := service.CancelBooking(context.Background(), 123)

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, result.Status)
	mockBookings.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_CancelBooking_NotFound(t *testing.T) {
	service, mockBookings, _, _ := newTestService()

	mockBookings.On("GetByID", mock.Anything, int64(404)).Return(nil, gorm.ErrRecordNotFound)

	_, err := service.CancelBooking(context.Background(), 404)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_UpdateBooking_SameDatesNoOp(t *testing.T) {
	service, mockBookings, _, _ := newTestService()

	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 6, 4, 0, 0, 0, 0, time.UTC)
	mockBookings.On("GetByID", mock.Anything, int64(123)).Return(&domain.Booking{
		ID:         123,
		PropertyID: 10,
		StartDate:  start,
		EndDate:    end,
		TotalPrice: 300,
		Status:     domain.BookingConfirmed,
	}, nil)

	result, err := service.UpdateBooking(context.Background(), 123, UpdateBookingRequest{
		StartDate: "2026-06-01",
		EndDate:   "2026-06-04",
	})

	assert.NoError(t, err)
	assert.Equal(t, 300.0, result.TotalPrice)
	mockBookings.AssertNotCalled(t, "UpdateIfAvailable", mock.Anything, mock.Anything)
}

func TestService_UpdateBooking_RecomputesPrice(t *testing.T) {
	service, mockBookings, mockProperties, _ := newTestService()

	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 6, 4, 0, 0, 0, 0, time.UTC)
	mockBookings.On("GetByID", mock.Anything, int64(123)).Return(&domain.Booking{
		ID:         123,
		PropertyID: 10,
		StartDate:  start,
		EndDate:    end,
		TotalPrice: 300,
		Status:     domain.BookingConfirmed,
	}, nil)
	mockProperties.On("GetPriceByID", mock.Anything, int64(10)).Return(100.0, nil)
	mockBookings.On("UpdateIfAvailable", mock.Anything, mock.Anything).Return(nil)

	result, err := service.UpdateBooking(context.Background(), 123, UpdateBookingRequest{
		StartDate: "2026-06-01",
		EndDate:   "2026-06-06",
	})

	assert.NoError(t, err)
	assert.Equal(t, 500.0, result.TotalPrice) // 5 nights x 100
	mockBookings.AssertExpectations(t)
}

func TestService_UpdateBooking_Overlap(t *testing.T) {
	service, mockBookings, mockProperties, _ := newTestService()

	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 6, 4, 0, 0, 0, 0, time.UTC)
	mockBookings.On("GetByID", mock.Anything, int64(123)).Return(&domain.Booking{
		ID:         123,
		PropertyID: 10,
		StartDate:  start,
		EndDate:    end,
		Status:     domain.BookingConfirmed,
	}, nil)
	mockProperties.On("GetPriceByID", mock.Anything, int64(10)).Return(100.0, nil)
	mockBookings.On("UpdateIfAvailable", mock.Anything, mock.Anything).Return(repository.ErrOverlap)

	_, err := service.UpdateBooking(context.Background(), 123, UpdateBookingRequest{
		StartDate: "2026-06-03",
		EndDate:   "2026-06-08",
	})

	assert.ErrorIs(t, err, ErrNotAvailable)
}

func TestService_GetBooking_NotFound(t *testing.T) {
	service, mockBookings, _, _ := newTestService()

	mockBookings.On("GetByID", mock.Anything, int64(404)).Return(nil, gorm.ErrRecordNotFound)

	_, err := service.GetBooking(context.Background(), 404)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTotalPrice_Rounding(t *testing.T) {
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 6, 4, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 299.97, totalPrice(99.99, start, end))
	assert.Equal(t, 100.0, totalPrice(33.333333, start, end))
}
