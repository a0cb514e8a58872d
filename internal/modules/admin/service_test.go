package admin

import (
	"context"
	"testing"

	"vacationstay/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) List(ctx context.Context, limit, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockBookingReader struct {
	mock.Mock
}

func (m *MockBookingReader) GetAll(ctx context.Context) ([]domain.Booking, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingReader) GetByUserID(ctx context.Context, userID int64) ([]domain.Booking, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func TestService_ListUsers_DefaultsPaging(t *testing.T) {
	mockUsers := new(MockUserRepository)
	service := NewService(mockUsers, new(MockBookingReader))

	mockUsers.On("List", mock.Anything, 20, 0).Return([]domain.User{{ID: 1}, {ID: 2}}, nil)

	users, err := service.ListUsers(context.Background(), 0, 0)

	assert.NoError(t, err)
	assert.Len(t, users, 2)
	mockUsers.AssertExpectations(t)
}

func TestService_ListUsers_PageOffset(t *testing.T) {
	mockUsers := new(MockUserRepository)
	service := NewService(mockUsers, new(MockBookingReader))

	mockUsers.On("List", mock.Anything, 10, 20).Return([]domain.User{}, nil)

	_, err := service.ListUsers(context.Background(), 3, 10)

	assert.NoError(t, err)
	mockUsers.AssertExpectations(t)
}

func TestService_DeleteUser_NotFound(t *testing.T) {
	mockUsers := new(MockUserRepository)
	service := NewService(mockUsers, new(MockBookingReader))

	mockUsers.On("GetByID", mock.Anything, int64(404)).Return(nil, gorm.ErrRecordNotFound)

	err := service.DeleteUser(context.Background(), 404)
	assert.ErrorIs(t, err, ErrNotFound)
	mockUsers.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestService_DeleteUser_Success(t *testing.T) {
	mockUsers := new(MockUserRepository)
	service := NewService(mockUsers, new(MockBookingReader))

	mockUsers.On("GetByID", mock.Anything, int64(7)).Return(&domain.User{ID: 7}, nil)
	mockUsers.On("Delete", mock.Anything, int64(7)).Return(nil)

	err := service.DeleteUser(context.Background(), 7)

	assert.NoError(t, err)
	mockUsers.AssertExpectations(t)
}

func TestService_ListUserBookings(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockBookings := new(MockBookingReader)
	service := NewService(mockUsers, mockBookings)

	mockUsers.On("GetByID", mock.Anything, int64(7)).Return(&domain.User{ID: 7}, nil)
	mockBookings.On("GetByUserID", mock.Anything, int64(7)).Return([]domain.Booking{{ID: 1}}, nil)

	items, err := service.ListUserBookings(context.Background(), 7)

	assert.NoError(t, err)
	assert.Len(t, items, 1)
}
