package auth

import (
	"context"
	"testing"

	"vacationstay/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	if u != nil && args.Error(0) == nil {
		u.ID = 777 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByProvider(ctx context.Context, provider, providerID string) (*domain.User, error) {
	args := m.Called(ctx, provider, providerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

type mockJWT struct{}

func (mockJWT) GenerateToken(userID int64, role string) (string, error) {
	return "test-token", nil
}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(h)
}

func TestService_Register_Success(t *testing.T) {
	mockUsers := new(MockUserRepository)
	service := NewService(mockUsers, mockJWT{})

	mockUsers.On("ExistsByEmail", mock.Anything, "jane@example.com").Return(false, nil)
	mockUsers.On("Create", mock.Anything, mock.Anything).Return(nil)

	result, err := service.Register(context.Background(), RegisterRequest{
		Name:     "Jane",
		Email:    "  Jane@Example.COM ",
		Password: "secret123",
	})

	assert.NoError(t, err)
	assert.Equal(t, "test-token", result.Token)
	assert.Equal(t, "jane@example.com", result.User.Email) // normalized
	assert.Equal(t, domain.ProviderLocal, result.User.Provider)
	assert.Empty(t, result.User.PasswordHash)
	mockUsers.AssertExpectations(t)
}

func TestService_Register_DuplicateEmail(t *testing.T) {
	mockUsers := new(MockUserRepository)
	service := NewService(mockUsers, mockJWT{})

	mockUsers.On("ExistsByEmail", mock.Anything, "jane@example.com").Return(true, nil)

	_, err := service.Register(context.Background(), RegisterRequest{
		Name:     "Jane",
		Email:    "jane@example.com",
		Password: "secret123",
	})

	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	mockUsers.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Login_Success(t *testing.T) {
	mockUsers := new(MockUserRepository)
	service := NewService(mockUsers, mockJWT{})

	mockUsers.On("GetByEmail", mock.Anything, "jane@example.com").Return(&domain.User{
		ID:           7,
		Email:        "jane@example.com",
		PasswordHash: hashOf(t, "secret123"),
		Roles:        []string{domain.RoleUser},
	}, nil)

	result, err := service.Login(context.Background(), LoginRequest{
		Email:    "jane@example.com",
		Password: "secret123",
	})

	assert.NoError(t, err)
	assert.Equal(t, "test-token", result.Token)
	assert.Empty(t, result.User.PasswordHash)
}

func TestService_Login_WrongPassword(t *testing.T) {
	mockUsers := new(MockUserRepository)
	service := NewService(mockUsers, mockJWT{})

	mockUsers.On("GetByEmail", mock.Anything, "jane@example.com").Return(&domain.User{
		ID:           7,
		Email:        "jane@example.com",
		PasswordHash: hashOf(t, "secret123"),
	}, nil)

	_, err := service.Login(context.Background(), LoginRequest{
		Email:    "jane@example.com",
		Password: "wrong",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_Login_UnknownEmail(t *testing.T) {
	mockUsers := new(MockUserRepository)
	service := NewService(mockUsers, mockJWT{})

	mockUsers.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, gorm.ErrRecordNotFound)

	_, err := service.Login(context.Background(), LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_Login_OAuthOnlyAccount(t *testing.T) {
	mockUsers := new(MockUserRepository)
	service := NewService(mockUsers, mockJWT{})

	// Account created through a provider has no password hash.
	mockUsers.On("GetByEmail", mock.Anything, "jane@example.com").Return(&domain.User{
		ID:       7,
		Email:    "jane@example.com",
		Provider: domain.ProviderGoogle,
	}, nil)

	_, err := service.Login(context.Background(), LoginRequest{
		Email:    "jane@example.com",
		Password: "anything",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_LoginWithProvider_ExistingProviderIdentity(t *testing.T) {
	mockUsers := new(MockUserRepository)
	service := NewService(mockUsers, mockJWT{})

	mockUsers.On("GetByProvider", mock.Anything, "google", "g-123").Return(&domain.User{
		ID:       7,
		Email:    "jane@example.com",
		Provider: domain.ProviderGoogle,
		Roles:    []string{domain.RoleUser},
	}, nil)

	result, err := service.LoginWithProvider(context.Background(), OAuthLoginRequest{
		Provider:   "Google",
		ProviderID: "g-123",
		Email:      "jane@example.com",
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(7), result.User.ID)
	mockUsers.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_LoginWithProvider_LinksByEmail(t *testing.T) {
	mockUsers := new(MockUserRepository)
	service := NewService(mockUsers, mockJWT{})

	mockUsers.On("GetByProvider", mock.Anything, "google", "g-123").Return(nil, gorm.ErrRecordNotFound)
	mockUsers.On("GetByEmail", mock.Anything, "jane@example.com").Return(&domain.User{
		ID:       7,
		Email:    "jane@example.com",
		Provider: domain.ProviderLocal,
	}, nil)
	mockUsers.On("Update", mock.Anything, mock.Anything).Return(nil)

	result, err := service.LoginWithProvider(context.Background(), OAuthLoginRequest{
		Provider:   "google",
		ProviderID: "g-123",
		Email:      "jane@example.com",
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.ProviderGoogle, result.User.Provider)
	assert.Equal(t, "g-123", result.User.ProviderID)
	mockUsers.AssertExpectations(t)
}

func TestService_LoginWithProvider_CreatesAccount(t *testing.T) {
	mockUsers := new(MockUserRepository)
	service := NewService(mockUsers, mockJWT{})

	mockUsers.On("GetByProvider", mock.Anything, "github", "gh-9").Return(nil, gorm.ErrRecordNotFound)
	mockUsers.On("GetByEmail", mock.Anything, "dev@example.com").Return(nil, gorm.ErrRecordNotFound)
	mockUsers.On("Create", mock.Anything, mock.Anything).Return(nil)

	result, err := service.LoginWithProvider(context.Background(), OAuthLoginRequest{
		Provider:   "github",
		ProviderID: "gh-9",
		Email:      "dev@example.com",
		Name:       "Dev",
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(777), result.User.ID)
	assert.Empty(t, result.User.PasswordHash)
	mockUsers.AssertExpectations(t)
}

func TestService_LoginWithProvider_RejectsLocal(t *testing.T) {
	service := NewService(new(MockUserRepository), mockJWT{})

	_, err := service.LoginWithProvider(context.Background(), OAuthLoginRequest{
		Provider:   "local",
		ProviderID: "x",
		Email:      "jane@example.com",
	})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_IssueToken_AdminRole(t *testing.T) {
	mockUsers := new(MockUserRepository)
	service := NewService(mockUsers, mockJWT{})

	mockUsers.On("GetByEmail", mock.Anything, "root@example.com").Return(&domain.User{
		ID:           1,
		Email:        "root@example.com",
		PasswordHash: hashOf(t, "adminpass"),
		Roles:        []string{domain.RoleUser, domain.RoleAdmin},
	}, nil)

	result, err := service.Login(context.Background(), LoginRequest{
		Email:    "root@example.com",
		Password: "adminpass",
	})

	assert.NoError(t, err)
	assert.True(t, result.User.HasRole(domain.RoleAdmin))
}
