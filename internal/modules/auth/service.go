package auth

import (
	"context"
	"errors"
	"strings"

	"vacationstay/internal/domain"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type jwtService interface {
	GenerateToken(userID int64, role string) (string, error)
}

// Service contains registration, login and OAuth sign-in logic. Every
// operation takes the caller's identity explicitly; nothing is read from
// ambient state.
type Service struct {
	users UserRepositoryInterface
	jwt   jwtService
}

type LoginResult struct {
	User  *domain.User
	Token string
}

func NewService(users UserRepositoryInterface, jwt jwtService) *Service {
	return &Service{users: users, jwt: jwt}
}

func (s *Service) Register(ctx context.Context, req RegisterRequest) (*LoginResult, error) {
	email := normalizeEmail(req.Email)
	if err := s.validateEmailUnique(ctx, email); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hash),
		Provider:     domain.ProviderLocal,
		Roles:        []string{domain.RoleUser},
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.issueToken(user)
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	// OAuth-only accounts have no password hash and cannot log in locally.
	if user.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueToken(user)
}

// LoginWithProvider upserts the provider-verified profile: match by
// (provider, provider id) first, then link by email, otherwise create a
// password-less account. Always issues the same JWT as local login.
func (s *Service) LoginWithProvider(ctx context.Context, req OAuthLoginRequest) (*LoginResult, error) {
	provider := strings.ToLower(strings.TrimSpace(req.Provider))
	if provider == "" || provider == string(domain.ProviderLocal) {
		return nil, ErrValidation
	}

	user, err := s.users.GetByProvider(ctx, provider, req.ProviderID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if user == nil {
		user, err = s.linkOrCreateProviderUser(ctx, provider, req)
		if err != nil {
			return nil, err
		}
	}

	return s.issueToken(user)
}

func (s *Service) GetCurrentUser(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

func (s *Service) UpdateProfile(ctx context.Context, userID int64, req UpdateProfileRequest) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.AvatarURL != "" {
		user.AvatarURL = req.AvatarURL
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *Service) linkOrCreateProviderUser(ctx context.Context, provider string, req OAuthLoginRequest) (*domain.User, error) {
	email := normalizeEmail(req.Email)

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if existing != nil {
		existing.Provider = domain.AuthProvider(provider)
		existing.ProviderID = req.ProviderID
		if existing.AvatarURL == "" {
			existing.AvatarURL = req.AvatarURL
		}
		if err := s.users.Update(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	user := &domain.User{
		Name:       req.Name,
		Email:      email,
		Provider:   domain.AuthProvider(provider),
		ProviderID: req.ProviderID,
		AvatarURL:  req.AvatarURL,
		Roles:      []string{domain.RoleUser},
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Service) issueToken(user *domain.User) (*LoginResult, error) {
	role := domain.RoleUser
	if user.HasRole(domain.RoleAdmin) {
		role = domain.RoleAdmin
	}

	token, err := s.jwt.GenerateToken(user.ID, role)
	if err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return &LoginResult{User: user, Token: token}, nil
}

func (s *Service) validateEmailUnique(ctx context.Context, email string) error {
	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return err
	}
	if exists {
		return ErrEmailAlreadyExists
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
