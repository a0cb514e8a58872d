package auth

import (
	"context"

	"vacationstay/internal/domain"
)

// UserRepositoryInterface — only the methods the auth service uses.
type UserRepositoryInterface interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByProvider(ctx context.Context, provider, providerID string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, u *domain.User) error
}
