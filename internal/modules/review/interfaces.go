package review

import (
	"context"

	"vacationstay/internal/domain"
)

type ReviewRepositoryInterface interface {
	Create(ctx context.Context, rv *domain.Review) error
	GetByID(ctx context.Context, id int64) (*domain.Review, error)
	GetByPropertyID(ctx context.Context, propertyID int64) ([]domain.Review, error)
	GetByUserID(ctx context.Context, userID int64) ([]domain.Review, error)
	Update(ctx context.Context, rv *domain.Review) error
	Delete(ctx context.Context, id int64) error
	AverageRatingForProperty(ctx context.Context, propertyID int64) (*float64, error)
	CountByProperty(ctx context.Context, propertyID int64) (int64, error)
}

type PropertyGate interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

type UserGate interface {
	Exists(ctx context.Context, id int64) (bool, error)
}
