package property

import (
	"context"

	"vacationstay/internal/domain"
	"vacationstay/internal/repository"
)

type PropertyRepositoryInterface interface {
	Create(ctx context.Context, p *domain.Property) error
	GetByID(ctx context.Context, id int64) (*domain.Property, error)
	GetAll(ctx context.Context, f repository.PropertyFilters) ([]domain.Property, error)
	GetByOwnerID(ctx context.Context, ownerID int64) ([]domain.Property, error)
	Update(ctx context.Context, p *domain.Property) error
	Delete(ctx context.Context, id int64) error
}

// RatingReader supplies the review aggregates stitched into property
// read models.
type RatingReader interface {
	AverageRatingForProperty(ctx context.Context, propertyID int64) (*float64, error)
	CountByProperty(ctx context.Context, propertyID int64) (int64, error)
}

// UserGate confirms the supplied principal corresponds to a stored user.
type UserGate interface {
	Exists(ctx context.Context, id int64) (bool, error)
}
