package property

import (
	"context"
	"errors"

	"vacationstay/internal/domain"
	"vacationstay/internal/repository"

	"gorm.io/gorm"
)

type Service struct {
	properties PropertyRepositoryInterface
	ratings    RatingReader
	users      UserGate
}

func NewService(properties PropertyRepositoryInterface, ratings RatingReader, users UserGate) *Service {
	return &Service{properties: properties, ratings: ratings, users: users}
}

// Create persists a listing owned by the supplied principal. A token for
// an identity with no stored user (deleted account) is rejected with
// NotFound so no dangling owner reference can be written.
func (s *Service) Create(ctx context.Context, ownerID int64, req CreatePropertyRequest) (*PropertyResponse, error) {
	if err := s.requireUser(ctx, ownerID); err != nil {
		return nil, err
	}

	p := &domain.Property{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Price:       req.Price,
		Bedrooms:    req.Bedrooms,
		Bathrooms:   req.Bathrooms,
		MaxGuests:   req.MaxGuests,
		Amenities:   req.Amenities,
		Images:      req.Images,
		OwnerID:     ownerID,
	}

	if err := s.properties.Create(ctx, p); err != nil {
		return nil, err
	}

	resp := toPropertyResponse(p, nil, 0)
	return &resp, nil
}

// Get assembles the read model, computing the review aggregate at read
// time so the rating never goes stale.
func (s *Service) Get(ctx context.Context, id int64) (*PropertyResponse, error) {
	p, err := s.getProperty(ctx, id)
	if err != nil {
		return nil, err
	}

	avg, count, err := s.ratingFor(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := toPropertyResponse(p, avg, count)
	return &resp, nil
}

// List applies the search filters conjunctively; an absent filter does
// not constrain the result.
func (s *Service) List(ctx context.Context, f repository.PropertyFilters) ([]PropertyResponse, error) {
	items, err := s.properties.GetAll(ctx, f)
	if err != nil {
		return nil, err
	}
	return s.toResponses(ctx, items)
}

func (s *Service) ListByOwner(ctx context.Context, ownerID int64) ([]PropertyResponse, error) {
	items, err := s.properties.GetByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return s.toResponses(ctx, items)
}

func (s *Service) Update(ctx context.Context, id, callerID int64, callerRole string, req UpdatePropertyRequest) (*PropertyResponse, error) {
	if err := s.requireUser(ctx, callerID); err != nil {
		return nil, err
	}

	p, err := s.getProperty(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireOwnership(p, callerID, callerRole); err != nil {
		return nil, err
	}

	p.Title = req.Title
	p.Description = req.Description
	p.Location = req.Location
	p.Price = req.Price
	p.Bedrooms = req.Bedrooms
	p.Bathrooms = req.Bathrooms
	p.MaxGuests = req.MaxGuests
	p.Amenities = req.Amenities
	p.Images = req.Images

	if err := s.properties.Update(ctx, p); err != nil {
		return nil, err
	}

	avg, count, err := s.ratingFor(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toPropertyResponse(p, avg, count)
	return &resp, nil
}

// Delete removes the property and, through the repository, its bookings
// and reviews.
func (s *Service) Delete(ctx context.Context, id, callerID int64, callerRole string) error {
	if err := s.requireUser(ctx, callerID); err != nil {
		return err
	}

	p, err := s.getProperty(ctx, id)
	if err != nil {
		return err
	}
	if err := requireOwnership(p, callerID, callerRole); err != nil {
		return err
	}
	return s.properties.Delete(ctx, id)
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

func (s *Service) getProperty(ctx context.Context, id int64) (*domain.Property, error) {
	p, err := s.properties.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *Service) ratingFor(ctx context.Context, propertyID int64) (*float64, int64, error) {
	avg, err := s.ratings.AverageRatingForProperty(ctx, propertyID)
	if err != nil {
		return nil, 0, err
	}
	count, err := s.ratings.CountByProperty(ctx, propertyID)
	if err != nil {
		return nil, 0, err
	}
	return avg, count, nil
}

func (s *Service) toResponses(ctx context.Context, items []domain.Property) ([]PropertyResponse, error) {
	out := make([]PropertyResponse, 0, len(items))
	for i := range items {
		avg, count, err := s.ratingFor(ctx, items[i].ID)
		if err != nil {
			return nil, err
		}
		out = append(out, toPropertyResponse(&items[i], avg, count))
	}
	return out, nil
}

func requireOwnership(p *domain.Property, callerID int64, callerRole string) error {
	if p.OwnerID == callerID || callerRole == domain.RoleAdmin {
		return nil
	}
	return ErrForbidden
}

func toPropertyResponse(p *domain.Property, avg *float64, reviewCount int64) PropertyResponse {
	return PropertyResponse{
		ID:            p.ID,
		Title:         p.Title,
		Description:   p.Description,
		Location:      p.Location,
		Price:         p.Price,
		Bedrooms:      p.Bedrooms,
		Bathrooms:     p.Bathrooms,
		MaxGuests:     p.MaxGuests,
		Amenities:     p.Amenities,
		Images:        p.Images,
		OwnerID:       p.OwnerID,
		AverageRating: avg,
		ReviewCount:   reviewCount,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
