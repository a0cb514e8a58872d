package review

import (
	"context"
	"errors"

	"vacationstay/internal/domain"

	"gorm.io/gorm"
)

type Service struct {
	reviews    ReviewRepositoryInterface
	properties PropertyGate
	users      UserGate
}

func NewService(reviews ReviewRepositoryInterface, properties PropertyGate, users UserGate) *Service {
	return &Service{
		reviews:    reviews,
		properties: properties,
		users:      users,
	}
}

// Create stores a review after confirming the property and the author
// exist. The rating bound is re-checked here so callers that bypass
// request binding still cannot store an out-of-range value.
func (s *Service) Create(ctx context.Context, propertyID, userID int64, req CreateReviewRequest) (*domain.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrValidation
	}

	if err := s.requireProperty(ctx, propertyID); err != nil {
		return nil, err
	}
	ok, err := s.users.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}

	rv := &domain.Review{
		PropertyID: propertyID,
		UserID:     userID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}
	if err := s.reviews.Create(ctx, rv); err != nil {
		return nil, err
	}
	return rv, nil
}

func (s *Service) GetByProperty(ctx context.Context, propertyID int64) ([]domain.Review, error) {
	if err := s.requireProperty(ctx, propertyID); err != nil {
		return nil, err
	}
	return s.reviews.GetByPropertyID(ctx, propertyID)
}

func (s *Service) GetByUser(ctx context.Context, userID int64) ([]domain.Review, error) {
	return s.reviews.GetByUserID(ctx, userID)
}

// RatingForProperty returns the live aggregate; nil average means the
// property has no reviews yet.
func (s *Service) RatingForProperty(ctx context.Context, propertyID int64) (*PropertyRatingResponse, error) {
	if err := s.requireProperty(ctx, propertyID); err != nil {
		return nil, err
	}

	avg, err := s.reviews.AverageRatingForProperty(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	count, err := s.reviews.CountByProperty(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	return &PropertyRatingResponse{
		PropertyID:    propertyID,
		AverageRating: avg,
		ReviewCount:   count,
	}, nil
}

func (s *Service) Update(ctx context.Context, id, callerID int64, callerRole string, req UpdateReviewRequest) (*domain.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrValidation
	}

	rv, err := s.getReview(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireAuthorship(rv, callerID, callerRole); err != nil {
		return nil, err
	}

	rv.Rating = req.Rating
	rv.Comment = req.Comment
	if err := s.reviews.Update(ctx, rv); err != nil {
		return nil, err
	}
	return rv, nil
}

func (s *Service) Delete(ctx context.Context, id, callerID int64, callerRole string) error {
	rv, err := s.getReview(ctx, id)
	if err != nil {
		return err
	}
	if err := requireAuthorship(rv, callerID, callerRole); err != nil {
		return err
	}
	return s.reviews.Delete(ctx, id)
}

func (s *Service) getReview(ctx context.Context, id int64) (*domain.Review, error) {
	rv, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return rv, nil
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

func requireAuthorship(rv *domain.Review, callerID int64, callerRole string) error {
	if rv.UserID == callerID || callerRole == domain.RoleAdmin {
		return nil
	}
	return ErrForbidden
}
