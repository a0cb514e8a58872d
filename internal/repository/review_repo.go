package repository

import (
	"context"
	"database/sql"
	"time"

	"vacationstay/internal/domain"

	"gorm.io/gorm"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

type reviewModel struct {
	ID         int64     `gorm:"column:id;primaryKey"`
	PropertyID int64     `gorm:"column:property_id;index"`
	UserID     int64     `gorm:"column:user_id;index"`
	Rating     int       `gorm:"column:rating"`
	Comment    string    `gorm:"column:comment;type:text"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (reviewModel) TableName() string { return "reviews" }

func toDomainReview(m reviewModel) *domain.Review {
	return &domain.Review{
		ID:         m.ID,
		PropertyID: m.PropertyID,
		UserID:     m.UserID,
		Rating:     m.Rating,
		Comment:    m.Comment,
		CreatedAt:  m.CreatedAt,
	}
}

func (r *ReviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	m := reviewModel{
		PropertyID: rv.PropertyID,
		UserID:     rv.UserID,
		Rating:     rv.Rating,
		Comment:    rv.Comment,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*rv = *toDomainReview(m)
	return nil
}

func (r *ReviewRepository) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	var m reviewModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return toDomainReview(m), nil
}

func (r *ReviewRepository) GetByPropertyID(ctx context.Context, propertyID int64) ([]domain.Review, error) {
	var models []reviewModel
	tx := r.db.WithContext(ctx).
		Where("property_id = ?", propertyID).
		Order("created_at DESC").
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainReviews(models), nil
}

func (r *ReviewRepository) GetByUserID(ctx context.Context, userID int64) ([]domain.Review, error) {
	var models []reviewModel
	tx := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainReviews(models), nil
}

func (r *ReviewRepository) Update(ctx context.Context, rv *domain.Review) error {
	return r.db.WithContext(ctx).
		Model(&reviewModel{}).
		Where("id = ?", rv.ID).
		Updates(map[string]any{"rating": rv.Rating, "comment": rv.Comment}).Error
}

func (r *ReviewRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&reviewModel{}, id).Error
}

// AverageRatingForProperty computes the mean rating at read time. A nil
// result means the property has no reviews, which callers must keep
// distinguishable from an average of 0.
func (r *ReviewRepository) AverageRatingForProperty(ctx context.Context, propertyID int64) (*float64, error) {
	var avg sql.NullFloat64
	tx := r.db.WithContext(ctx).
		Model(&reviewModel{}).
		Where("property_id = ?", propertyID).
		Select("AVG(rating)").
		Scan(&avg)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if !avg.Valid {
		return nil, nil
	}
	v := avg.Float64
	return &v, nil
}

func (r *ReviewRepository) CountByProperty(ctx context.Context, propertyID int64) (int64, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).
		Model(&reviewModel{}).
		Where("property_id = ?", propertyID).
		Count(&cnt)
	return cnt, tx.Error
}

func toDomainReviews(models []reviewModel) []domain.Review {
	out := make([]domain.Review, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainReview(m))
	}
	return out
}
