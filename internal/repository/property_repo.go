package repository

import (
	"context"
	"strings"
	"time"

	"vacationstay/internal/domain"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PropertyFilters are conjunctive and individually optional: a nil pointer
// (or empty location) means "no constraint", never "match zero".
type PropertyFilters struct {
	Location     string
	MinPrice     *float64
	MaxPrice     *float64
	MinBedrooms  *int
	MinBathrooms *int
	MinGuests    *int
	Limit        int
	Offset       int
}

type PropertyRepository struct {
	db *gorm.DB
}

func NewPropertyRepository(db *gorm.DB) *PropertyRepository {
	return &PropertyRepository{db: db}
}

type propertyModel struct {
	ID          int64                        `gorm:"column:id;primaryKey"`
	Title       string                       `gorm:"column:title"`
	Description string                       `gorm:"column:description;type:text"`
	Location    string                       `gorm:"column:location;index"`
	Price       float64                      `gorm:"column:price"`
	Bedrooms    int                          `gorm:"column:bedrooms"`
	Bathrooms   int                          `gorm:"column:bathrooms"`
	MaxGuests   int                          `gorm:"column:max_guests"`
	Amenities   datatypes.JSONSlice[string]  `gorm:"column:amenities"`
	Images      datatypes.JSONSlice[string]  `gorm:"column:images"`
	OwnerID     int64                        `gorm:"column:owner_id;index"`
	CreatedAt   time.Time                    `gorm:"column:created_at"`
	UpdatedAt   time.Time                    `gorm:"column:updated_at"`
}

func (propertyModel) TableName() string { return "properties" }

func toDomainProperty(m propertyModel) *domain.Property {
	return &domain.Property{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Location:    m.Location,
		Price:       m.Price,
		Bedrooms:    m.Bedrooms,
		Bathrooms:   m.Bathrooms,
		MaxGuests:   m.MaxGuests,
		Amenities:   []string(m.Amenities),
		Images:      []string(m.Images),
		OwnerID:     m.OwnerID,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toPropertyModel(p *domain.Property) propertyModel {
	return propertyModel{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Location:    p.Location,
		Price:       p.Price,
		Bedrooms:    p.Bedrooms,
		Bathrooms:   p.Bathrooms,
		MaxGuests:   p.MaxGuests,
		Amenities:   datatypes.NewJSONSlice(p.Amenities),
		Images:      datatypes.NewJSONSlice(p.Images),
		OwnerID:     p.OwnerID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (r *PropertyRepository) Create(ctx context.Context, p *domain.Property) error {
	m := toPropertyModel(p)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*p = *toDomainProperty(m)
	return nil
}

func (r *PropertyRepository) GetByID(ctx context.Context, id int64) (*domain.Property, error) {
	var m propertyModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return toDomainProperty(m), nil
}

func (r *PropertyRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).Model(&propertyModel{}).Where("id = ?", id).Count(&cnt)
	return cnt > 0, tx.Error
}

// GetPriceByID returns the nightly price without loading the full row.
func (r *PropertyRepository) GetPriceByID(ctx context.Context, id int64) (float64, error) {
	var m propertyModel
	tx := r.db.WithContext(ctx).Select("price").First(&m, id)
	if tx.Error != nil {
		return 0, tx.Error
	}
	return m.Price, nil
}

// GetAll returns properties matching the conjunction of all set filters.
func (r *PropertyRepository) GetAll(ctx context.Context, f PropertyFilters) ([]domain.Property, error) {
	q := r.db.WithContext(ctx).Model(&propertyModel{})

	if f.Location != "" {
		q = q.Where("LOWER(location) LIKE ?", "%"+strings.ToLower(f.Location)+"%")
	}
	if f.MinPrice != nil {
		q = q.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("price <= ?", *f.MaxPrice)
	}
	if f.MinBedrooms != nil {
		q = q.Where("bedrooms >= ?", *f.MinBedrooms)
	}
	if f.MinBathrooms != nil {
		q = q.Where("bathrooms >= ?", *f.MinBathrooms)
	}
	if f.MinGuests != nil {
		q = q.Where("max_guests >= ?", *f.MinGuests)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}

	var models []propertyModel
	if err := q.Order("id").Find(&models).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Property, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainProperty(m))
	}
	return out, nil
}

func (r *PropertyRepository) GetByOwnerID(ctx context.Context, ownerID int64) ([]domain.Property, error) {
	var models []propertyModel
	tx := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("id").
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Property, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainProperty(m))
	}
	return out, nil
}

func (r *PropertyRepository) Update(ctx context.Context, p *domain.Property) error {
	m := toPropertyModel(p)
	if err := r.db.WithContext(ctx).Save(&m).Error; err != nil {
		return err
	}
	*p = *toDomainProperty(m)
	return nil
}

// Delete removes the property and cascades to its bookings and reviews.
func (r *PropertyRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("property_id = ?", id).Delete(&bookingModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("property_id = ?", id).Delete(&reviewModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&propertyModel{}, id).Error
	})
}
