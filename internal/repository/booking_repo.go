package repository

import (
	"context"
	"errors"
	"time"

	"vacationstay/internal/domain"

	"gorm.io/gorm"
)

// ErrOverlap is returned when a create or update would collide with another
// non-cancelled booking of the same property.
var ErrOverlap = errors.New("booking overlaps an existing booking")

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID         int64     `gorm:"column:id;primaryKey"`
	PropertyID int64     `gorm:"column:property_id;index"`
	UserID     int64     `gorm:"column:user_id;index"`
	StartDate  time.Time `gorm:"column:start_date;type:date"`
	EndDate    time.Time `gorm:"column:end_date;type:date"`
	TotalPrice float64   `gorm:"column:total_price"`
	Status     string    `gorm:"column:status"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	return &domain.Booking{
		ID:         m.ID,
		PropertyID: m.PropertyID,
		UserID:     m.UserID,
		StartDate:  m.StartDate,
		EndDate:    m.EndDate,
		TotalPrice: m.TotalPrice,
		Status:     domain.BookingStatus(m.Status),
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	return bookingModel{
		ID:         b.ID,
		PropertyID: b.PropertyID,
		UserID:     b.UserID,
		StartDate:  b.StartDate,
		EndDate:    b.EndDate,
		TotalPrice: b.TotalPrice,
		Status:     string(b.Status),
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}

// CountOverlapping counts non-cancelled bookings of the property whose
// half-open [start_date, end_date) range intersects [start, end). A zero
// excludeID excludes nothing.
func (r *BookingRepository) CountOverlapping(ctx context.Context, propertyID int64, start, end time.Time, excludeID int64) (int64, error) {
	return countOverlapping(r.db.WithContext(ctx), propertyID, start, end, excludeID)
}

func countOverlapping(tx *gorm.DB, propertyID int64, start, end time.Time, excludeID int64) (int64, error) {
	var cnt int64
	q := tx.Model(&bookingModel{}).
		Where("property_id = ?", propertyID).
		Where("status <> ?", string(domain.BookingCancelled)).
		Where("start_date < ? AND end_date > ?", end, start)
	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&cnt).Error; err != nil {
		return 0, err
	}
	return cnt, nil
}

// CreateIfAvailable runs the overlap check and the insert in a single
// transaction and returns ErrOverlap on a collision. On PostgreSQL the
// bookings_no_overlap exclusion constraint is the hard backstop behind the
// check; its violation surfaces through the insert error.
func (r *BookingRepository) CreateIfAvailable(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cnt, err := countOverlapping(tx, b.PropertyID, b.StartDate, b.EndDate, 0)
		if err != nil {
			return err
		}
		if cnt > 0 {
			return ErrOverlap
		}
		return tx.Create(&m).Error
	})
	if err != nil {
		return err
	}
	*b = *toDomainBooking(m)
	return nil
}

// UpdateIfAvailable re-runs the overlap check excluding the booking itself
// before saving, same transaction scope as CreateIfAvailable.
func (r *BookingRepository) UpdateIfAvailable(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cnt, err := countOverlapping(tx, b.PropertyID, b.StartDate, b.EndDate, b.ID)
		if err != nil {
			return err
		}
		if cnt > 0 {
			return ErrOverlap
		}
		return tx.Save(&m).Error
	})
	if err != nil {
		return err
	}
	*b = *toDomainBooking(m)
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return toDomainBooking(m), nil
}

func (r *BookingRepository) GetAll(ctx context.Context) ([]domain.Booking, error) {
	var models []bookingModel
	if err := r.db.WithContext(ctx).Order("id").Find(&models).Error; err != nil {
		return nil, err
	}
	return toDomainBookings(models), nil
}

func (r *BookingRepository) GetByUserID(ctx context.Context, userID int64) ([]domain.Booking, error) {
	var models []bookingModel
	tx := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("start_date").Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBookings(models), nil
}

func (r *BookingRepository) GetByPropertyID(ctx context.Context, propertyID int64) ([]domain.Booking, error) {
	var models []bookingModel
	tx := r.db.WithContext(ctx).Where("property_id = ?", propertyID).Order("start_date").Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBookings(models), nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	return r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("id = ?", id).
		Update("status", string(status)).Error
}

func (r *BookingRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&bookingModel{}, id).Error
}

func toDomainBookings(models []bookingModel) []domain.Booking {
	out := make([]domain.Booking, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainBooking(m))
	}
	return out
}
