package repository

import (
	"context"
	"strings"
	"time"

	"vacationstay/internal/domain"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

type userModel struct {
	ID           int64     `gorm:"column:id;primaryKey"`
	Name         string    `gorm:"column:name"`
	Email        string    `gorm:"column:email;uniqueIndex"`
	PasswordHash string    `gorm:"column:password_hash"`
	Provider     string    `gorm:"column:provider"`
	ProviderID   *string   `gorm:"column:provider_id"`
	AvatarURL    *string   `gorm:"column:avatar_url"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (userModel) TableName() string { return "users" }

// userRoleModel is the role-membership side table: one row per role string.
type userRoleModel struct {
	ID     int64  `gorm:"column:id;primaryKey"`
	UserID int64  `gorm:"column:user_id;index"`
	Role   string `gorm:"column:role"`
}

func (userRoleModel) TableName() string { return "user_roles" }

func toDomainUser(m userModel, roles []string) *domain.User {
	var providerID, avatar string
	if m.ProviderID != nil {
		providerID = *m.ProviderID
	}
	if m.AvatarURL != nil {
		avatar = *m.AvatarURL
	}

	return &domain.User{
		ID:           m.ID,
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Provider:     domain.AuthProvider(m.Provider),
		ProviderID:   providerID,
		AvatarURL:    avatar,
		Roles:        roles,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toUserModel(u *domain.User) userModel {
	var providerID, avatar *string
	if u.ProviderID != "" {
		v := u.ProviderID
		providerID = &v
	}
	if u.AvatarURL != "" {
		v := u.AvatarURL
		avatar = &v
	}

	return userModel{
		ID:           u.ID,
		Name:         u.Name,
		Email:        strings.ToLower(strings.TrimSpace(u.Email)),
		PasswordHash: u.PasswordHash,
		Provider:     string(u.Provider),
		ProviderID:   providerID,
		AvatarURL:    avatar,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

// Create inserts the user and its role rows in one transaction.
func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	m := toUserModel(u)
	roles := u.Roles
	if len(roles) == 0 {
		roles = []string{domain.RoleUser}
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		for _, role := range roles {
			if err := tx.Create(&userRoleModel{UserID: m.ID, Role: role}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	*u = *toDomainUser(m, roles)
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var m userModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	roles, err := r.rolesFor(ctx, m.ID)
	if err != nil {
		return nil, err
	}
	return toDomainUser(m, roles), nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var m userModel
	tx := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	roles, err := r.rolesFor(ctx, m.ID)
	if err != nil {
		return nil, err
	}
	return toDomainUser(m, roles), nil
}

func (r *UserRepository) GetByProvider(ctx context.Context, provider, providerID string) (*domain.User, error) {
	var m userModel
	tx := r.db.WithContext(ctx).
		Where("provider = ? AND provider_id = ?", provider, providerID).
		First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	roles, err := r.rolesFor(ctx, m.ID)
	if err != nil {
		return nil, err
	}
	return toDomainUser(m, roles), nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).
		Model(&userModel{}).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		Count(&cnt)
	return cnt > 0, tx.Error
}

func (r *UserRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).Model(&userModel{}).Where("id = ?", id).Count(&cnt)
	return cnt > 0, tx.Error
}

func (r *UserRepository) Update(ctx context.Context, u *domain.User) error {
	m := toUserModel(u)
	return r.db.WithContext(ctx).Save(&m).Error
}

func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]domain.User, error) {
	var models []userModel
	q := r.db.WithContext(ctx).Order("id")
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}
	if err := q.Find(&models).Error; err != nil {
		return nil, err
	}

	out := make([]domain.User, 0, len(models))
	for _, m := range models {
		roles, err := r.rolesFor(ctx, m.ID)
		if err != nil {
			return nil, err
		}
		u := toDomainUser(m, roles)
		out = append(out, *u)
	}
	return out, nil
}

// Delete removes the user together with its owned bookings, reviews and
// role rows.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&bookingModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&reviewModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&userRoleModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&userModel{}, id).Error
	})
}

func (r *UserRepository) rolesFor(ctx context.Context, userID int64) ([]string, error) {
	var roles []string
	tx := r.db.WithContext(ctx).
		Model(&userRoleModel{}).
		Where("user_id = ?", userID).
		Order("id").
		Pluck("role", &roles)
	return roles, tx.Error
}
