// File: internal/profile/repository.go
package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"krikins_backend/internal/common"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines the interface for profile data operations.
type Repository interface {
	Create(ctx context.Context, profile *Profile) error
	FindByID(ctx context.Context, id uuid.UUID) (*Profile, error)
	FindAll(ctx context.Context) ([]Profile, error)
	Update(ctx context.Context, profile *Profile) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByImageURLContaining(ctx context.Context, fragment string) (int64, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM profile repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

// Create inserts a new profile row.
func (r *gormRepository) Create(ctx context.Context, profile *Profile) error {
	if err := r.db.WithContext(ctx).Create(profile).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "unique constraint") {
			return common.ErrConflict.WithDetails("A profile with this identifier already exists.")
		}
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

// FindByID retrieves a profile by its identifier.
func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*Profile, error) {
	var profile Profile
	err := r.db.WithContext(ctx).First(&profile, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Profile not found.")
		}
		return nil, err
	}
	return &profile, nil
}

// FindAll retrieves every profile ordered by creation time, newest first.
func (r *gormRepository) FindAll(ctx context.Context) ([]Profile, error) {
	var profiles []Profile
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&profiles).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	return profiles, nil
}

// Update replaces an existing profile row wholesale.
func (r *gormRepository) Update(ctx context.Context, profile *Profile) error {
	result := r.db.WithContext(ctx).Model(&Profile{}).Where("id = ?", profile.ID).Updates(map[string]interface{}{
		"name":           profile.Name,
		"role":           profile.Role,
		"age":            profile.Age,
		"nationality":    profile.Nationality,
		"id_number":      profile.IDNumber,
		"event_name":     profile.EventName,
		"image_url":      profile.ImageURL,
		"image_position": profile.ImagePosition,
		"languages":      profile.Languages,
		"experience":     profile.Experience,
		"email":          profile.Email,
		"mobile":         profile.Mobile,
		"theme":          profile.Theme,
	})
	if result.Error != nil {
		return fmt.Errorf("failed to update profile: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return common.ErrNotFound.WithDetails("Profile not found.")
	}
	return nil
}

// Delete permanently removes a profile row.
func (r *gormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&Profile{BaseModel: common.BaseModel{ID: id}})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return common.ErrNotFound.WithDetails("Profile not found or already deleted.")
	}
	return nil
}

// CountByImageURLContaining counts profiles whose image URL contains the given
// fragment. The upload cleanup job uses it to spot orphaned stored files.
func (r *gormRepository) CountByImageURLContaining(ctx context.Context, fragment string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Profile{}).
		Where("image_url LIKE ?", "%"+fragment+"%").
		Count(&count).Error
	return count, err
}
