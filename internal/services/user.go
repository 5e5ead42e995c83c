package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/diewo77/faktury/internal/models"
)

// UserService manages the business owner profile.
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// Primary returns the active owner profile: the row flagged primary,
// or the lowest id when no row carries the flag. ErrNotFound when the table is empty.
func (s *UserService) Primary(ctx context.Context) (*models.User, error) {
	var u models.User
	err := s.db.WithContext(ctx).Order("is_primary DESC").Order("id").Take(&u).Error
	if err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

// Create inserts a profile. The first profile becomes the primary one.
func (s *UserService) Create(ctx context.Context, u *models.User) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var primaries int64
		if err := tx.Model(&models.User{}).Where("is_primary = ?", true).Count(&primaries).Error; err != nil {
			return fmt.Errorf("count primary profiles: %w", err)
		}
		u.IsPrimary = primaries == 0
		if err := tx.Create(u).Error; err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		return nil
	})
}

// Update overwrites the editable fields of the profile with the given id.
func (s *UserService) Update(ctx context.Context, id uint, f models.ProfileFields) error {
	err := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(f.Columns()).Error
	if err != nil {
		return fmt.Errorf("update user %d: %w", id, err)
	}
	return nil
}
