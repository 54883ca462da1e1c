package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"deepguard/internal/models"
)

// BreachChecks stores breach lookup outcomes.
type BreachChecks struct {
	db *gorm.DB
}

// NewBreachChecks creates a breach check store on the given handle.
func NewBreachChecks(db *gorm.DB) *BreachChecks {
	return &BreachChecks{db: db}
}

// Create persists one lookup outcome.
func (r *BreachChecks) Create(ctx context.Context, check *models.BreachCheck) error {
	if err := r.db.WithContext(ctx).Create(check).Error; err != nil {
		return fmt.Errorf("create breach check: %w: %v", models.ErrPersistence, err)
	}
	return nil
}

// List returns the owner's breach checks, newest first.
func (r *BreachChecks) List(ctx context.Context, userID uint) ([]models.BreachCheck, error) {
	var checks []models.BreachCheck
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&checks).Error
	if err != nil {
		return nil, fmt.Errorf("list breach checks: %w: %v", models.ErrPersistence, err)
	}
	return checks, nil
}
