package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"deepguard/internal/models"
)

// APIKeys resolves API keys to their owning users.
type APIKeys struct {
	db *gorm.DB
}

// NewAPIKeys creates an API key store on the given handle.
func NewAPIKeys(db *gorm.DB) *APIKeys {
	return &APIKeys{db: db}
}

// Resolve returns the user id behind an active key, or ErrUnauthorized.
func (r *APIKeys) Resolve(ctx context.Context, key string) (uint, error) {
	if key == "" {
		return 0, models.ErrUnauthorized
	}

	var record models.APIKey
	err := r.db.WithContext(ctx).
		Where("key = ? AND is_active = ?", key, true).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, models.ErrUnauthorized
	}
	if err != nil {
		return 0, fmt.Errorf("resolve api key: %w: %v", models.ErrPersistence, err)
	}
	return record.UserID, nil
}
