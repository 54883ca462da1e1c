package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"deepguard/internal/models"
)

// Alerts is the monitoring alert store.
type Alerts struct {
	db *gorm.DB
}

// NewAlerts creates an alert store on the given handle.
func NewAlerts(db *gorm.DB) *Alerts {
	return &Alerts{db: db}
}

// Create persists a new alert for the owner.
func (r *Alerts) Create(ctx context.Context, alert *models.MonitoringAlert) error {
	if err := r.db.WithContext(ctx).Create(alert).Error; err != nil {
		return fmt.Errorf("create alert: %w: %v", models.ErrPersistence, err)
	}
	return nil
}

// List returns the owner's alerts, newest first.
func (r *Alerts) List(ctx context.Context, userID uint) ([]models.MonitoringAlert, error) {
	var alerts []models.MonitoringAlert
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&alerts).Error
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w: %v", models.ErrPersistence, err)
	}
	return alerts, nil
}

// MarkRead flags one alert as read, scoped to its owner.
func (r *Alerts) MarkRead(ctx context.Context, userID, id uint) error {
	res := r.db.WithContext(ctx).
		Model(&models.MonitoringAlert{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("read", true)
	if res.Error != nil {
		return fmt.Errorf("mark alert %d read: %w: %v", id, models.ErrPersistence, res.Error)
	}
	if res.RowsAffected == 0 {
		// Distinguish "unknown id" from "already read".
		var exists int64
		r.db.WithContext(ctx).
			Model(&models.MonitoringAlert{}).
			Where("id = ? AND user_id = ?", id, userID).
			Count(&exists)
		if exists == 0 {
			return fmt.Errorf("alert %d: %w", id, models.ErrNotFound)
		}
	}
	return nil
}

// MarkAllRead flags every unread alert for the owner in a single UPDATE.
// An alert created concurrently may stay unread; that is permitted. The
// statement itself is atomic, so no update is lost.
func (r *Alerts) MarkAllRead(ctx context.Context, userID uint) error {
	err := r.db.WithContext(ctx).
		Model(&models.MonitoringAlert{}).
		Where("user_id = ? AND read = ?", userID, false).
		Update("read", true).Error
	if err != nil {
		return fmt.Errorf("mark all alerts read: %w: %v", models.ErrPersistence, err)
	}
	return nil
}

// UnreadCount counts the owner's alerts with read=false.
func (r *Alerts) UnreadCount(ctx context.Context, userID uint) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.MonitoringAlert{}).
		Where("user_id = ? AND read = ?", userID, false).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count unread alerts: %w: %v", models.ErrPersistence, err)
	}
	return int(count), nil
}

// Get returns one alert by id, scoped to its owner.
func (r *Alerts) Get(ctx context.Context, userID, id uint) (*models.MonitoringAlert, error) {
	var alert models.MonitoringAlert
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&alert).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("alert %d: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get alert %d: %w: %v", id, models.ErrPersistence, err)
	}
	return &alert, nil
}
