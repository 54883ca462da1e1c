package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"deepguard/internal/models"
)

// Usage meters credit consumption against the owner's plan.
type Usage struct {
	db *gorm.DB
}

// NewUsage creates a usage store on the given handle.
func NewUsage(db *gorm.DB) *Usage {
	return &Usage{db: db}
}

// Charge spends credits for an action. It increments the plan counter and
// appends a usage log row in one transaction; when the quota is exhausted it
// returns ErrQuotaExceeded and records nothing.
func (r *Usage) Charge(ctx context.Context, userID uint, action string, credits int) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Row lock so two concurrent charges cannot both read the same
		// counter and overspend the quota.
		var plan models.UserPlan
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", userID).First(&plan).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// First metered call for this user: start them on the free tier.
			plan = models.UserPlan{
				UserID:       userID,
				Plan:         models.PlanFree,
				CreditsLimit: models.CreditsForPlan(models.PlanFree),
			}
			if err := tx.Create(&plan).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		if plan.CreditsUsed+credits > plan.CreditsLimit {
			return models.ErrQuotaExceeded
		}

		if err := tx.Model(&models.UserPlan{}).
			Where("id = ?", plan.ID).
			Update("credits_used", gorm.Expr("credits_used + ?", credits)).Error; err != nil {
			return err
		}

		return tx.Create(&models.UsageLog{
			UserID:       userID,
			Action:       action,
			CreditsSpent: credits,
		}).Error
	})

	if errors.Is(err, models.ErrQuotaExceeded) {
		return err
	}
	if err != nil {
		return fmt.Errorf("charge usage: %w: %v", models.ErrPersistence, err)
	}
	return nil
}

// History returns the owner's usage log, newest first.
func (r *Usage) History(ctx context.Context, userID uint) ([]models.UsageLog, error) {
	var logs []models.UsageLog
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&logs).Error
	if err != nil {
		return nil, fmt.Errorf("usage history: %w: %v", models.ErrPersistence, err)
	}
	return logs, nil
}
