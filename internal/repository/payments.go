package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"deepguard/internal/models"
)

// Payments stores gateway transactions and the user plans they settle into.
type Payments struct {
	db *gorm.DB
}

// NewPayments creates a payment store on the given handle.
func NewPayments(db *gorm.DB) *Payments {
	return &Payments{db: db}
}

// CreateTransaction records a freshly initialized (pending) transaction.
func (r *Payments) CreateTransaction(ctx context.Context, tx *models.PaymentTransaction) error {
	if err := r.db.WithContext(ctx).Create(tx).Error; err != nil {
		return fmt.Errorf("create transaction: %w: %v", models.ErrPersistence, err)
	}
	return nil
}

// GetTransaction returns a transaction by its gateway reference.
func (r *Payments) GetTransaction(ctx context.Context, reference string) (*models.PaymentTransaction, error) {
	var tx models.PaymentTransaction
	err := r.db.WithContext(ctx).
		Where("reference = ?", reference).
		First(&tx).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("transaction %s: %w", reference, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get transaction %s: %w: %v", reference, models.ErrPersistence, err)
	}
	return &tx, nil
}

// SettleTransaction updates the transaction status and stores the raw
// gateway verification payload for audit.
func (r *Payments) SettleTransaction(ctx context.Context, reference, status string, gatewayResponse models.JSONMap) error {
	res := r.db.WithContext(ctx).
		Model(&models.PaymentTransaction{}).
		Where("reference = ?", reference).
		Updates(map[string]interface{}{
			"status":           status,
			"gateway_response": gatewayResponse,
		})
	if res.Error != nil {
		return fmt.Errorf("settle transaction %s: %w: %v", reference, models.ErrPersistence, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("transaction %s: %w", reference, models.ErrNotFound)
	}
	return nil
}

// UpsertPlan activates (or refreshes) the user's plan with the credit quota
// for its tier and resets the used counter for the new billing period.
func (r *Payments) UpsertPlan(ctx context.Context, userID uint, plan models.Plan) (*models.UserPlan, error) {
	renews := time.Now().AddDate(0, 1, 0)
	record := models.UserPlan{
		UserID:       userID,
		Plan:         plan,
		CreditsLimit: models.CreditsForPlan(plan),
		CreditsUsed:  0,
		RenewsAt:     &renews,
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"plan", "credits_limit", "credits_used", "renews_at", "updated_at"}),
	}).Create(&record).Error
	if err != nil {
		return nil, fmt.Errorf("upsert plan for user %d: %w: %v", userID, models.ErrPersistence, err)
	}
	return &record, nil
}

// GetPlan returns the user's active plan, or a default free plan when none
// has been stored yet.
func (r *Payments) GetPlan(ctx context.Context, userID uint) (*models.UserPlan, error) {
	var plan models.UserPlan
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&plan).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.UserPlan{
			UserID:       userID,
			Plan:         models.PlanFree,
			CreditsLimit: models.CreditsForPlan(models.PlanFree),
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get plan for user %d: %w: %v", userID, models.ErrPersistence, err)
	}
	return &plan, nil
}
