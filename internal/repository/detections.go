// Package repository implements persistence for DeepGuard records on gorm.
// Every mutation is a round trip; there is deliberately no in-memory cache.
package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"deepguard/internal/models"
	"deepguard/internal/scoring"
)

// Detections is the detection record store.
type Detections struct {
	db *gorm.DB
}

// NewDetections creates a detection record store on the given handle.
func NewDetections(db *gorm.DB) *Detections {
	return &Detections{db: db}
}

// Create persists a new detection result for the owner. The derived fields
// (is_deepfake, confidence) are recomputed from the score here, regardless of
// what the caller set on the struct.
func (r *Detections) Create(ctx context.Context, userID uint, req models.CreateDetectionRequest) (*models.DetectionResult, error) {
	if !scoring.ValidScore(req.Score) {
		return nil, fmt.Errorf("score %.2f outside [0,100]: %w", req.Score, models.ErrValidation)
	}
	if req.SourceRef == "" {
		return nil, fmt.Errorf("source_ref is required: %w", models.ErrValidation)
	}

	isDeepfake, band := scoring.Derive(req.Score)
	record := models.DetectionResult{
		UserID:       userID,
		SourceRef:    req.SourceRef,
		Score:        req.Score,
		IsDeepfake:   isDeepfake,
		Confidence:   band,
		Details:      req.Details,
		ProcessingMS: req.ProcessingMS,
	}

	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, fmt.Errorf("create detection: %w: %v", models.ErrPersistence, err)
	}
	return &record, nil
}

// Get returns a detection by id, scoped to its owner.
func (r *Detections) Get(ctx context.Context, userID, id uint) (*models.DetectionResult, error) {
	var record models.DetectionResult
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("detection %d: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get detection %d: %w: %v", id, models.ErrPersistence, err)
	}
	return &record, nil
}

// Update applies a partial update. When the score changes, the derived fields
// are recomputed so they can never drift from it. SourceRef is immutable.
func (r *Detections) Update(ctx context.Context, userID, id uint, req models.UpdateDetectionRequest) (*models.DetectionResult, error) {
	record, err := r.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.Score != nil {
		if !scoring.ValidScore(*req.Score) {
			return nil, fmt.Errorf("score %.2f outside [0,100]: %w", *req.Score, models.ErrValidation)
		}
		record.Score = *req.Score
		record.IsDeepfake, record.Confidence = scoring.Derive(*req.Score)
	}
	if req.Details != nil {
		record.Details = req.Details
	}
	if req.ProcessingMS != nil {
		record.ProcessingMS = *req.ProcessingMS
	}

	if err := r.db.WithContext(ctx).Save(record).Error; err != nil {
		return nil, fmt.Errorf("update detection %d: %w: %v", id, models.ErrPersistence, err)
	}
	return record, nil
}

// Delete removes a detection by id, scoped to its owner.
func (r *Detections) Delete(ctx context.Context, userID, id uint) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.DetectionResult{})
	if res.Error != nil {
		return fmt.Errorf("delete detection %d: %w: %v", id, models.ErrPersistence, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("detection %d: %w", id, models.ErrNotFound)
	}
	return nil
}

// List returns the owner's detections, newest first.
func (r *Detections) List(ctx context.Context, userID uint) ([]models.DetectionResult, error) {
	var records []models.DetectionResult
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("list detections: %w: %v", models.ErrPersistence, err)
	}
	return records, nil
}
