// Package alerts validates and emits monitoring alerts. Alerts are derived
// notifications: breach checks and deepfake verdicts raise them automatically,
// and clients may create them directly through the API.
package alerts

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"deepguard/internal/models"
	"deepguard/internal/scoring"
)

// metadataSchema bounds what client-supplied alert metadata may contain.
// Flat object, scalar values only. Nested payloads belong in their own
// records, not inside an alert.
const metadataSchema = `{
	"type": "object",
	"maxProperties": 16,
	"additionalProperties": {
		"type": ["string", "number", "boolean"]
	}
}`

// Store is the persistence the service needs. *repository.Alerts satisfies it.
type Store interface {
	Create(ctx context.Context, alert *models.MonitoringAlert) error
}

// Service creates alerts, both client-submitted and derived.
type Service struct {
	store Store
	sink  *WebhookSink
}

// NewService creates the alert service. sink may be nil to disable webhook
// forwarding.
func NewService(store Store, sink *WebhookSink) *Service {
	return &Service{store: store, sink: sink}
}

// forward pushes high and critical alerts to the webhook sink.
func (s *Service) forward(ctx context.Context, alert *models.MonitoringAlert) {
	if s.sink == nil {
		return
	}
	if alert.Severity != models.RiskHigh && alert.Severity != models.RiskCritical {
		return
	}
	s.sink.Publish(ctx, alert)
}

// Create validates and persists a client-submitted alert.
func (s *Service) Create(ctx context.Context, userID uint, req models.CreateAlertRequest) (*models.MonitoringAlert, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	alert := &models.MonitoringAlert{
		UserID:    userID,
		AlertType: req.AlertType,
		Severity:  req.Severity,
		Title:     strings.TrimSpace(req.Title),
		Message:   req.Message,
		Metadata:  req.Metadata,
	}
	if err := s.store.Create(ctx, alert); err != nil {
		return nil, err
	}
	s.forward(ctx, alert)
	return alert, nil
}

// FromBreachCheck raises a security alert for a persisted breach check when
// its risk is high or critical. Lower-risk results stay quiet. Emission is
// best-effort: a failed insert is logged, never surfaced to the caller,
// because the breach check itself already succeeded.
func (s *Service) FromBreachCheck(ctx context.Context, check *models.BreachCheck) {
	if check.RiskLevel != models.RiskHigh && check.RiskLevel != models.RiskCritical {
		return
	}
	alert := &models.MonitoringAlert{
		UserID:    check.UserID,
		AlertType: models.AlertSecurity,
		Severity:  check.RiskLevel,
		Title:     fmt.Sprintf("Breach exposure detected for %s", check.Subject),
		Message: fmt.Sprintf("%s appeared in %d known breach(es). Review the recommended recovery steps.",
			check.Subject, check.TotalBreaches),
		Metadata: models.JSONMap{
			"check_id":       check.ID,
			"subject_type":   string(check.SubjectType),
			"total_breaches": check.TotalBreaches,
		},
	}
	if err := s.store.Create(ctx, alert); err != nil {
		log.Printf("[alerts] Failed to emit breach alert for user %d: %v", check.UserID, err)
		return
	}
	s.forward(ctx, alert)
}

// FromDetection raises a detection alert when an analysis crossed the
// deepfake threshold. Best-effort, same as FromBreachCheck.
func (s *Service) FromDetection(ctx context.Context, result *models.DetectionResult) {
	if !result.IsDeepfake {
		return
	}
	severity := models.RiskHigh
	if result.Score > scoring.HighBandThreshold {
		severity = models.RiskCritical
	}
	alert := &models.MonitoringAlert{
		UserID:    result.UserID,
		AlertType: models.AlertDetection,
		Severity:  severity,
		Title:     "Likely deepfake detected",
		Message:   fmt.Sprintf("Analysis of %s scored %.0f, above the deepfake threshold.", result.SourceRef, result.Score),
		Metadata: models.JSONMap{
			"detection_id": result.ID,
			"score":        result.Score,
			"confidence":   string(result.Confidence),
		},
	}
	if err := s.store.Create(ctx, alert); err != nil {
		log.Printf("[alerts] Failed to emit detection alert for user %d: %v", result.UserID, err)
		return
	}
	s.forward(ctx, alert)
}

func validateRequest(req models.CreateAlertRequest) error {
	switch req.AlertType {
	case models.AlertDetection, models.AlertThreshold, models.AlertSystem, models.AlertSecurity:
	default:
		return fmt.Errorf("%w: unknown alert type %q", models.ErrValidation, req.AlertType)
	}
	switch req.Severity {
	case models.RiskLow, models.RiskMedium, models.RiskHigh, models.RiskCritical:
	default:
		return fmt.Errorf("%w: unknown severity %q", models.ErrValidation, req.Severity)
	}
	if strings.TrimSpace(req.Title) == "" {
		return fmt.Errorf("%w: title is required", models.ErrValidation)
	}
	if req.Metadata != nil {
		if err := validateMetadata(req.Metadata); err != nil {
			return err
		}
	}
	return nil
}

func validateMetadata(metadata models.JSONMap) error {
	doc, err := json.Marshal(metadata)
	if err != nil {
		return fmt.Errorf("%w: metadata is not serializable", models.ErrValidation)
	}
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(metadataSchema),
		gojsonschema.NewBytesLoader(doc),
	)
	if err != nil {
		return fmt.Errorf("%w: metadata validation: %v", models.ErrValidation, err)
	}
	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			details = append(details, e.String())
		}
		return fmt.Errorf("%w: metadata: %s", models.ErrValidation, strings.Join(details, "; "))
	}
	return nil
}
