package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"deepguard/internal/ai"
	"deepguard/internal/models"
)

// URLAnalyzer runs the model-backed deepfake analysis. *ai.Analyzer
// satisfies it.
type URLAnalyzer interface {
	AnalyzeURL(ctx context.Context, url string) (*ai.Analysis, error)
}

// DetectionStore is the detection persistence handlers need.
// *repository.Detections satisfies it.
type DetectionStore interface {
	Create(ctx context.Context, userID uint, req models.CreateDetectionRequest) (*models.DetectionResult, error)
	Get(ctx context.Context, userID, id uint) (*models.DetectionResult, error)
	Update(ctx context.Context, userID, id uint, req models.UpdateDetectionRequest) (*models.DetectionResult, error)
	Delete(ctx context.Context, userID, id uint) error
	List(ctx context.Context, userID uint) ([]models.DetectionResult, error)
}

// UsageCharger meters credit consumption. *repository.Usage satisfies it.
type UsageCharger interface {
	Charge(ctx context.Context, userID uint, action string, credits int) error
}

// DetectionNotifier emits alerts for deepfake verdicts. *alerts.Service
// satisfies it.
type DetectionNotifier interface {
	FromDetection(ctx context.Context, result *models.DetectionResult)
}

// NewAnalyzeURL returns the authenticated analyze endpoint.
//
// Flow: charge a credit, run the analysis, persist the detection record,
// emit an alert if the score crossed the threshold. A quota rejection stops
// the request before any provider call is made.
func NewAnalyzeURL(analyzer URLAnalyzer, detections DetectionStore, usage UsageCharger, notifier DetectionNotifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := UserID(r)
		if !ok {
			writeError(w, models.ErrUnauthorized)
			return
		}

		var req models.AnalyzeURLRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, err)
			return
		}

		if err := usage.Charge(r.Context(), userID, "analyze_url", 1); err != nil {
			writeError(w, err)
			return
		}

		analysis, err := analyzer.AnalyzeURL(r.Context(), req.URL)
		if err != nil {
			writeError(w, err)
			return
		}

		record, err := detections.Create(r.Context(), userID, models.CreateDetectionRequest{
			SourceRef:    analysis.URL,
			Score:        analysis.Score,
			Details:      analysis.Details,
			ProcessingMS: analysis.ProcessingMS,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		notifier.FromDetection(r.Context(), record)

		log.Printf("[analyze] User %d analyzed %s: score=%.0f", userID, analysis.URL, analysis.Score)
		writeJSON(w, http.StatusOK, models.AnalyzeURLResponse{
			ID: record.ID,
			Result: models.AnalysisResult{
				Score:      record.Score,
				IsDeepfake: record.IsDeepfake,
				Confidence: record.Confidence,
				Details:    record.Details,
			},
			ProcessingTime: record.ProcessingMS,
		})
	}
}

// NewAnalyzeURLPublic returns the unauthenticated analyze endpoint. Results
// are wrapped in a success envelope and nothing is persisted; anonymous
// callers have no record to own. Authenticated callers hitting this endpoint
// are treated the same way.
func NewAnalyzeURLPublic(analyzer URLAnalyzer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.AnalyzeURLRequest
		if err := decodeJSON(r, &req); err != nil {
			writePublicError(w, http.StatusBadRequest, "invalid request", err)
			return
		}

		analysis, err := analyzer.AnalyzeURL(r.Context(), req.URL)
		if err != nil {
			status := http.StatusBadGateway
			message := "analysis unavailable"
			if errors.Is(err, models.ErrValidation) {
				status = http.StatusBadRequest
				message = "invalid request"
			}
			writePublicError(w, status, message, err)
			return
		}

		writeJSON(w, http.StatusOK, models.PublicAnalyzeResponse{
			Success: true,
			Result: &models.AnalysisResult{
				Score:      analysis.Score,
				IsDeepfake: analysis.IsDeepfake,
				Confidence: analysis.Confidence,
				Details:    analysis.Details,
			},
			ProcessingTime: analysis.ProcessingMS,
			Timestamp:      time.Now().UTC(),
		})
	}
}

func writePublicError(w http.ResponseWriter, status int, message string, err error) {
	writeJSON(w, status, models.PublicAnalyzeResponse{
		Success:   false,
		Timestamp: time.Now().UTC(),
		Error:     message,
		Details:   err.Error(),
	})
}
