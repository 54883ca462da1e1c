package handlers

import (
	"context"
	"log"
	"net/http"

	"deepguard/internal/models"
)

// BreachChecker runs breach lookups. *breach.Service satisfies it.
type BreachChecker interface {
	CheckEmail(ctx context.Context, userID uint, email string) (*models.BreachDetectionResult, error)
	CheckPhone(ctx context.Context, userID uint, phone string) (*models.BreachDetectionResult, error)
}

// NewCheckEmail returns the email breach lookup endpoint. A provider outage
// surfaces as 502, never as a clean result.
func NewCheckEmail(checker BreachChecker, usage UsageCharger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := UserID(r)
		if !ok {
			writeError(w, models.ErrUnauthorized)
			return
		}

		var req models.BreachLookupRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, err)
			return
		}

		if err := usage.Charge(r.Context(), userID, "breach_check_email", 1); err != nil {
			writeError(w, err)
			return
		}

		result, err := checker.CheckEmail(r.Context(), userID, req.Email)
		if err != nil {
			writeError(w, err)
			return
		}

		log.Printf("[breach] User %d checked email: breached=%t risk=%s", userID, result.IsBreached, result.RiskLevel)
		writeJSON(w, http.StatusOK, result)
	}
}

// NewCheckPhone returns the phone breach lookup endpoint.
func NewCheckPhone(checker BreachChecker, usage UsageCharger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := UserID(r)
		if !ok {
			writeError(w, models.ErrUnauthorized)
			return
		}

		var req models.BreachLookupRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, err)
			return
		}

		if err := usage.Charge(r.Context(), userID, "breach_check_phone", 1); err != nil {
			writeError(w, err)
			return
		}

		result, err := checker.CheckPhone(r.Context(), userID, req.Phone)
		if err != nil {
			writeError(w, err)
			return
		}

		log.Printf("[breach] User %d checked phone: breached=%t risk=%s", userID, result.IsBreached, result.RiskLevel)
		writeJSON(w, http.StatusOK, result)
	}
}
