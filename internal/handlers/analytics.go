package handlers

import (
	"context"
	"net/http"
	"strconv"

	"deepguard/internal/analytics"
	"deepguard/internal/models"
)

// Aggregator computes dashboard aggregates. *analytics.Aggregator satisfies it.
type Aggregator interface {
	Summary(ctx context.Context, userID uint) analytics.Summary
	Trends(ctx context.Context, userID uint, days int) analytics.TrendSeries
}

// maxTrendDays bounds the trend window; wider ranges belong in exports, not
// a dashboard chart.
const maxTrendDays = 90

// NewAnalyticsSummary returns the dashboard summary endpoint. Degraded
// summaries still return 200; the envelope's status field tells the client
// the numbers are incomplete.
func NewAnalyticsSummary(agg Aggregator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := UserID(r)
		if !ok {
			writeError(w, models.ErrUnauthorized)
			return
		}
		writeJSON(w, http.StatusOK, agg.Summary(r.Context(), userID))
	}
}

// NewAnalyticsTrends returns the daily trend series endpoint.
// `?days=N` selects the window, default 7, capped at 90. Like the summary,
// a degraded series still returns 200 with its status field set.
func NewAnalyticsTrends(agg Aggregator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := UserID(r)
		if !ok {
			writeError(w, models.ErrUnauthorized)
			return
		}

		days := 7
		if raw := r.URL.Query().Get("days"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 1 || parsed > maxTrendDays {
				writeJSON(w, http.StatusBadRequest, map[string]string{
					"error": "days must be an integer between 1 and 90",
				})
				return
			}
			days = parsed
		}

		writeJSON(w, http.StatusOK, agg.Trends(r.Context(), userID, days))
	}
}
