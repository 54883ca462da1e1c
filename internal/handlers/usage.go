package handlers

import (
	"context"
	"net/http"

	"deepguard/internal/models"
)

// UsageReader returns the caller's metered usage log. *repository.Usage
// satisfies it.
type UsageReader interface {
	History(ctx context.Context, userID uint) ([]models.UsageLog, error)
}

// NewUsageHistory returns the usage log endpoint, newest entries first.
func NewUsageHistory(usage UsageReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := UserID(r)
		if !ok {
			writeError(w, models.ErrUnauthorized)
			return
		}

		logs, err := usage.History(r.Context(), userID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"usage": logs,
			"count": len(logs),
		})
	}
}
