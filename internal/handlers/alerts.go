package handlers

import (
	"context"
	"net/http"

	"deepguard/internal/models"
)

// AlertCreator validates and persists client-submitted alerts.
// *alerts.Service satisfies it.
type AlertCreator interface {
	Create(ctx context.Context, userID uint, req models.CreateAlertRequest) (*models.MonitoringAlert, error)
}

// AlertStore is the alert persistence handlers read from.
// *repository.Alerts satisfies it.
type AlertStore interface {
	List(ctx context.Context, userID uint) ([]models.MonitoringAlert, error)
	Get(ctx context.Context, userID, id uint) (*models.MonitoringAlert, error)
	MarkRead(ctx context.Context, userID, id uint) error
	MarkAllRead(ctx context.Context, userID uint) error
	UnreadCount(ctx context.Context, userID uint) (int, error)
}

// NewCreateAlert returns the manual alert creation endpoint.
func NewCreateAlert(creator AlertCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := UserID(r)
		if !ok {
			writeError(w, models.ErrUnauthorized)
			return
		}

		var req models.CreateAlertRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, err)
			return
		}

		alert, err := creator.Create(r.Context(), userID, req)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, alert)
	}
}

// NewListAlerts lists the caller's alerts, newest first, with the unread
// count alongside so clients render a badge without a second request.
func NewListAlerts(store AlertStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := UserID(r)
		if !ok {
			writeError(w, models.ErrUnauthorized)
			return
		}

		alerts, err := store.List(r.Context(), userID)
		if err != nil {
			writeError(w, err)
			return
		}
		unread, err := store.UnreadCount(r.Context(), userID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"alerts": alerts,
			"unread": unread,
		})
	}
}

// NewUnreadAlertCount returns just the unread badge count.
func NewUnreadAlertCount(store AlertStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := UserID(r)
		if !ok {
			writeError(w, models.ErrUnauthorized)
			return
		}

		unread, err := store.UnreadCount(r.Context(), userID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]int{"unread": unread})
	}
}

// NewGetAlert fetches one owned alert by ID.
func NewGetAlert(store AlertStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := UserID(r)
		if !ok {
			writeError(w, models.ErrUnauthorized)
			return
		}
		id, err := pathID(r)
		if err != nil {
			writeError(w, err)
			return
		}

		alert, err := store.Get(r.Context(), userID, id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, alert)
	}
}

// NewMarkAlertRead marks one alert read. Re-marking an already read alert is
// a no-op success.
func NewMarkAlertRead(store AlertStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := UserID(r)
		if !ok {
			writeError(w, models.ErrUnauthorized)
			return
		}
		id, err := pathID(r)
		if err != nil {
			writeError(w, err)
			return
		}

		if err := store.MarkRead(r.Context(), userID, id); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"read": true})
	}
}

// NewMarkAllAlertsRead marks every unread alert read in one statement.
func NewMarkAllAlertsRead(store AlertStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := UserID(r)
		if !ok {
			writeError(w, models.ErrUnauthorized)
			return
		}

		if err := store.MarkAllRead(r.Context(), userID); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"read": true})
	}
}
