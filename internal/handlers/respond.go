// Package handlers exposes the HTTP surface: URL analysis, breach lookups,
// detection records, alerts, analytics and payments. Handlers are built by
// constructor functions that close over their dependencies.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"deepguard/internal/models"
)

const maxBodyBytes = 1 << 20

// writeJSON writes a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("[http] Failed to write response body: %v", err)
	}
}

// writeError maps a service error onto an HTTP status and a JSON error body.
// Lookup failures are distinct from bad requests on purpose: a failed
// provider call is the server's problem, not the client's. Server-side
// failures (502/500) carry the wrapped cause in a separate details field so
// clients can log it without parsing the error label.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	label := "internal error"
	switch {
	case errors.Is(err, models.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, models.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, models.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, models.ErrQuotaExceeded):
		status = http.StatusTooManyRequests
	case errors.Is(err, models.ErrLookupFailed):
		status = http.StatusBadGateway
		label = models.ErrLookupFailed.Error()
	case errors.Is(err, models.ErrPersistence):
		status = http.StatusInternalServerError
		label = models.ErrPersistence.Error()
	}
	if status >= http.StatusInternalServerError {
		writeJSON(w, status, map[string]string{"error": label, "details": err.Error()})
		return
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// decodeJSON strictly decodes a request body into dst.
func decodeJSON(r *http.Request, dst interface{}) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: reading request body", models.ErrValidation)
	}
	if len(body) == 0 {
		return fmt.Errorf("%w: request body is required", models.ErrValidation)
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("%w: invalid JSON body", models.ErrValidation)
	}
	return nil
}
