package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"deepguard/internal/models"
)

// NewCreateDetection records a manually submitted detection result.
func NewCreateDetection(detections DetectionStore, notifier DetectionNotifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := UserID(r)
		if !ok {
			writeError(w, models.ErrUnauthorized)
			return
		}

		var req models.CreateDetectionRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, err)
			return
		}

		record, err := detections.Create(r.Context(), userID, req)
		if err != nil {
			writeError(w, err)
			return
		}
		notifier.FromDetection(r.Context(), record)

		log.Printf("[detections] User %d created detection %d", userID, record.ID)
		writeJSON(w, http.StatusCreated, record)
	}
}

// NewListDetections lists the caller's detection records, newest first.
func NewListDetections(detections DetectionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := UserID(r)
		if !ok {
			writeError(w, models.ErrUnauthorized)
			return
		}

		records, err := detections.List(r.Context(), userID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, records)
	}
}

// NewGetDetection fetches one owned detection record by ID.
func NewGetDetection(detections DetectionStore) http.HandlerFunc {
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

		record, err := detections.Get(r.Context(), userID, id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, record)
	}
}

// NewUpdateDetection applies a partial update. The score change re-derives
// the verdict fields; the source reference never changes.
func NewUpdateDetection(detections DetectionStore) http.HandlerFunc {
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

		var req models.UpdateDetectionRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, err)
			return
		}

		record, err := detections.Update(r.Context(), userID, id, req)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, record)
	}
}

// NewDeleteDetection removes one owned detection record.
func NewDeleteDetection(detections DetectionStore) http.HandlerFunc {
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

		if err := detections.Delete(r.Context(), userID, id); err != nil {
			writeError(w, err)
			return
		}
		log.Printf("[detections] User %d deleted detection %d", userID, id)
		w.WriteHeader(http.StatusNoContent)
	}
}

// pathID parses the {id} path value.
func pathID(r *http.Request) (uint, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: invalid id %q", models.ErrValidation, raw)
	}
	return uint(id), nil
}
