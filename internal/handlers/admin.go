package handlers

import (
	"log"
	"net/http"

	"deepguard/internal/cache"
)

// NewAdminFlushCache returns the operational endpoint that drops cached
// breach lookups. Used after a provider data refresh so stale verdicts do
// not linger for the full TTL.
func NewAdminFlushCache(store *cache.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			writeJSON(w, http.StatusOK, map[string]string{"status": "no cache configured"})
			return
		}
		store.Clear(r.Context(), cache.KeyBreachPrefix)
		log.Printf("[admin] Flushed breach lookup cache")
		writeJSON(w, http.StatusOK, map[string]string{"status": "cache flushed"})
	}
}
