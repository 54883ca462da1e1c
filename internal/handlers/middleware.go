package handlers

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log"
	"net/http"

	"deepguard/internal/models"
)

type contextKey string

const userIDKey contextKey = "deepguard.user_id"

// KeyResolver maps an API key to its owner. *repository.APIKeys satisfies it.
type KeyResolver interface {
	Resolve(ctx context.Context, key string) (uint, error)
}

// UserID returns the authenticated owner from the request context.
func UserID(r *http.Request) (uint, bool) {
	id, ok := r.Context().Value(userIDKey).(uint)
	return id, ok
}

// RequireAPIKey authenticates requests by X-API-Key and stores the resolved
// owner in the request context. Missing or unknown keys get 401.
func RequireAPIKey(resolver KeyResolver, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get("X-API-Key")
		userID, err := resolver.Resolve(r.Context(), key)
		if err != nil {
			log.Printf("[auth] Rejected %s %s: %v", r.Method, r.URL.Path, err)
			writeError(w, fmt.Errorf("%w: valid X-API-Key header required", models.ErrUnauthorized))
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userIDKey, userID)))
	})
}

// OptionalAPIKey resolves X-API-Key when present but lets anonymous requests
// through. Used by the public analyze endpoint.
func OptionalAPIKey(resolver KeyResolver, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if key := r.Header.Get("X-API-Key"); key != "" {
			if userID, err := resolver.Resolve(r.Context(), key); err == nil {
				r = r.WithContext(context.WithValue(r.Context(), userIDKey, userID))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdminKey guards operational endpoints with the static admin key.
func RequireAdminKey(adminKey string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		provided := r.Header.Get("X-ADMIN-KEY")
		if adminKey == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(adminKey)) != 1 {
			writeError(w, fmt.Errorf("%w: admin key required", models.ErrUnauthorized))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// CORS adds permissive cross-origin headers and answers preflights.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-API-Key, X-ADMIN-KEY")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
