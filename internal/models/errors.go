package models

import "errors"

// Sentinel errors shared across services, repositories, and handlers.
// The HTTP layer maps them to status codes with errors.Is.
var (
	// ErrValidation marks malformed input (e.g. score outside [0,100]).
	ErrValidation = errors.New("validation error")

	// ErrNotFound marks an unknown or foreign-owned record id.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized marks a missing or invalid credential.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrLookupFailed marks an unreachable or errored external dependency.
	// A failed lookup must never be reported as a negative finding.
	ErrLookupFailed = errors.New("lookup failed")

	// ErrPersistence marks a storage read/write failure.
	ErrPersistence = errors.New("persistence error")

	// ErrQuotaExceeded marks an exhausted credit allotment for the billing period.
	ErrQuotaExceeded = errors.New("credit quota exceeded")
)
