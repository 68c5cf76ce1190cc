// Package common defines shared constants and sentinel errors used across
// the server layers of Odyssey. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")

	// Auth errors. Unknown user and wrong password share ErrInvalidCredentials.
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrRegistrationDisabled = errors.New("registration disabled")
	ErrUsernameTaken        = errors.New("username taken")

	// Token errors. Never surfaced to clients; Verify collapses them.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// Client input errors.
	ErrValidation = errors.New("validation error")

	// Enrichment errors. Internal only: logged and counted.
	ErrEnrichment     = errors.New("enrichment failed")
	ErrNoGeocodeMatch = errors.New("no geocoding match")
)
