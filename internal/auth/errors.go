package auth

import "errors"

// Verification errors. Each rejection reason gets its own variant so the
// verifier can collect them for audit logging and handlers can map the
// terminal ErrUnauthorized to an HTTP outcome.
var (
	// ErrNotAttempted means the request did not carry the fields a
	// strategy needs, so the strategy was skipped rather than failed.
	ErrNotAttempted = errors.New("verification not attempted: required fields absent")

	ErrMalformedInitData   = errors.New("init data is not a valid query string")
	ErrMissingHash         = errors.New("init data has no hash field")
	ErrHashMismatch        = errors.New("init data hash mismatch")
	ErrBadUserPayload      = errors.New("init data user payload is missing or invalid")
	ErrSecretNotConfigured = errors.New("legacy score secret is not configured")
	ErrSignatureMismatch   = errors.New("legacy signature mismatch")

	// ErrUnauthorized is returned when no strategy authenticated the request.
	ErrUnauthorized = errors.New("score submission failed verification")
)
