// Package common defines shared constants and sentinel errors used across
// client and server layers of taskvault. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Validation errors (malformed email, weak password, empty input).
	ErrorValidation = errors.New("validation error")

	// Login with an unknown email or a wrong password. Deliberately a single
	// value so responses cannot be used to enumerate accounts.
	ErrorInvalidCredentials = errors.New("invalid credentials")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
)
