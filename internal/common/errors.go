// Package common defines shared constants and sentinel errors used across
// the server, transports and client. Callers should use errors.Is to match
// these values; producers wrap them with fmt.Errorf("...: %w", ...).
package common

import "errors"

var (
	// Request validation errors.
	ErrInvalidInput = errors.New("invalid input")

	// Registration and login errors.
	ErrEmailAlreadyInUse  = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid email or password")

	// Token validation errors.
	ErrTokenMalformed        = errors.New("token is malformed")
	ErrTokenExpired          = errors.New("token expired")
	ErrTokenInvalidSignature = errors.New("token signature is invalid")

	// Authorization errors (valid token, insufficient role).
	ErrForbidden = errors.New("forbidden")

	// Store errors.
	ErrStoreUnavailable = errors.New("user store unavailable")
)

// IsTokenError reports whether err is one of the token validation errors.
func IsTokenError(err error) bool {
	return errors.Is(err, ErrTokenMalformed) ||
		errors.Is(err, ErrTokenExpired) ||
		errors.Is(err, ErrTokenInvalidSignature)
}
