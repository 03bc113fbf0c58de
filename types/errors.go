package types

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when the requested document doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrBadRequest is returned on malformed or incomplete input
	ErrBadRequest = errors.New("bad request")

	// ErrConflict is returned when the resource conflicts (e.g. username already taken)
	ErrConflict = errors.New("conflict")

	// ErrInvalidCredentials is returned when the user directory rejects a login
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrInternal (for unhandled exceptions)
	ErrInternal = errors.New("internal error")
)

// AuthError is returned when the e-signature provider rejects the
// JWT bearer token exchange (invalid key, revoked consent, clock skew)
type AuthError struct {
	StatusCode  int
	Code        string
	Description string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("token exchange failed (%d): %s %s", e.StatusCode, e.Code, e.Description)
}

// EnvelopeError is returned when the e-signature provider rejects an
// envelope or recipient view request
type EnvelopeError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *EnvelopeError) Error() string {
	return fmt.Sprintf("envelope request failed (%d): %s %s", e.StatusCode, e.Code, e.Message)
}
