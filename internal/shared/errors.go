package shared

import "errors"

// Sentinel errors shared across repositories, services and handlers.
// Handlers map these to HTTP status codes with errors.Is.
var (
	// common errors
	ErrNotFound = errors.New("not found")

	// registration errors
	ErrUsernameTaken = errors.New("username already registered")
	ErrEmailTaken    = errors.New("email already registered")

	// auth-specific errors
	ErrInvalidCredentials = errors.New("incorrect username or password")
	ErrInvalidToken       = errors.New("invalid token")

	// ownership errors
	ErrNotOwner = errors.New("not enough permissions")
)
