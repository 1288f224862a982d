package auth

import "errors"

// Common authentication service errors
var (
	// ErrMalformedToken indicates the token is not a structurally valid JWT.
	ErrMalformedToken = errors.New("malformed authentication token")

	// ErrInvalidSignature indicates the token signature does not match the
	// server secret, or the token was signed with an unexpected method.
	ErrInvalidSignature = errors.New("authentication token signature is invalid")

	// ErrExpiredToken indicates the token has expired.
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrMissingToken indicates a token was expected but not provided.
	ErrMissingToken = errors.New("authentication token is missing")

	// ErrInvalidCredentials indicates a login attempt with a wrong email or
	// password. Deliberately does not distinguish the two cases.
	ErrInvalidCredentials = errors.New("invalid email or password")
)
