package auth

import "errors"

// Common authentication service errors
var (
	// ErrInvalidToken indicates the token format is invalid or signature doesn't match
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token has expired
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrMissingToken indicates a token was expected but not provided,
	// or the Authorization header did not carry the Bearer scheme
	ErrMissingToken = errors.New("authentication token is missing")

	// ErrHashFailed indicates the password hashing primitive itself failed
	ErrHashFailed = errors.New("password hashing failed")
)
