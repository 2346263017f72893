package api

import (
	"errors"
	"net/http"

	"github.com/ghlaw/taskdesk/internal/domain"
	"github.com/ghlaw/taskdesk/internal/service/auth"
	"github.com/ghlaw/taskdesk/internal/store"
)

// domainValidationErrors lists the domain sentinels that represent bad
// client input rather than server faults.
var domainValidationErrors = []error{
	domain.ErrEmptyTitle,
	domain.ErrTitleTooLong,
	domain.ErrEmptyCategory,
	domain.ErrEmptyAssignee,
	domain.ErrInvalidPriority,
	domain.ErrInvalidStatus,
	domain.ErrEmptyEmail,
	domain.ErrInvalidEmail,
	domain.ErrEmptyName,
	domain.ErrInvalidRole,
	domain.ErrPasswordTooShort,
	domain.ErrPasswordTooLong,
}

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrMissingToken):
		return http.StatusUnauthorized

	// Duplicate registration is reported as a plain bad request
	case errors.Is(err, store.ErrEmailExists):
		return http.StatusBadRequest

	// Not found errors
	case store.IsNotFoundError(err):
		return http.StatusNotFound

	default:
		for _, sentinel := range domainValidationErrors {
			if errors.Is(err, sentinel) {
				return http.StatusBadRequest
			}
		}
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. Storage and crypto detail never reaches clients.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrMissingToken):
		return "Invalid or missing token"

	case errors.Is(err, store.ErrEmailExists):
		return "User already exists"

	case errors.Is(err, store.ErrTaskNotFound):
		return "Task not found"

	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case store.IsNotFoundError(err):
		return "Not found"

	default:
		for _, sentinel := range domainValidationErrors {
			if errors.Is(err, sentinel) {
				return err.Error()
			}
		}
		return "Internal server error"
	}
}
