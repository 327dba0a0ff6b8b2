package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/pixgen-api/internal/domain"
	"github.com/phrazzld/pixgen-api/internal/service"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Resource exhaustion
	case errors.Is(err, service.ErrInsufficientCredits):
		return http.StatusForbidden

	// Not found errors
	case errors.Is(err, service.ErrJobNotFound):
		return http.StatusNotFound

	// Bad request errors
	case errors.Is(err, domain.ErrEmptyPrompt),
		errors.Is(err, domain.ErrEmptyJobID),
		errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, service.ErrInsufficientCredits):
		return "Insufficient credits"

	case errors.Is(err, service.ErrJobNotFound):
		return "Job not found"

	case errors.Is(err, domain.ErrEmptyPrompt):
		return "Missing prompt"

	case errors.Is(err, domain.ErrEmptyJobID):
		return "Missing jobId"

	default:
		return "An unexpected error occurred"
	}
}
