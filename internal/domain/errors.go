// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrEmptyPrompt is returned when a job is created without prompt text.
	ErrEmptyPrompt = errors.New("prompt cannot be empty")

	// ErrEmptyJobID is returned when a job ID is missing or blank.
	ErrEmptyJobID = errors.New("job ID cannot be empty")

	// ErrInvalidJobStatus is returned when a job status is not valid.
	ErrInvalidJobStatus = errors.New("invalid job status")

	// ErrEmptyImageData is returned when an image result carries no data URL.
	ErrEmptyImageData = errors.New("image data cannot be empty")
)
