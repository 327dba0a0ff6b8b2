package service

import "errors"

// Common errors returned by the service package
var (
	// ErrInsufficientCredits is returned when a job is queued with no credits left
	ErrInsufficientCredits = errors.New("insufficient credits")

	// ErrJobNotFound is returned when a job ID matches no known job, or when
	// cancellation targets a job that is no longer pending
	ErrJobNotFound = errors.New("job not found")

	// Dependency validation errors
	ErrNilScheduler = errors.New("scheduler cannot be nil")
	ErrNilGenerator = errors.New("generator cannot be nil")
	ErrNilLogger    = errors.New("logger cannot be nil")
)
