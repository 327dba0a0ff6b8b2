package gemini

import "errors"

// Errors specific to the gemini package
var (
	// ErrNilLogger is returned when the generator is constructed without a logger
	ErrNilLogger = errors.New("logger cannot be nil")

	// ErrNilRemover is returned when the generator is constructed without a background remover
	ErrNilRemover = errors.New("background remover cannot be nil")

	// ErrEmptyPrompt is returned when GenerateImage is called with an empty prompt
	ErrEmptyPrompt = errors.New("prompt cannot be empty")
)
