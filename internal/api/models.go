package api

import (
	"github.com/phrazzld/pixgen-api/internal/domain"
)

// CreditsResponse is the response body for the credit endpoints.
type CreditsResponse struct {
	Credits int `json:"credits"`
}

// QueueGenerationRequest carries the validated queue parameters.
type QueueGenerationRequest struct {
	Prompt string `validate:"required,min=1"`
}

// QueueGenerationResponse is the response body for a successfully queued job.
type QueueGenerationResponse struct {
	Success bool   `json:"success"`
	JobID   string `json:"jobId"`
}

// JobStatusResponse is the response body for a status poll. Images and
// Credits are present only for completed jobs.
type JobStatusResponse struct {
	Status  string                `json:"status"`
	Images  []*domain.ImageResult `json:"images,omitempty"`
	Credits *int                  `json:"credits,omitempty"`
}
