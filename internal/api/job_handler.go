package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/pixgen-api/internal/api/shared"
	"github.com/phrazzld/pixgen-api/internal/service"
)

// JobService defines the job-tracking operations the handler needs.
type JobService interface {
	// QueueGeneration creates a job for the prompt and returns its ID.
	QueueGeneration(prompt string) (string, error)

	// JobStatus reports the lifecycle state of the given job ID.
	JobStatus(jobID string) (*service.JobStatusResult, error)

	// CancelJob cancels a pending job.
	CancelJob(jobID string) error
}

// JobHandler handles job-related HTTP requests
type JobHandler struct {
	jobs   JobService
	logger *slog.Logger
}

// NewJobHandler creates a new JobHandler
func NewJobHandler(jobs JobService, logger *slog.Logger) *JobHandler {
	return &JobHandler{
		jobs:   jobs,
		logger: logger,
	}
}

// QueueGeneration handles GET /api/queue-image-generation requests.
// The job is queued and its ID returned immediately; generation starts
// after the configured delay.
func (h *JobHandler) QueueGeneration(w http.ResponseWriter, r *http.Request) {
	req := QueueGenerationRequest{Prompt: shared.QueryParam(r, "prompt")}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Missing prompt")
		return
	}

	jobID, err := h.jobs.QueueGeneration(req.Prompt)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, QueueGenerationResponse{
		Success: true,
		JobID:   jobID,
	})
}

// JobStatus handles GET /api/job-status requests.
// Completed jobs include their image results and the current balance.
func (h *JobHandler) JobStatus(w http.ResponseWriter, r *http.Request) {
	jobID := shared.QueryParam(r, "jobId")
	if jobID == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Missing jobId")
		return
	}

	result, err := h.jobs.JobStatus(jobID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	response := JobStatusResponse{Status: string(result.Status)}
	if len(result.Images) > 0 {
		response.Images = result.Images
		credits := result.Credits
		response.Credits = &credits
	}

	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// CancelJob handles POST /api/job-status/cancel requests.
// Only pending jobs can be cancelled; anything else reports not-found.
func (h *JobHandler) CancelJob(w http.ResponseWriter, r *http.Request) {
	jobID := shared.QueryParam(r, "jobId")
	if jobID == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Missing jobId")
		return
	}

	if err := h.jobs.CancelJob(jobID); err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	h.logger.Info("job cancelled via API", "job_id", jobID)
	shared.RespondWithText(w, r, http.StatusOK, "Job cancelled successfully")
}
