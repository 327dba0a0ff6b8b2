package domain

import (
	"crypto/rand"
	"math/big"
	"time"
)

// JobStatus represents the lifecycle state of an image-generation job.
type JobStatus string

// Possible job status values
const (
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusCancelled  JobStatus = "cancelled"
	JobStatusFailed     JobStatus = "failed"
)

// ImagesPerJob is the number of images generated for every job.
const ImagesPerJob = 4

// jobIDLength is the number of random characters in a job ID.
const jobIDLength = 13

// jobIDAlphabet is the character set used for job IDs. Lowercase
// alphanumerics keep the IDs URL-safe and opaque.
const jobIDAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// Job represents one request to produce a batch of stylized images
// from a text prompt. While the job is pending, the tracker also holds
// a handle to its scheduled generation task.
type Job struct {
	ID        string    `json:"id"`
	Prompt    string    `json:"prompt"`
	Status    JobStatus `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// NewJob creates a new Job with a fresh opaque ID for the given prompt.
// The job starts in the processing state; it is only observable once the
// tracker has recorded it as pending.
// Returns an error if validation fails.
func NewJob(prompt string) (*Job, error) {
	job := &Job{
		ID:        NewJobID(),
		Prompt:    prompt,
		Status:    JobStatusProcessing,
		CreatedAt: time.Now().UTC(),
	}

	if err := job.Validate(); err != nil {
		return nil, err
	}

	return job, nil
}

// Validate checks if the Job has valid data.
// Returns an error if any field fails validation.
func (j *Job) Validate() error {
	if j.ID == "" {
		return ErrEmptyJobID
	}

	if j.Prompt == "" {
		return ErrEmptyPrompt
	}

	if !isValidJobStatus(j.Status) {
		return ErrInvalidJobStatus
	}

	return nil
}

// isValidJobStatus checks if the given status is one of the defined values.
func isValidJobStatus(status JobStatus) bool {
	switch status {
	case JobStatusProcessing, JobStatusCompleted, JobStatusCancelled, JobStatusFailed:
		return true
	default:
		return false
	}
}

// NewJobID generates an opaque random alphanumeric job identifier.
// It uses crypto/rand so IDs are not guessable from one another.
func NewJobID() string {
	id := make([]byte, jobIDLength)
	alphabetLen := big.NewInt(int64(len(jobIDAlphabet)))
	for i := range id {
		n, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			// crypto/rand is documented to never fail on supported
			// platforms; fall back to a time-derived index so we still
			// return a usable ID rather than panicking mid-request.
			id[i] = jobIDAlphabet[time.Now().Nanosecond()%len(jobIDAlphabet)]
			continue
		}
		id[i] = jobIDAlphabet[n.Int64()]
	}
	return string(id)
}
