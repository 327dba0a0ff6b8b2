package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/phrazzld/pixgen-api/internal/config"
	"github.com/phrazzld/pixgen-api/internal/domain"
	"github.com/phrazzld/pixgen-api/internal/generation"
	"github.com/phrazzld/pixgen-api/internal/redact"
	"github.com/phrazzld/pixgen-api/internal/task"
	"golang.org/x/sync/errgroup"
)

// Scheduler defines the scheduling operations the tracker needs.
// *task.Scheduler satisfies this interface.
type Scheduler interface {
	// Schedule arranges for fn to run once after delay and returns a
	// cancellable handle.
	Schedule(delay time.Duration, fn task.Func) *task.Handle
}

// pendingJob pairs a job with the handle of its scheduled generation task.
type pendingJob struct {
	job    *domain.Job
	handle *task.Handle
}

// JobStatusResult is the outcome of a status lookup.
type JobStatusResult struct {
	Status domain.JobStatus

	// Images and Credits are populated only for completed jobs.
	Images  []*domain.ImageResult
	Credits int
}

// JobTracker owns the credit balance and the job lifecycle collections.
// A job ID lives in exactly one of pending, completed, cancelled, or failed;
// entries are kept for the life of the process.
//
// All state is guarded by a single mutex. Generation work runs outside the
// lock; finalization re-checks pending membership so work racing a
// cancellation is discarded rather than resurrected.
type JobTracker struct {
	mu sync.Mutex

	credits    int
	bundleSize int

	pending   []*pendingJob
	completed map[string][]*domain.ImageResult
	cancelled map[string]struct{}
	failed    map[string]struct{}

	delay     time.Duration
	scheduler Scheduler
	generator generation.Generator
	logger    *slog.Logger
}

// NewJobTracker creates a JobTracker with the configured starting balance
// and purchase bundle size. The delay is how long a queued job waits before
// its generation batch starts.
func NewJobTracker(
	cfg config.CreditsConfig,
	delay time.Duration,
	scheduler Scheduler,
	generator generation.Generator,
	logger *slog.Logger,
) (*JobTracker, error) {
	if scheduler == nil {
		return nil, ErrNilScheduler
	}
	if generator == nil {
		return nil, ErrNilGenerator
	}
	if logger == nil {
		return nil, ErrNilLogger
	}

	return &JobTracker{
		credits:    cfg.InitialBalance,
		bundleSize: cfg.BundleSize,
		completed:  make(map[string][]*domain.ImageResult),
		cancelled:  make(map[string]struct{}),
		failed:     make(map[string]struct{}),
		delay:      delay,
		scheduler:  scheduler,
		generator:  generator,
		logger:     logger,
	}, nil
}

// Credits returns the current credit balance.
func (t *JobTracker) Credits() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.credits
}

// PurchaseCredits adds one bundle to the balance and returns the new
// balance. There is no payment integration; this is metering only.
func (t *JobTracker) PurchaseCredits() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.credits += t.bundleSize
	t.logger.Info("credits purchased",
		"bundle_size", t.bundleSize,
		"balance", t.credits)

	return t.credits
}

// QueueGeneration creates a job for the prompt and schedules its generation
// batch after the configured delay. The job is observable as pending before
// the delay fires.
//
// Returns ErrInsufficientCredits when the balance is zero or below, and
// domain.ErrEmptyPrompt for a missing prompt; neither creates a job.
func (t *JobTracker) QueueGeneration(prompt string) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.credits <= 0 {
		return "", ErrInsufficientCredits
	}

	job, err := domain.NewJob(prompt)
	if err != nil {
		return "", err
	}

	handle := t.scheduler.Schedule(t.delay, func(ctx context.Context) {
		t.runGeneration(ctx, job)
	})
	t.pending = append(t.pending, &pendingJob{job: job, handle: handle})

	t.logger.Info("job queued",
		"job_id", job.ID,
		"delay", t.delay,
		"balance", t.credits)

	return job.ID, nil
}

// JobStatus reports the lifecycle state of the given job ID. Completed jobs
// include their image results and the current credit balance.
// Returns ErrJobNotFound for IDs in no collection.
func (t *JobTracker) JobStatus(jobID string) (*JobStatusResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if images, ok := t.completed[jobID]; ok {
		return &JobStatusResult{
			Status:  domain.JobStatusCompleted,
			Images:  images,
			Credits: t.credits,
		}, nil
	}

	if t.findPending(jobID) >= 0 {
		return &JobStatusResult{Status: domain.JobStatusProcessing}, nil
	}

	if _, ok := t.cancelled[jobID]; ok {
		return &JobStatusResult{Status: domain.JobStatusCancelled}, nil
	}

	if _, ok := t.failed[jobID]; ok {
		return &JobStatusResult{Status: domain.JobStatusFailed}, nil
	}

	return nil, ErrJobNotFound
}

// CancelJob cancels a pending job: its scheduled task is stopped, the job
// leaves pending, and it is recorded as cancelled. If the task already
// started, the in-flight generation work is not interrupted; its results
// are discarded when finalization finds the job gone from pending.
//
// Returns ErrJobNotFound when the job is not pending (unknown, already
// completed, or already cancelled).
func (t *JobTracker) CancelJob(jobID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	i := t.findPending(jobID)
	if i < 0 {
		return ErrJobNotFound
	}

	entry := t.pending[i]
	stopped := entry.handle.Stop()
	t.removePending(i)
	t.cancelled[jobID] = struct{}{}

	t.logger.Info("job cancelled",
		"job_id", jobID,
		"timer_stopped", stopped)

	return nil
}

// runGeneration executes the four-way generation batch for a job and
// finalizes it. It runs on the scheduler goroutine after the queue delay.
func (t *JobTracker) runGeneration(ctx context.Context, job *domain.Job) {
	logger := t.logger.With("job_id", job.ID)
	logger.Info("starting generation batch", "image_count", domain.ImagesPerJob)

	results := make([]*domain.ImageResult, domain.ImagesPerJob)
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < domain.ImagesPerJob; i++ {
		g.Go(func() error {
			result, err := t.generator.GenerateImage(gctx, job.Prompt)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logger.Error("generation batch failed", "error", redact.Error(err))
		t.markFailed(job.ID)
		return
	}

	t.finalize(job.ID, results)
}

// finalize records a successful batch: the job moves from pending to
// completed and one credit is debited. A job no longer pending (cancelled
// while the work was in flight) is discarded silently.
func (t *JobTracker) finalize(jobID string, images []*domain.ImageResult) {
	t.mu.Lock()
	defer t.mu.Unlock()

	i := t.findPending(jobID)
	if i < 0 {
		t.logger.Info("discarding results for job no longer pending", "job_id", jobID)
		return
	}

	t.removePending(i)
	t.completed[jobID] = images
	t.credits--

	t.logger.Info("job completed",
		"job_id", jobID,
		"image_count", len(images),
		"balance", t.credits)
}

// markFailed records a failed batch: the job moves from pending to failed
// and no credit is debited. A job cancelled in the meantime stays cancelled.
func (t *JobTracker) markFailed(jobID string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	i := t.findPending(jobID)
	if i < 0 {
		return
	}

	t.removePending(i)
	t.failed[jobID] = struct{}{}

	t.logger.Info("job failed", "job_id", jobID, "balance", t.credits)
}

// findPending returns the index of the job in the pending list, or -1.
// The list is small and unordered lookups are rare, so a linear scan is fine.
func (t *JobTracker) findPending(jobID string) int {
	for i, entry := range t.pending {
		if entry.job.ID == jobID {
			return i
		}
	}
	return -1
}

// removePending deletes the entry at index i, preserving queue order.
func (t *JobTracker) removePending(i int) {
	t.pending = append(t.pending[:i], t.pending[i+1:]...)
}
