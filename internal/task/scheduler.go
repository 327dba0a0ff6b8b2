package task

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Func is the unit of delayed work executed by the scheduler. The context
// is cancelled when the scheduler shuts down.
type Func func(ctx context.Context)

// Handle identifies one scheduled task and allows cancelling it before it
// fires. After the task has started, Stop only prevents bookkeeping races;
// the work itself runs to completion.
type Handle struct {
	id    uuid.UUID
	timer *time.Timer
}

// ID returns the task's unique identifier.
func (h *Handle) ID() uuid.UUID {
	return h.id
}

// Stop cancels the scheduled task. It returns true if the call prevented
// the task from firing, false if the task already fired or was stopped.
func (h *Handle) Stop() bool {
	return h.timer.Stop()
}

// Scheduler runs functions once after a fixed delay, each on its own
// goroutine. It tracks in-flight work so shutdown can wait for it.
type Scheduler struct {
	ctx        context.Context
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
	mu         sync.Mutex
	stopped    bool
	logger     *slog.Logger
}

// NewScheduler creates a new Scheduler.
func NewScheduler(logger *slog.Logger) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		ctx:        ctx,
		cancelFunc: cancel,
		logger:     logger,
	}
}

// Schedule arranges for fn to run once after the given delay and returns a
// handle that can cancel it before it fires. A zero delay fires immediately.
func (s *Scheduler) Schedule(delay time.Duration, fn Func) *Handle {
	handle := &Handle{id: uuid.New()}

	handle.timer = time.AfterFunc(delay, func() {
		// Refuse to start new work once the scheduler is stopping; the
		// mutex orders this against Stop's final wg.Wait.
		s.mu.Lock()
		if s.stopped {
			s.mu.Unlock()
			s.logger.Debug("dropping task fired during shutdown",
				"task_id", handle.id)
			return
		}
		s.wg.Add(1)
		s.mu.Unlock()
		defer s.wg.Done()

		s.logger.Debug("executing scheduled task",
			"task_id", handle.id,
			"delay", delay)

		fn(s.ctx)
	})

	s.logger.Debug("scheduled task",
		"task_id", handle.id,
		"delay", delay)

	return handle
}

// Stop shuts the scheduler down: no new task may start, the shared context
// is cancelled, and Stop blocks until in-flight tasks return.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	s.stopped = true
	s.mu.Unlock()

	s.cancelFunc()
	s.wg.Wait()
}
