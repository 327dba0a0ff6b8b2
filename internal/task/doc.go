// Package task manages delayed background work and its lifecycle.
// It provides a scheduler that runs a function once after a fixed delay,
// handing back a cancellable handle so callers can stop the work before it
// begins. Once a task has started executing it is not interruptible; only
// the bookkeeping around it can react to cancellation.
package task
