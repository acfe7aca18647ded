// Package worker runs deferred one-shot work on top of a cron scheduler.
package worker

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Data is the input handed to a worker when it runs.
type Data map[string]string

// Get returns the value for key and whether it was present.
func (d Data) Get(key string) (string, bool) {
	value, ok := d[key]
	return value, ok
}

// Result is the outcome a worker reports.
type Result int

const (
	// Success means the work finished.
	Success Result = iota
	// Failure means the work could not run; it is not retried.
	Failure
)

func (r Result) String() string {
	switch r {
	case Success:
		return "success"
	case Failure:
		return "failure"
	default:
		return "unknown"
	}
}

// Worker performs a unit of deferred work.
type Worker interface {
	DoWork(ctx context.Context, input Data) Result
}

// WorkerFunc adapts a function to Worker.
type WorkerFunc func(ctx context.Context, input Data) Result

// DoWork calls f.
func (f WorkerFunc) DoWork(ctx context.Context, input Data) Result {
	return f(ctx, input)
}

// OneTimeRequest describes work that runs once after InitialDelay.
type OneTimeRequest struct {
	ID           uuid.UUID
	InitialDelay time.Duration
	Input        Data
	Worker       Worker
}

// NewOneTimeRequest builds a request with a fresh ID.
func NewOneTimeRequest(w Worker, delay time.Duration, input Data) OneTimeRequest {
	return OneTimeRequest{
		ID:           uuid.New(),
		InitialDelay: delay,
		Input:        input,
		Worker:       w,
	}
}
