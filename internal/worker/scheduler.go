package worker

import (
	"context"
	"io"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

// Scheduler runs OneTimeRequests exactly once each, after their initial delay.
// Pending work lives only in memory and is lost when the process exits.
type Scheduler struct {
	cron   *cron.Cron
	logger *log.Logger
	now    func() time.Time

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	entries map[uuid.UUID]cron.EntryID
}

// NewScheduler creates a stopped scheduler. Call Start to begin running work.
func NewScheduler(loc *time.Location, logger *log.Logger) *Scheduler {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if loc == nil {
		loc = time.Local
	}
	cronLogger := cron.PrintfLogger(logger)
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithLogger(cronLogger),
			cron.WithChain(cron.Recover(cronLogger)),
		),
		logger:  logger,
		now:     time.Now,
		ctx:     ctx,
		cancel:  cancel,
		entries: make(map[uuid.UUID]cron.EntryID),
	}
}

// Start begins the scheduler loop. Requests enqueued earlier are picked up.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the scheduler, waits for running work, then cancels the work context.
// Work that has not fired yet is dropped.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.cancel()
}

// Enqueue schedules req and returns its ID. A zero or negative delay runs the
// work as soon as the scheduler loop observes it.
func (s *Scheduler) Enqueue(req OneTimeRequest) uuid.UUID {
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}

	delay := req.InitialDelay
	if delay < 0 {
		s.logger.Printf("worker: request %s is %s past due, running now", req.ID, -delay)
		delay = 0
	}
	schedule := &onceSchedule{at: s.now().Add(delay)}

	s.mu.Lock()
	defer s.mu.Unlock()
	entryID := s.cron.Schedule(schedule, cron.FuncJob(func() {
		s.run(req, schedule)
	}))
	s.entries[req.ID] = entryID
	s.logger.Printf("worker: enqueued %s to run in %s", req.ID, delay)
	return req.ID
}

// Pending reports how many enqueued requests have not started yet.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *Scheduler) run(req OneTimeRequest, schedule *onceSchedule) {
	if !schedule.claimed.CompareAndSwap(false, true) {
		return
	}

	s.mu.Lock()
	entryID, ok := s.entries[req.ID]
	delete(s.entries, req.ID)
	s.mu.Unlock()
	if ok {
		s.cron.Remove(entryID)
	}

	if req.Worker == nil {
		s.logger.Printf("worker: request %s has no worker", req.ID)
		return
	}
	result := req.Worker.DoWork(s.ctx, req.Input)
	s.logger.Printf("worker: request %s finished: %s", req.ID, result)
}

// onceSchedule yields its trigger time once and never again. cron asks for Next
// when the entry is added and again after it fires, both from its run loop.
type onceSchedule struct {
	at      time.Time
	calls   atomic.Int32
	claimed atomic.Bool
}

func (o *onceSchedule) Next(time.Time) time.Time {
	if o.calls.Add(1) > 1 || o.claimed.Load() {
		return time.Time{}
	}
	return o.at
}
