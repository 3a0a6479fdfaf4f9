package queue

import (
	"context"
	"fmt"
	"sync"

	"BreadthPulse/pkg/logger"
)

// InlineQueue runs jobs in-process without a broker. It implements
// QueueService so callers do not need to know whether Redis is
// available; messages are handled in a goroutine with no retry or
// dead-letter semantics.
type InlineQueue struct {
	logger *logger.Logger
	jobs   map[string]Job
	mu     sync.RWMutex
	wg     sync.WaitGroup
}

// NewInlineQueue creates an in-process queue.
func NewInlineQueue(lgr *logger.Logger) *InlineQueue {
	return &InlineQueue{
		logger: lgr,
		jobs:   make(map[string]Job),
	}
}

// RegisterJobs registers multiple jobs.
func (q *InlineQueue) RegisterJobs(jobs []Job) {
	for _, job := range jobs {
		q.RegisterJob(job)
	}
}

// RegisterJob registers a single job.
func (q *InlineQueue) RegisterJob(job Job) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if _, exists := q.jobs[job.Type()]; exists {
		q.logger.Warn("job already registered", logger.String("job", job.Name()))
		return
	}
	q.jobs[job.Type()] = job
}

// Start is a no-op; inline jobs run on publish.
func (q *InlineQueue) Start() error { return nil }

// PublishMessage dispatches the message to its registered job.
func (q *InlineQueue) PublishMessage(_ context.Context, msgType string, payload interface{}) error {
	q.mu.RLock()
	job, ok := q.jobs[msgType]
	q.mu.RUnlock()
	if !ok {
		return fmt.Errorf("no job registered for message type: %s", msgType)
	}

	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		if err := job.Handle(context.Background(), payload); err != nil {
			q.logger.Error("inline job failed",
				logger.String("job", job.Name()),
				logger.Error(err))
		}
	}()
	return nil
}

// Stop waits for in-flight jobs to finish.
func (q *InlineQueue) Stop(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
