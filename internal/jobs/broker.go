package jobs

import (
	"context"
	"errors"
	"sync"

	"media-catalog/internal/logging"
	"media-catalog/internal/metrics"
)

// ErrStopped is returned by Enqueue after the broker has shut down.
var ErrStopped = errors.New("job broker stopped")

// HandlerFunc processes one job payload. A returned error marks the job
// failed; retry policy belongs to an external broker, so the in-process
// broker only logs and counts failures.
type HandlerFunc func(ctx context.Context, payload interface{}) error

type job struct {
	name    Name
	payload interface{}
}

// Broker is an in-process job queue with a fixed worker pool. The queue is
// unbounded: handlers enqueue follow-on jobs into the pool that runs them,
// so a blocking Enqueue could leave every worker stuck producing into a
// full buffer nobody is left to drain. Jobs for names without a registered
// handler are counted as dropped; this is the expected fate of follow-on
// jobs whose consumers live in other services.
type Broker struct {
	workers  int
	handlers map[Name]HandlerFunc

	mu      sync.Mutex
	cond    *sync.Cond
	queue   []job
	stopped bool

	wg sync.WaitGroup
}

// NewBroker creates a broker with the given worker pool size. buffer is the
// queue's initial capacity. Register handlers before calling Start.
func NewBroker(workers, buffer int) *Broker {
	if workers < 1 {
		workers = 1
	}
	if buffer < 1 {
		buffer = 1
	}
	b := &Broker{
		workers:  workers,
		handlers: make(map[Name]HandlerFunc),
		queue:    make([]job, 0, buffer),
	}
	b.cond = sync.NewCond(&b.mu)
	return b
}

// Handle registers the handler for a job name. Must be called before Start.
func (b *Broker) Handle(name Name, fn HandlerFunc) {
	b.handlers[name] = fn
}

// Start launches the worker pool.
func (b *Broker) Start() {
	metrics.QueueWorkers.Set(float64(b.workers))
	logging.Info("Starting job broker with %d workers", b.workers)

	for i := 0; i < b.workers; i++ {
		b.wg.Add(1)
		go b.worker(i)
	}
}

// Enqueue hands a job to the worker pool. It never blocks on queue
// capacity and fails only if ctx is already done or the broker has
// stopped, so handlers can safely enqueue follow-on jobs mid-run.
func (b *Broker) Enqueue(ctx context.Context, name Name, payload interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.stopped {
		return ErrStopped
	}

	b.queue = append(b.queue, job{name: name, payload: payload})
	metrics.QueueJobsEnqueued.WithLabelValues(string(name)).Inc()
	metrics.QueueDepth.Set(float64(len(b.queue)))
	b.cond.Signal()
	return nil
}

// Stop rejects further enqueues, drains queued jobs, and waits for the
// workers to finish.
func (b *Broker) Stop() {
	b.mu.Lock()
	if b.stopped {
		b.mu.Unlock()
		return
	}
	b.stopped = true
	b.cond.Broadcast()
	b.mu.Unlock()

	b.wg.Wait()
	logging.Info("Job broker stopped")
}

func (b *Broker) worker(id int) {
	defer b.wg.Done()

	logging.Debug("Job worker %d started", id)

	for {
		b.mu.Lock()
		for len(b.queue) == 0 && !b.stopped {
			b.cond.Wait()
		}
		if len(b.queue) == 0 {
			b.mu.Unlock()
			break
		}
		j := b.queue[0]
		b.queue = b.queue[1:]
		metrics.QueueDepth.Set(float64(len(b.queue)))
		b.mu.Unlock()

		handler, ok := b.handlers[j.name]
		if !ok {
			// Follow-on jobs for external consumers land here.
			metrics.QueueJobsProcessed.WithLabelValues(string(j.name), "dropped").Inc()
			logging.Debug("No handler for job %s, dropping", j.name)
			continue
		}

		if err := handler(context.Background(), j.payload); err != nil {
			metrics.QueueJobsProcessed.WithLabelValues(string(j.name), "failed").Inc()
			logging.Error("Job %s failed: %v", j.name, err)
			continue
		}

		metrics.QueueJobsProcessed.WithLabelValues(string(j.name), "handled").Inc()
	}

	logging.Debug("Job worker %d finished", id)
}
