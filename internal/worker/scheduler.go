package worker

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Job is one recurring task. Offset delays the first run so jobs registered
// with the same interval do not all fire at startup.
type Job struct {
	Name     string
	Interval time.Duration
	Offset   time.Duration
	Run      func(ctx context.Context)
}

// Scheduler drives registered jobs on independent timers. A slow or failing
// job never delays the others.
type Scheduler struct {
	logger *zap.Logger

	mu      sync.Mutex
	jobs    []Job
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	started bool
}

// NewScheduler builds an empty scheduler.
func NewScheduler(logger *zap.Logger) *Scheduler {
	return &Scheduler{logger: logger}
}

// Register queues a job. Jobs with a non-positive interval are ignored.
func (s *Scheduler) Register(name string, interval, offset time.Duration, run func(ctx context.Context)) {
	if interval <= 0 || run == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs = append(s.jobs, Job{Name: name, Interval: interval, Offset: offset, Run: run})
}

// Start launches one goroutine per registered job. Calling Start twice is a
// no-op.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	s.started = true

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	for _, job := range s.jobs {
		s.wg.Add(1)
		go s.loop(runCtx, job)
	}
	s.logger.Info("scheduler started", zap.Int("jobs", len(s.jobs)))
}

// Stop cancels every job loop and waits for in-flight runs to return.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	s.wg.Wait()
}

func (s *Scheduler) loop(ctx context.Context, job Job) {
	defer s.wg.Done()

	if job.Offset > 0 {
		select {
		case <-ctx.Done():
			return
		case <-time.After(job.Offset):
		}
	}

	s.invoke(ctx, job)

	ticker := time.NewTicker(job.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.invoke(ctx, job)
		}
	}
}

// invoke runs one pass. A panic inside a job is logged and contained so the
// loop keeps its schedule.
func (s *Scheduler) invoke(ctx context.Context, job Job) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("scheduled job panicked", zap.String("job", job.Name), zap.Any("panic", r))
		}
	}()
	job.Run(ctx)
}
