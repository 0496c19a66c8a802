// Package scheduler runs recurring background jobs such as the lease expiry sweep.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// JobStatus represents the outcome of the latest run of a job
type JobStatus string

const (
	JobStatusPending JobStatus = "PENDING"
	JobStatusRunning JobStatus = "RUNNING"
	JobStatusSuccess JobStatus = "SUCCESS"
	JobStatusFailed  JobStatus = "FAILED"
)

// Task is the work a job performs on every tick
type Task func(ctx context.Context) error

// Job is a task repeated on a fixed interval
type Job struct {
	Name       string
	Interval   time.Duration
	RunAtStart bool
	Task       Task
}

// Run records the latest execution of a job
type Run struct {
	Status      JobStatus
	Attempts    int
	Error       string
	StartedAt   *time.Time
	CompletedAt *time.Time
}

func (r *Run) start(now time.Time) {
	r.Status = JobStatusRunning
	r.Attempts = 0
	r.Error = ""
	r.StartedAt = &now
	r.CompletedAt = nil
}

func (r *Run) complete(now time.Time) {
	r.Status = JobStatusSuccess
	r.Error = ""
	r.CompletedAt = &now
}

func (r *Run) fail(err error, now time.Time) {
	r.Status = JobStatusFailed
	r.Error = err.Error()
	r.CompletedAt = &now
}

// Config holds scheduler configuration
type Config struct {
	JobTimeout    time.Duration
	RetryAttempts int
	RetryDelay    time.Duration
}

// DefaultConfig returns default scheduler configuration
func DefaultConfig() Config {
	return Config{
		JobTimeout:    5 * time.Minute,
		RetryAttempts: 2,
		RetryDelay:    30 * time.Second,
	}
}

// Scheduler runs each registered job on its own ticker. A job never overlaps
// with itself: the next tick waits for the current run, retries included.
type Scheduler struct {
	config Config
	logger *zap.Logger

	jobs      []Job
	runs      map[string]*Run
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
}

// New creates a new scheduler instance
func New(config Config, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		config: config,
		logger: logger,
		runs:   make(map[string]*Run),
	}
}

// Add registers a job. Jobs can only be added before Start.
func (s *Scheduler) Add(job Job) error {
	if job.Name == "" || job.Task == nil || job.Interval <= 0 {
		return fmt.Errorf("%w: %q", ErrInvalidJob, job.Name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.isRunning {
		return ErrSchedulerRunning
	}
	if _, ok := s.runs[job.Name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateJob, job.Name)
	}
	s.jobs = append(s.jobs, job)
	s.runs[job.Name] = &Run{Status: JobStatusPending}
	return nil
}

// Start launches one goroutine per job
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.isRunning {
		return nil
	}
	s.isRunning = true

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	for _, job := range s.jobs {
		s.wg.Add(1)
		go s.loop(ctx, job)
	}

	s.logger.Info("Scheduler started",
		zap.Int("jobs", len(s.jobs)),
		zap.Duration("job_timeout", s.config.JobTimeout),
	)
	return nil
}

// Stop cancels running jobs and waits for them to return or ctx to expire
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	s.cancel()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Scheduler stopped gracefully")
		return nil
	case <-ctx.Done():
		s.logger.Warn("Scheduler stop timed out")
		return ctx.Err()
	}
}

// LastRun returns a copy of the latest run of the named job
func (s *Scheduler) LastRun(name string) (Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.runs[name]
	if !ok {
		return Run{}, fmt.Errorf("%w: %q", ErrJobNotFound, name)
	}
	return *r, nil
}

func (s *Scheduler) loop(ctx context.Context, job Job) {
	defer s.wg.Done()

	if job.RunAtStart {
		s.execute(ctx, job)
	}

	ticker := time.NewTicker(job.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			s.logger.Debug("Job loop stopping", zap.String("job", job.Name))
			return
		case <-ticker.C:
			s.execute(ctx, job)
		}
	}
}

// execute runs the job, retrying failed attempts after RetryDelay
func (s *Scheduler) execute(ctx context.Context, job Job) {
	s.update(job.Name, func(r *Run) { r.start(time.Now()) })
	log := s.logger.With(zap.String("job", job.Name))

	var err error
	for attempt := 0; attempt <= s.config.RetryAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return
			case <-time.After(s.config.RetryDelay):
			}
		}
		s.update(job.Name, func(r *Run) { r.Attempts++ })

		err = s.attempt(ctx, job)
		if err == nil {
			s.update(job.Name, func(r *Run) { r.complete(time.Now()) })
			log.Debug("Job completed", zap.Int("attempt", attempt+1))
			return
		}
		if ctx.Err() != nil {
			break
		}
		log.Warn("Job attempt failed", zap.Int("attempt", attempt+1), zap.Error(err))
	}

	s.update(job.Name, func(r *Run) { r.fail(err, time.Now()) })
	log.Error("Job failed", zap.Error(err))
}

func (s *Scheduler) attempt(ctx context.Context, job Job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("job panicked: %v", r)
		}
	}()

	if s.config.JobTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.JobTimeout)
		defer cancel()
	}
	return job.Task(ctx)
}

func (s *Scheduler) update(name string, fn func(*Run)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.runs[name])
}
